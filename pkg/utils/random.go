package utils

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// GenerateID создает уникальный ID сессии клиента
func GenerateID() string {
	return uuid.NewString()
}

// Luck - детерминированная "удача" в [0, 1) по строковому ключу.
// Один и тот же ключ всегда дает одно и то же число, на любой машине.
func Luck(key string) float64 {
	// Берем старшие 53 бита хеша - ровно столько помещается в мантиссу float64
	return float64(xxhash.Sum64String(key)>>11) / (1 << 53)
}

// LuckKey собирает ключ в том же виде, что и [i, j, ...].toString(): "i,j,..."
func LuckKey(i, j int, extra ...string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(i))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(j))
	for _, e := range extra {
		b.WriteByte(',')
		b.WriteString(e)
	}
	return b.String()
}
