package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell - одна клетка сетки (i, j).
// Экземпляры выдаются только через grid.Board, поэтому указатель *Cell
// можно использовать как ключ мапы: одинаковые (i, j) -> один и тот же объект.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Key возвращает строковый ключ клетки ("i,j"), под которым лежит её memento.
func (c Cell) Key() string {
	return strconv.Itoa(c.I) + "," + strconv.Itoa(c.J)
}

// String для логов: (i, j)
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.I, c.J)
}

// ParseCellKey - обратная операция к Key.
func ParseCellKey(key string) (Cell, error) {
	left, right, ok := strings.Cut(key, ",")
	if !ok {
		return Cell{}, fmt.Errorf("cell key %q: missing separator", key)
	}
	i, err := strconv.Atoi(left)
	if err != nil {
		return Cell{}, fmt.Errorf("cell key %q: %w", key, err)
	}
	j, err := strconv.Atoi(right)
	if err != nil {
		return Cell{}, fmt.Errorf("cell key %q: %w", key, err)
	}
	return Cell{I: i, J: j}, nil
}

// LatLng - точка на карте в градусах.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds - прямоугольник клетки. В адресации полуоткрытый: [min, max).
type Bounds struct {
	LatMin float64 `json:"latMin"`
	LngMin float64 `json:"lngMin"`
	LatMax float64 `json:"latMax"`
	LngMax float64 `json:"lngMax"`
}

// Contains проверяет попадание точки в клетку.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.LatMin && lat < b.LatMax && lng >= b.LngMin && lng < b.LngMax
}
