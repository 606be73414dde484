package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

// ToMemento сериализует последовательность монет.
// Формат: JSON-массив записей {"i","j","serial"} в исходном порядке (снизу стека вверх).
func ToMemento(tokens []domain.Token) (string, error) {
	if tokens == nil {
		tokens = []domain.Token{}
	}
	for idx, t := range tokens {
		if t.Serial < 0 {
			return "", fmt.Errorf("%w: token %d has negative serial %d", domain.ErrMalformedMemento, idx, t.Serial)
		}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return "", fmt.Errorf("encode tokens: %w", err)
	}
	return string(data), nil
}

// FromMemento - обратная операция. Любой мусор -> ErrMalformedMemento.
func FromMemento(serialized string) ([]domain.Token, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(serialized)))
	dec.DisallowUnknownFields()

	var tokens []domain.Token
	if err := dec.Decode(&tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedMemento, err)
	}
	// "null" декодируется без ошибки, но это не последовательность
	if tokens == nil {
		return nil, fmt.Errorf("%w: not a token array", domain.ErrMalformedMemento)
	}
	// После массива ничего быть не должно
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", domain.ErrMalformedMemento)
	}

	for idx, t := range tokens {
		if t.Serial < 0 {
			return nil, fmt.Errorf("%w: token %d has negative serial %d", domain.ErrMalformedMemento, idx, t.Serial)
		}
	}
	return tokens, nil
}
