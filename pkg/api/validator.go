package api

import (
	"errors"
	"math"
)

// MaxCellIndex ограничивает индексы клетки в командах. Настоящие клетки
// при любом разумном шаге сетки лежат гораздо ближе, а арифметика окрестности не переполняется.
const MaxCellIndex = 1 << 31

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p StepPayload) Validate() error {
	if p.Di == 0 && p.Dj == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Di < -1 || p.Di > 1 || p.Dj < -1 || p.Dj > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p LocatePayload) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return errors.New("coordinates must be numbers")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return errors.New("latitude out of range")
	}
	if p.Lng < -180 || p.Lng > 180 {
		return errors.New("longitude out of range")
	}
	return nil
}

func (p CellPayload) Validate() error {
	if p.I < -MaxCellIndex || p.I > MaxCellIndex {
		return errors.New("cell i out of range")
	}
	if p.J < -MaxCellIndex || p.J > MaxCellIndex {
		return errors.New("cell j out of range")
	}
	return nil
}
