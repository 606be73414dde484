package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

// Config хранит параметры мира и движка
type Config struct {
	CellSize         float64 // шаг сетки в градусах
	VisibilityRadius int     // полуширина видимой окрестности в клетках
	MaxInitialTokens int     // генератор дает [0, MaxInitialTokens) монет
	SpawnProbability float64 // доля клеток с ямами, [0, 1)

	// Origin - стартовая точка игрока и точка возврата после RESET
	Origin domain.LatLng

	// Strict - нарушения инвариантов хранилища роняют процесс (debug)
	Strict bool

	// AutosaveInterval - как часто сбрасывать сессию в хранилище. 0 - только при остановке.
	AutosaveInterval time.Duration
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		CellSize:         domain.DefaultCellSize,
		VisibilityRadius: domain.DefaultVisibilityRadius,
		MaxInitialTokens: domain.DefaultMaxInitialTokens,
		SpawnProbability: domain.DefaultSpawnProbability,
		Origin:           domain.LatLng{Lat: domain.OriginLat, Lng: domain.OriginLng},
		AutosaveInterval: time.Minute,
	}
}

// Validate проверяет конфиг. Любая ошибка оборачивает domain.ErrConfiguration.
func (c Config) Validate() error {
	if !(c.CellSize > 0) || math.IsInf(c.CellSize, 1) {
		return fmt.Errorf("%w: cell size must be positive, got %v", domain.ErrConfiguration, c.CellSize)
	}
	if c.VisibilityRadius < 0 {
		return fmt.Errorf("%w: visibility radius must be non-negative, got %d", domain.ErrConfiguration, c.VisibilityRadius)
	}
	if c.MaxInitialTokens <= 0 {
		return fmt.Errorf("%w: max initial tokens must be positive, got %d", domain.ErrConfiguration, c.MaxInitialTokens)
	}
	if !(c.SpawnProbability >= 0 && c.SpawnProbability < 1) {
		return fmt.Errorf("%w: spawn probability must be in [0,1), got %v", domain.ErrConfiguration, c.SpawnProbability)
	}
	if c.AutosaveInterval < 0 {
		return fmt.Errorf("%w: autosave interval must not be negative", domain.ErrConfiguration)
	}
	return nil
}
