package grid

import (
	"fmt"
	"math"
	"sync"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
)

// Board переводит координаты в клетки и обратно.
// Реестр knownCells гарантирует одну *Cell на каждую пару (i, j).
type Board struct {
	cellSize float64

	mu         sync.Mutex
	knownCells map[domain.Cell]*domain.Cell
}

// NewBoard создает сетку с шагом cellSize (в градусах).
func NewBoard(cellSize float64) (*Board, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		return nil, fmt.Errorf("%w: cell size must be positive, got %v", domain.ErrConfiguration, cellSize)
	}
	return &Board{
		cellSize:   cellSize,
		knownCells: make(map[domain.Cell]*domain.Cell),
	}, nil
}

// CellSize - шаг сетки
func (b *Board) CellSize() float64 {
	return b.cellSize
}

// Canonical возвращает единственный экземпляр клетки (i, j). Первый запрос создает его.
func (b *Board) Canonical(i, j int) *domain.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := domain.Cell{I: i, J: j}
	if found, ok := b.knownCells[key]; ok {
		return found
	}
	cell := &domain.Cell{I: i, J: j}
	b.knownCells[key] = cell
	return cell
}

// CellForPoint - клетка, в которую попадает точка.
func (b *Board) CellForPoint(lat, lng float64) *domain.Cell {
	return b.Canonical(b.index(lat), b.index(lng))
}

// index = floor(x / cellSize), с поправкой на погрешность деления:
// x всегда лежит в [index*cellSize, (index+1)*cellSize), как и считает BoundsForCell.
func (b *Board) index(x float64) int {
	k := int(math.Floor(x / b.cellSize))
	if x < float64(k)*b.cellSize {
		k--
	} else if x >= float64(k+1)*b.cellSize {
		k++
	}
	return k
}

// BoundsForCell - географический прямоугольник клетки.
func (b *Board) BoundsForCell(cell *domain.Cell) domain.Bounds {
	return domain.Bounds{
		LatMin: float64(cell.I) * b.cellSize,
		LngMin: float64(cell.J) * b.cellSize,
		LatMax: float64(cell.I+1) * b.cellSize,
		LngMax: float64(cell.J+1) * b.cellSize,
	}
}

// CenterOf - центр клетки (туда ставим маркер и туда "шагаем" кнопками).
func (b *Board) CenterOf(cell *domain.Cell) domain.LatLng {
	return domain.LatLng{
		Lat: (float64(cell.I) + 0.5) * b.cellSize,
		Lng: (float64(cell.J) + 0.5) * b.cellSize,
	}
}

// Neighborhood возвращает квадрат (2r+1)^2 клеток вокруг center, построчно:
// внешний цикл по di, внутренний по dj. Центр входит в результат.
func (b *Board) Neighborhood(center *domain.Cell, radius int) ([]*domain.Cell, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius must be non-negative, got %d", domain.ErrConfiguration, radius)
	}

	side := 2*radius + 1
	cells := make([]*domain.Cell, 0, side*side)
	for di := -radius; di <= radius; di++ {
		for dj := -radius; dj <= radius; dj++ {
			cells = append(cells, b.Canonical(center.I+di, center.J+dj))
		}
	}
	return cells, nil
}

// CellCount - размер реестра (для debug)
func (b *Board) CellCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.knownCells)
}
