package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/cache"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/grid"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/utils"
	"github.com/sirupsen/logrus"
)

var errRestoreAfterStart = errors.New("session restore must happen before the world starts")

// World - единственный владелец состояния игры: сетка, ямы, игрок.
// Не потокобезопасен, все вызовы идут из горутины GameService.
type World struct {
	cfg   Config
	board *grid.Board
	pits  *cache.Store

	player   *domain.Inventory
	position domain.LatLng
	trail    []domain.LatLng

	// Видимая окрестность и ямы в ней (канонические клетки)
	cell     *domain.Cell
	visible  []*domain.Cell
	pitCells []*domain.Cell
	pitSet   map[*domain.Cell]bool

	started bool
}

// NewWorld создает мир. Ямы не трогаются до Start: сначала можно восстановить сессию.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	board, err := grid.NewBoard(cfg.CellSize)
	if err != nil {
		return nil, err
	}

	return &World{
		cfg:      cfg,
		board:    board,
		pits:     cache.NewStore(cache.LuckGenerator(cfg.MaxInitialTokens), cache.WithStrict(cfg.Strict)),
		player:   domain.NewInventory(nil),
		position: cfg.Origin,
		pitSet:   make(map[*domain.Cell]bool),
	}, nil
}

// Restore загружает сохраненную сессию. Только до Start.
func (w *World) Restore(state domain.SessionState) error {
	if w.started {
		return errRestoreAfterStart
	}

	restored, dropped := w.pits.RestoreAll(state.Mementos)
	w.player = domain.NewInventory(state.Inventory)
	w.trail = append([]domain.LatLng(nil), state.Trail...)
	if len(w.trail) > 0 {
		w.position = w.trail[len(w.trail)-1]
	}

	logger.Log.WithFields(logrus.Fields{
		"pits":      restored,
		"dropped":   dropped,
		"inventory": w.player.Len(),
		"trail":     len(w.trail),
	}).Info("session restored")
	return nil
}

// Start ставит игрока на карту и строит первую окрестность.
func (w *World) Start() {
	if w.started {
		return
	}
	w.started = true
	if len(w.trail) == 0 {
		w.trail = append(w.trail, w.position)
	}
	w.refresh()
}

// MoveTo перемещает игрока в точку (замер геолокации).
// Повтор текущей позиции ничего не делает и возвращает false.
func (w *World) MoveTo(lat, lng float64) bool {
	next := domain.LatLng{Lat: lat, Lng: lng}
	if w.started && next == w.position {
		return false
	}
	w.position = next
	w.trail = append(w.trail, next)

	prev := w.cell
	w.refresh()
	if prev != w.cell {
		logger.Log.WithFields(logrus.Fields{
			"cell": w.cell.Key(),
			"pits": len(w.pitCells),
		}).Debug("player entered cell")
	}
	return true
}

// Step сдвигает игрока на (di, dj) клеток.
func (w *World) Step(di, dj int) bool {
	return w.MoveTo(
		w.position.Lat+float64(di)*w.cfg.CellSize,
		w.position.Lng+float64(dj)*w.cfg.CellSize,
	)
}

// Collect забирает верхнюю монету из видимой ямы (i, j).
func (w *World) Collect(i, j int) (domain.Token, bool, error) {
	cell, err := w.visiblePit(i, j)
	if err != nil {
		return domain.Token{}, false, err
	}
	token, ok := w.pits.Withdraw(*cell, w.player)
	return token, ok, nil
}

// Deposit кладет верхнюю монету игрока в видимую яму (i, j).
// Пустые руки - (Token{}, false, nil).
func (w *World) Deposit(i, j int) (domain.Token, bool, error) {
	cell, err := w.visiblePit(i, j)
	if err != nil {
		return domain.Token{}, false, err
	}
	token, ok := w.player.Peek()
	if !ok {
		return domain.Token{}, false, nil
	}
	if !w.pits.Deposit(*cell, token, w.player) {
		return domain.Token{}, false, nil
	}
	return token, true, nil
}

// Reset стирает историю: все ямы, инвентарь и след. Игрок возвращается в Origin.
func (w *World) Reset() {
	w.pits.Reset()
	w.player.Clear()
	w.position = w.cfg.Origin
	w.trail = []domain.LatLng{w.position}
	w.refresh()
	logger.Log.Info("world reset")
}

// Snapshot собирает состояние для сохранения.
func (w *World) Snapshot() domain.SessionState {
	return domain.SessionState{
		Mementos:  w.pits.SnapshotAll(),
		Inventory: w.player.Tokens(),
		Trail:     append([]domain.LatLng(nil), w.trail...),
	}
}

// Points - очки игрока = количество монет в инвентаре.
func (w *World) Points() int {
	return w.player.Len()
}

// Cell - клетка игрока.
func (w *World) Cell() domain.Cell {
	if w.cell == nil {
		return *w.board.CellForPoint(w.position.Lat, w.position.Lng)
	}
	return *w.cell
}

// HasPit - решение о спавне: luck("i,j") < SpawnProbability.
func (w *World) HasPit(cell domain.Cell) bool {
	return utils.Luck(utils.LuckKey(cell.I, cell.J)) < w.cfg.SpawnProbability
}

func (w *World) visiblePit(i, j int) (*domain.Cell, error) {
	cell := w.board.Canonical(i, j)
	if !w.pitSet[cell] {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotVisible, cell)
	}
	return cell, nil
}

// refresh пересчитывает окрестность, поднимает ямы в ней и выгружает ушедшие из вида.
func (w *World) refresh() {
	w.cell = w.board.CellForPoint(w.position.Lat, w.position.Lng)

	visible, err := w.board.Neighborhood(w.cell, w.cfg.VisibilityRadius)
	if err != nil {
		// Радиус проверен в Config.Validate
		panic(err)
	}
	w.visible = visible

	w.pitCells = make([]*domain.Cell, 0, len(w.pitCells))
	w.pitSet = make(map[*domain.Cell]bool)
	keep := make([]domain.Cell, 0, len(visible)/8)
	for _, c := range visible {
		if !w.HasPit(*c) {
			continue
		}
		w.pits.Materialize(*c)
		w.pitCells = append(w.pitCells, c)
		w.pitSet[c] = true
		keep = append(keep, *c)
	}

	if evicted := w.pits.EvictExcept(keep); evicted > 0 {
		logger.Log.WithField("evicted", evicted).Debug("pits left the view")
	}
}

// Position - текущая точка игрока.
func (w *World) Position() domain.LatLng { return w.position }

// Trail - копия пройденного пути.
func (w *World) Trail() []domain.LatLng {
	return append([]domain.LatLng(nil), w.trail...)
}

// Inventory - монеты игрока снизу вверх.
func (w *World) Inventory() []domain.Token { return w.player.Tokens() }

// Visible - видимая окрестность, построчно.
func (w *World) Visible() []*domain.Cell { return w.visible }

// PitCells - ямы в видимой окрестности, в том же порядке.
func (w *World) PitCells() []*domain.Cell { return w.pitCells }

func (w *World) Board() *grid.Board { return w.board }

func (w *World) Pits() *cache.Store { return w.pits }

func (w *World) Config() Config { return w.cfg }

func (w *World) Started() bool { return w.started }

// Teleport переносит игрока в центр клетки (i, j).
// Клетка, центр которой вне диапазона широты и долготы, отклоняется с ErrOutOfRange.
func (w *World) Teleport(i, j int) (bool, error) {
	cell := domain.Cell{I: i, J: j}
	center := w.board.CenterOf(&cell)
	if math.Abs(center.Lat) > 90 || math.Abs(center.Lng) > 180 {
		return false, fmt.Errorf("%w: %s", domain.ErrOutOfRange, cell)
	}
	return w.MoveTo(center.Lat, center.Lng), nil
}
