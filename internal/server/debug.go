package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/cache"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
	"github.com/gorilla/mux"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Все чтения идут через GameService.Inspect, внутри игрового цикла.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(r *mux.Router) {
	d := r.PathPrefix("/debug").Subrouter()
	d.HandleFunc("/pits", h.handleListPits).Methods(http.MethodGet)
	d.HandleFunc("/pits/{i:-?[0-9]+}/{j:-?[0-9]+}", h.handlePit).Methods(http.MethodGet)
	d.HandleFunc("/grid", h.handleGrid).Methods(http.MethodGet)
}

// PitDump - одна сохраненная яма
type PitDump struct {
	Cell   string         `json:"cell"`
	Live   bool           `json:"live"`
	Tokens []domain.Token `json:"tokens"`
}

// /debug/pits - все memento, отсортированные по ключу
func (h *DebugHandler) handleListPits(w http.ResponseWriter, r *http.Request) {
	dump := []PitDump{}
	err := h.Service.Inspect(r.Context(), func(world *engine.World) {
		pits := world.Pits()
		for _, m := range pits.SnapshotAll() {
			item := PitDump{Cell: m.CellKey, Tokens: []domain.Token{}}
			if tokens, err := cache.FromMemento(m.SerializedTokens); err == nil {
				item.Tokens = tokens
			}
			if cell, err := domain.ParseCellKey(m.CellKey); err == nil {
				item.Live = pits.IsLive(cell)
			}
			dump = append(dump, item)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, dump)
}

// /debug/pits/{i}/{j} - одна яма. Unknown-клетка не создается, отвечаем 404.
func (h *DebugHandler) handlePit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	i, errI := strconv.Atoi(vars["i"])
	j, errJ := strconv.Atoi(vars["j"])
	if errI != nil || errJ != nil {
		http.Error(w, "bad cell coordinates", http.StatusBadRequest)
		return
	}

	var (
		view  api.PitView
		found bool
	)
	err := h.Service.Inspect(r.Context(), func(world *engine.World) {
		cell := world.Board().Canonical(i, j)
		if _, found = world.Pits().Peek(*cell); found {
			view = world.PitView(cell)
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !found {
		http.Error(w, "Pit not found", http.StatusNotFound)
		return
	}

	writeJSON(w, view)
}

// GridDump - параметры сетки и счетчики
type GridDump struct {
	CellSize         float64       `json:"cellSize"`
	VisibilityRadius int           `json:"visibilityRadius"`
	SpawnProbability float64       `json:"spawnProbability"`
	KnownCells       int           `json:"knownCells"`
	PlayerCell       domain.Cell   `json:"playerCell"`
	Visible          int           `json:"visible"`
	VisiblePits      int           `json:"visiblePits"`
	Mementos         int           `json:"mementos"`
	LivePits         int           `json:"livePits"`
	Origin           domain.LatLng `json:"origin"`
	Subscribers      int           `json:"subscribers"`
	DroppedMessages  int           `json:"droppedMessages"`
	Position         domain.LatLng `json:"position"`
}

// /debug/grid - размер реестра клеток и конфиг
func (h *DebugHandler) handleGrid(w http.ResponseWriter, r *http.Request) {
	var dump GridDump
	err := h.Service.Inspect(r.Context(), func(world *engine.World) {
		cfg := world.Config()
		dump = GridDump{
			CellSize:         cfg.CellSize,
			VisibilityRadius: cfg.VisibilityRadius,
			SpawnProbability: cfg.SpawnProbability,
			KnownCells:       world.Board().CellCount(),
			PlayerCell:       world.Cell(),
			Visible:          len(world.Visible()),
			VisiblePits:      len(world.PitCells()),
			Mementos:         world.Pits().Len(),
			LivePits:         world.Pits().LiveCount(),
			Origin:           cfg.Origin,
			Position:         world.Position(),
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	dump.Subscribers = h.Service.Hub.SubscriberCount()
	dump.DroppedMessages = h.Service.Hub.Dropped()

	writeJSON(w, dump)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(data)
}
