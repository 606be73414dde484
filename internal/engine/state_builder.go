package engine

import (
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
)

// BuildState собирает снимок мира для клиента: игрок, окрестность, ямы.
func (w *World) BuildState() *api.ServerResponse {
	cells := make([]api.CellRef, 0, len(w.visible))
	for _, c := range w.visible {
		cells = append(cells, toCellRef(*c))
	}

	pits := make([]api.PitView, 0, len(w.pitCells))
	for _, c := range w.pitCells {
		pits = append(pits, w.PitView(c))
	}

	cell := w.Cell()
	return &api.ServerResponse{
		Type: "UPDATE",
		Grid: &api.GridMeta{CellSize: w.cfg.CellSize, Radius: w.cfg.VisibilityRadius},
		Player: &api.PlayerView{
			Position:  toLatLng(w.position),
			Cell:      toCellRef(cell),
			Inventory: toTokenViews(w.player.Tokens()),
			Points:    w.Points(),
			Status:    domain.StatusLine(w.Points()),
			Trail:     toLatLngs(w.trail),
		},
		Cells: cells,
		Pits:  pits,
	}
}

// PitView - DTO одной ямы. Содержимое берется через Peek, яма не создается.
func (w *World) PitView(cell *domain.Cell) api.PitView {
	b := w.board.BoundsForCell(cell)
	view := api.PitView{
		Cell: toCellRef(*cell),
		Bounds: api.BoundsView{
			South: b.LatMin, West: b.LngMin,
			North: b.LatMax, East: b.LngMax,
		},
		Tokens: []api.TokenView{},
	}
	if snap, ok := w.pits.Peek(*cell); ok {
		view.Tokens = toTokenViews(snap.Tokens)
	}
	return view
}

func toCellRef(c domain.Cell) api.CellRef {
	return api.CellRef{I: c.I, J: c.J}
}

func toLatLng(p domain.LatLng) api.LatLng {
	return api.LatLng{Lat: p.Lat, Lng: p.Lng}
}

func toLatLngs(points []domain.LatLng) []api.LatLng {
	out := make([]api.LatLng, len(points))
	for i, p := range points {
		out[i] = toLatLng(p)
	}
	return out
}

func toTokenViews(tokens []domain.Token) []api.TokenView {
	out := make([]api.TokenView, len(tokens))
	for i, t := range tokens {
		out[i] = api.TokenView{I: t.OwnerI, J: t.OwnerJ, Serial: t.Serial, Label: t.String()}
	}
	return out
}
