package actions

import (
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine/handlers"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
)

// HandleMove - шаг на одну клетку кнопками.
func HandleMove(ctx handlers.Context, p api.StepPayload) (handlers.Result, error) {
	ctx.Game.Step(p.Di, p.Dj)
	return handlers.EmptyResult(), nil
}

// HandleLocate - замер геолокации. Повтор той же точки игнорируется миром.
func HandleLocate(ctx handlers.Context, p api.LocatePayload) (handlers.Result, error) {
	ctx.Game.MoveTo(p.Lat, p.Lng)
	return handlers.EmptyResult(), nil
}
