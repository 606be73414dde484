package admin

import (
	"fmt"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine/handlers"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
)

// HandleTeleport переносит игрока в центр клетки (i, j). Только для отладки.
func HandleTeleport(ctx handlers.Context, p api.CellPayload) (handlers.Result, error) {
	cell := domain.Cell{I: p.I, J: p.J}
	moved, err := ctx.Game.Teleport(p.I, p.J)
	if err != nil {
		return handlers.Result{}, err
	}
	if !moved {
		return handlers.Info(fmt.Sprintf("Already at %s.", cell)), nil
	}
	return handlers.Info(fmt.Sprintf("⚡ Teleported to %s", cell)), nil
}
