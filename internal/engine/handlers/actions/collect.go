package actions

import (
	"fmt"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine/handlers"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/api"
)

// HandleCollect обрабатывает команду COLLECT - забрать верхнюю монету из ямы
func HandleCollect(ctx handlers.Context, p api.CellPayload) (handlers.Result, error) {
	cell := domain.Cell{I: p.I, J: p.J}

	token, ok, err := ctx.Game.Collect(p.I, p.J)
	if err != nil {
		return handlers.Result{}, err
	}
	if !ok {
		return handlers.Fail(fmt.Sprintf("The pit at %s is empty.", cell)), nil
	}

	return handlers.Info(fmt.Sprintf("Collected %s from %s. %s", token, cell, domain.StatusLine(ctx.Game.Points()))), nil
}

// HandleDeposit обрабатывает команду DEPOSIT - положить верхнюю монету игрока в яму
func HandleDeposit(ctx handlers.Context, p api.CellPayload) (handlers.Result, error) {
	cell := domain.Cell{I: p.I, J: p.J}

	token, ok, err := ctx.Game.Deposit(p.I, p.J)
	if err != nil {
		return handlers.Result{}, err
	}
	if !ok {
		return handlers.Fail("You have no coins to deposit."), nil
	}

	return handlers.Info(fmt.Sprintf("Deposited %s into %s. %s", token, cell, domain.StatusLine(ctx.Game.Points()))), nil
}
