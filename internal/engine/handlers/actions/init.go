package actions

import "github.com/GigzPumpking/cmpm-121-demo-3/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Info("Welcome! Walk around to find pits full of coins."), nil
}

// HandleReset стирает всю историю: ямы, инвентарь и след.
func HandleReset(ctx handlers.Context) (handlers.Result, error) {
	ctx.Game.Reset()
	return handlers.Info("The world has been reset."), nil
}
