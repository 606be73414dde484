package main

import (
	"context"
	"encoding/json"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/agent"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/utils"
	"github.com/spf13/cobra"
)

// simulationReport - итог прогона бота
type simulationReport struct {
	Steps     int    `json:"steps"`
	Collected int    `json:"collected"`
	Deposited int    `json:"deposited"`
	Errors    int    `json:"errors"`
	Points    int    `json:"points"`
	Status    string `json:"status"`
	Pits      int    `json:"pits"`
}

func newSimulateCmd(a *app) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless bot against an in-memory world and print a report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			engineCfg := cfg.EngineConfig()
			engineCfg.AutosaveInterval = 0

			report, err := simulate(cmd.Context(), engineCfg, steps)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 100, "number of bot commands")
	return cmd
}

// simulate гоняет бота без хранилища: сохраненная сессия не трогается.
func simulate(ctx context.Context, cfg engine.Config, steps int) (simulationReport, error) {
	service, err := engine.NewService(cfg, nil)
	if err != nil {
		return simulationReport{}, err
	}
	service.Start(ctx)
	defer service.Stop()

	bot := agent.NewBot("bot_"+utils.GenerateID(), service, steps)
	bot.Run(ctx)

	report := simulationReport{
		Steps:     bot.Steps,
		Collected: bot.Collected,
		Deposited: bot.Deposited,
		Errors:    bot.Errors,
	}
	err = service.Inspect(ctx, func(w *engine.World) {
		report.Points = w.Points()
		report.Pits = w.Pits().Len()
	})
	report.Status = domain.StatusLine(report.Points)
	return report, err
}
