package main

import (
	"fmt"

	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/spf13/cobra"
)

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved session (pits, inventory, trail)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			sessions, blobs, err := a.openSessions(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer blobs.Close()

			if err := sessions.Clear(cmd.Context()); err != nil {
				return err
			}
			logger.Log.WithField("storage", cfg.Storage.Backend).Info("session cleared")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return err
		},
	}
}
