package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/cache"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// exportDoc - читаемый дамп сохраненной сессии
type exportDoc struct {
	Points    int           `json:"points" toml:"points"`
	Status    string        `json:"status" toml:"status"`
	Inventory []exportToken `json:"inventory" toml:"inventory"`
	Trail     []exportPoint `json:"trail" toml:"trail"`
	Pits      []exportPit   `json:"pits" toml:"pits"`
	Dropped   []string      `json:"dropped,omitempty" toml:"dropped,omitempty"`
}

type exportToken struct {
	I      int    `json:"i" toml:"i"`
	J      int    `json:"j" toml:"j"`
	Serial int    `json:"serial" toml:"serial"`
	Label  string `json:"label" toml:"label"`
}

type exportPoint struct {
	Lat float64 `json:"lat" toml:"lat"`
	Lng float64 `json:"lng" toml:"lng"`
}

type exportPit struct {
	Cell   string        `json:"cell" toml:"cell"`
	Tokens []exportToken `json:"tokens" toml:"tokens"`
}

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the saved session (pits, inventory, trail)",
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

			state, err := sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			return writeExport(cmd.OutOrStdout(), buildExport(state), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or toml")
	return cmd
}

func buildExport(state domain.SessionState) exportDoc {
	doc := exportDoc{
		Points:    len(state.Inventory),
		Status:    domain.StatusLine(len(state.Inventory)),
		Inventory: toExportTokens(state.Inventory),
		Trail:     make([]exportPoint, 0, len(state.Trail)),
		Pits:      make([]exportPit, 0, len(state.Mementos)),
	}
	for _, p := range state.Trail {
		doc.Trail = append(doc.Trail, exportPoint{Lat: p.Lat, Lng: p.Lng})
	}
	for _, m := range state.Mementos {
		tokens, err := cache.FromMemento(m.SerializedTokens)
		if err != nil {
			doc.Dropped = append(doc.Dropped, m.CellKey)
			continue
		}
		doc.Pits = append(doc.Pits, exportPit{Cell: m.CellKey, Tokens: toExportTokens(tokens)})
	}
	return doc
}

func toExportTokens(tokens []domain.Token) []exportToken {
	out := make([]exportToken, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, exportToken{I: t.OwnerI, J: t.OwnerJ, Serial: t.Serial, Label: t.String()})
	}
	return out
}

func writeExport(w io.Writer, doc exportDoc, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "toml":
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown export format %q (want json or toml)", format)
	}
}
