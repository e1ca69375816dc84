package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flight-search/flight-query-planner/internal/app"
	"github.com/flight-search/flight-query-planner/internal/domain"
)

func newAirportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "airport CODE...",
		Short: "Show catalog entries for airport codes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			svc, err := app.Build(s.cfg, s.caches, s.log)
			if err != nil {
				return err
			}

			airports := make([]domain.Airport, 0, len(args))
			for _, code := range args {
				a, ok := svc.Catalog.Lookup(code)
				if !ok {
					return fmt.Errorf("airport %q not found", code)
				}
				airports = append(airports, a)
			}
			return writeJSON(cmd.OutOrStdout(), airports)
		},
	}
}
