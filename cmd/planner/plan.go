package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/flight-search/flight-query-planner/internal/app"
	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/usecase"
)

// intentFlags binds a SearchIntent to command flags.
type intentFlags struct {
	origins      []string
	destinations []string
	depart       string
	ret          string
	stay         int
	flex         int
	adults       int
	children     int
	infants      int
	cabin        string
	maxPrice     float64
	maxStops     int
	preferred    []string
	excluded     []string
	bags         int
	seat         string
}

func (f *intentFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.origins, "from", nil, "origin airport or metro codes (comma separated)")
	fs.StringSliceVar(&f.destinations, "to", nil, "destination airport or metro codes (comma separated)")
	fs.StringVar(&f.depart, "depart", "", "departure date or expression (YYYY-MM-DD, tomorrow, next-weekend, ...)")
	fs.StringVar(&f.ret, "return", "", "return date or expression; one-way or empty for no return")
	fs.IntVar(&f.stay, "stay", 0, "stay duration in days; derives the return date")
	fs.IntVar(&f.flex, "flex", 0, "date flexibility in days either side")
	fs.IntVar(&f.adults, "adults", 1, "number of adults")
	fs.IntVar(&f.children, "children", 0, "number of children")
	fs.IntVar(&f.infants, "infants", 0, "number of infants")
	fs.StringVar(&f.cabin, "cabin", "", "cabin class (economy, premium_economy, business, first)")
	fs.Float64Var(&f.maxPrice, "max-price", 0, "maximum price")
	fs.IntVar(&f.maxStops, "max-stops", 0, "maximum number of stops")
	fs.StringSliceVar(&f.preferred, "prefer", nil, "preferred airline codes")
	fs.StringSliceVar(&f.excluded, "exclude", nil, "excluded airline codes")
	fs.IntVar(&f.bags, "bags", 0, "checked bags")
	fs.StringVar(&f.seat, "seat", "", "seat preference")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("depart")
}

// intent builds the SearchIntent; optional numeric fields are set only when their flag was given.
func (f *intentFlags) intent(cmd *cobra.Command) domain.SearchIntent {
	changed := cmd.Flags().Changed
	intent := domain.SearchIntent{
		Origins:                 f.origins,
		Destinations:            f.destinations,
		DepartureDateExpression: f.depart,
		ReturnDateExpression:    f.ret,
		Passengers: domain.Passengers{
			Adults:   f.adults,
			Children: f.children,
			Infants:  f.infants,
		},
		CabinClass: f.cabin,
		Preferences: domain.Preferences{
			PreferredAirlines: f.preferred,
			ExcludedAirlines:  f.excluded,
			SeatPreference:    f.seat,
		},
	}
	if changed("stay") {
		intent.StayDurationDays = &f.stay
	}
	if changed("flex") {
		intent.DateFlexibilityDays = &f.flex
	}
	if changed("max-price") {
		intent.Preferences.MaxPrice = &f.maxPrice
	}
	if changed("max-stops") {
		intent.Preferences.MaxStops = &f.maxStops
	}
	if changed("bags") {
		intent.Preferences.CheckedBags = &f.bags
	}
	return intent
}

func newPlanCmd(g *globalFlags) *cobra.Command {
	f := &intentFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Expand a travel intent into concrete flight queries",
		Example: `  planner plan --from NYC --to LAX --depart next-weekend --return one-way
  planner plan --from JFK --to SFO,LAX --depart 2026-03-14 --stay 7 --flex 1`,
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

			plan, err := svc.UseCase.Plan(cmd.Context(), f.intent(cmd))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), plan)
		},
	}
	f.register(cmd)
	return cmd
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	f := &intentFlags{}
	var sortBy string
	var limit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Plan a travel intent and search it against the fixture providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.SortOption(sortBy).IsValid() {
				return domain.NewValidationError("sort", "sort must be one of: best, price, duration, departure")
			}

			s, err := openSession(g)
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			svc, err := app.Build(s.cfg, s.caches, s.log)
			if err != nil {
				return err
			}

			resp, err := svc.UseCase.Search(cmd.Context(), f.intent(cmd), usecase.SearchOptions{SortBy: domain.SortOption(sortBy), Limit: limit})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&sortBy, "sort", "best", "sort order (best, price, duration, departure)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of flights (0 = all)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
