package planner

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// Field names reported in validation errors.
const (
	fieldOrigins       = "origins"
	fieldDestinations  = "destinations"
	fieldDepartureDate = "departureDate"
	fieldReturnDate    = "returnDate"
	fieldStayDuration  = "stayDurationDays"
	fieldFlexibility   = "dateFlexibilityDays"
	fieldIntent        = "intent"
)

// Generator expands SearchIntents into FlightQueries.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	clock      timeutil.Clock
	loc        *time.Location
	mode       DateMode
	maxQueries int
	log        zerolog.Logger
}

// New creates a Generator. Without options it resolves against the system clock in UTC,
// uses DateModeRange and caps expansion at DefaultMaxQueries.
func New(opts ...Option) *Generator {
	g := &Generator{
		clock:      timeutil.NewRealClock(),
		loc:        time.UTC,
		mode:       DateModeRange,
		maxQueries: DefaultMaxQueries,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Mode returns the generator's multi-day expression policy.
func (g *Generator) Mode() DateMode {
	return g.mode
}

// Generate expands the intent with a default Generator.
func Generate(intent domain.SearchIntent) ([]domain.FlightQuery, error) {
	return New().Generate(intent)
}

// normalizedIntent is a validated intent with defaults applied.
type normalizedIntent struct {
	origins      []string
	destinations []string
	passengers   domain.Passengers
	cabin        domain.CabinClass
	stay         *int
	flex         int
}

// Generate validates the intent and returns the cross-product of origins, destinations,
// departure dates and return dates. Origin == destination pairs and return dates not strictly
// after departure are skipped while generating. The result is never empty on success.
//
// Every error is a *domain.ValidationError; errors.Is distinguishes bad input
// (ErrInvalidRequest) from an unsatisfiable intent (ErrNoCombinations), an oversized one
// (ErrTooManyCombinations) or an internal failure (ErrGenerationFailed).
func (g *Generator) Generate(intent domain.SearchIntent) (queries []domain.FlightQuery, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("panic", r).Msg("Query generation panicked")
			queries = nil
			err = &domain.ValidationError{Message: "query generation failed", Err: domain.ErrGenerationFailed}
		}
	}()

	n, err := g.validate(intent)
	if err != nil {
		return nil, err
	}

	departures, err := g.ResolveDates(fieldDepartureDate, intent.DepartureDateExpression)
	if err != nil {
		return nil, err
	}
	departures = widen(departures, n.flex)

	var returns []time.Time
	if n.stay == nil {
		returns, err = g.ResolveDates(fieldReturnDate, intent.ReturnDateExpression)
		if err != nil {
			return nil, err
		}
		returns = widen(returns, n.flex)
	} else if intent.ReturnDateExpression != "" {
		g.log.Debug().
			Str("returnDate", intent.ReturnDateExpression).
			Int("stayDurationDays", *n.stay).
			Msg("Stay duration set, ignoring return date expression")
	}

	preferences := clonePreferences(intent.Preferences)
	queries = make([]domain.FlightQuery, 0)

	for _, origin := range n.origins {
		for _, destination := range n.destinations {
			if origin == destination {
				continue
			}
			for _, dep := range departures {
				for _, ret := range g.returnDates(n, dep, returns) {
					if len(queries) == g.maxQueries {
						return nil, &domain.ValidationError{
							Field:   fieldIntent,
							Message: fmt.Sprintf("intent expands to more than %d queries", g.maxQueries),
							Err:     domain.ErrTooManyCombinations,
						}
					}
					queries = append(queries, domain.FlightQuery{
						Origin:        origin,
						Destination:   destination,
						DepartureDate: timeutil.FormatDate(dep),
						ReturnDate:    ret,
						Adults:        n.passengers.Adults,
						Children:      n.passengers.Children,
						Infants:       n.passengers.Infants,
						CabinClass:    n.cabin,
						Preferences:   preferences,
					})
				}
			}
		}
	}

	if len(queries) == 0 {
		return nil, &domain.ValidationError{
			Field:   fieldIntent,
			Message: "no valid origin, destination and date combinations remain",
			Err:     domain.ErrNoCombinations,
		}
	}

	g.log.Debug().
		Int("origins", len(n.origins)).
		Int("destinations", len(n.destinations)).
		Int("departures", len(departures)).
		Int("queries", len(queries)).
		Msg("Queries generated")

	return queries, nil
}

// returnDates lists the return dates paired with dep, already pruned.
// "" stands for the one-way placeholder.
func (g *Generator) returnDates(n normalizedIntent, dep time.Time, returns []time.Time) []string {
	if n.stay != nil {
		ret := timeutil.AddDays(dep, *n.stay)
		if !ret.After(dep) {
			return nil
		}
		return []string{timeutil.FormatDate(ret)}
	}

	if len(returns) == 0 {
		return []string{""}
	}

	result := make([]string, 0, len(returns))
	for _, ret := range returns {
		if ret.After(dep) {
			result = append(result, timeutil.FormatDate(ret))
		}
	}
	return result
}

// validate checks every input before any expansion happens.
func (g *Generator) validate(intent domain.SearchIntent) (normalizedIntent, error) {
	var n normalizedIntent
	var err error

	if n.origins, err = domain.NormalizeLocationCodes(fieldOrigins, intent.Origins); err != nil {
		return n, err
	}
	if n.destinations, err = domain.NormalizeLocationCodes(fieldDestinations, intent.Destinations); err != nil {
		return n, err
	}

	if intent.DepartureDateExpression == "" {
		return n, domain.NewValidationError(fieldDepartureDate, "departureDate is required")
	}

	if n.cabin, err = domain.ParseCabinClass(intent.CabinClass); err != nil {
		return n, err
	}

	n.passengers = intent.Passengers.WithDefaults()
	if err := n.passengers.Validate(); err != nil {
		return n, err
	}

	if intent.StayDurationDays != nil {
		stay := *intent.StayDurationDays
		if stay < 0 || stay > MaxStayDurationDays {
			return n, domain.NewInvalidValueError(fieldStayDuration, fmt.Sprint(stay),
				fmt.Sprintf("stayDurationDays must be between 0 and %d", MaxStayDurationDays))
		}
		n.stay = &stay
	}

	if intent.DateFlexibilityDays != nil {
		flex := *intent.DateFlexibilityDays
		if flex < 0 || flex > MaxFlexibilityDays {
			return n, domain.NewInvalidValueError(fieldFlexibility, fmt.Sprint(flex),
				fmt.Sprintf("dateFlexibilityDays must be between 0 and %d", MaxFlexibilityDays))
		}
		n.flex = flex
	}

	return n, nil
}

// clonePreferences copies the slices and pointers so later changes to the intent
// cannot reach the generated queries.
func clonePreferences(p domain.Preferences) domain.Preferences {
	out := p
	out.PreferredAirlines = append([]string(nil), p.PreferredAirlines...)
	out.ExcludedAirlines = append([]string(nil), p.ExcludedAirlines...)
	if len(out.PreferredAirlines) == 0 {
		out.PreferredAirlines = nil
	}
	if len(out.ExcludedAirlines) == 0 {
		out.ExcludedAirlines = nil
	}
	if p.MaxPrice != nil {
		v := *p.MaxPrice
		out.MaxPrice = &v
	}
	if p.MaxStops != nil {
		v := *p.MaxStops
		out.MaxStops = &v
	}
	if p.CheckedBags != nil {
		v := *p.CheckedBags
		out.CheckedBags = &v
	}
	if p.DepartureTimeWindow != nil {
		w := *p.DepartureTimeWindow
		out.DepartureTimeWindow = &w
	}
	if p.ReturnTimeWindow != nil {
		w := *p.ReturnTimeWindow
		out.ReturnTimeWindow = &w
	}
	return out
}
