package usecase

import (
	"sort"

	"github.com/flight-search/flight-query-planner/internal/domain"
)

// Ranking weights; they sum to 1.
const (
	weightPrice    = 0.5
	weightDuration = 0.3
	weightStops    = 0.2
)

// bounds is the observed range of one ranking factor.
type bounds struct {
	min, max float64
}

func (b *bounds) include(v float64) {
	if v < b.min {
		b.min = v
	}
	if v > b.max {
		b.max = v
	}
}

// normalize maps v into [0, 1]. A degenerate range maps everything to 0.
func (b bounds) normalize(v float64) float64 {
	if b.max == b.min {
		return 0
	}
	return (v - b.min) / (b.max - b.min)
}

// CalculateRankingScores sets RankingScore on a copy of every flight:
//
//	Score = 0.5 × price + 0.3 × duration + 0.2 × stops
//
// with each factor min-max normalized over the input. Lower is better.
func CalculateRankingScores(flights []domain.Flight) []domain.Flight {
	if len(flights) == 0 {
		return flights
	}

	price, duration, stops := factorBounds(flights)

	result := make([]domain.Flight, len(flights))
	for i, f := range flights {
		result[i] = f
		result[i].RankingScore = weightPrice*price.normalize(f.Price.Amount) +
			weightDuration*duration.normalize(float64(f.Duration.TotalMinutes)) +
			weightStops*stops.normalize(float64(f.Stops))
	}
	return result
}

// factorBounds computes the price, duration and stops ranges in one pass.
func factorBounds(flights []domain.Flight) (price, duration, stops bounds) {
	if len(flights) == 0 {
		return
	}

	first := flights[0]
	price = bounds{first.Price.Amount, first.Price.Amount}
	duration = bounds{float64(first.Duration.TotalMinutes), float64(first.Duration.TotalMinutes)}
	stops = bounds{float64(first.Stops), float64(first.Stops)}

	for _, f := range flights[1:] {
		price.include(f.Price.Amount)
		duration.include(float64(f.Duration.TotalMinutes))
		stops.include(float64(f.Stops))
	}
	return price, duration, stops
}

// SortFlights returns a sorted copy of flights. Ties fall back to departure time
// and then ID, so results from concurrent providers come out in a stable order.
// Empty or unknown options sort by best value.
func SortFlights(flights []domain.Flight, sortBy domain.SortOption) []domain.Flight {
	if len(flights) == 0 {
		return flights
	}

	result := make([]domain.Flight, len(flights))
	copy(result, flights)

	if !sortBy.IsValid() {
		sortBy = domain.SortByBestValue
	}

	var primary func(a, b domain.Flight) int
	switch sortBy {
	case domain.SortByPrice:
		primary = func(a, b domain.Flight) int { return compareFloat(a.Price.Amount, b.Price.Amount) }
	case domain.SortByDuration:
		primary = func(a, b domain.Flight) int { return a.Duration.TotalMinutes - b.Duration.TotalMinutes }
	case domain.SortByDeparture:
		primary = func(a, b domain.Flight) int { return a.Departure.DateTime.Compare(b.Departure.DateTime) }
	default:
		primary = func(a, b domain.Flight) int { return compareFloat(a.RankingScore, b.RankingScore) }
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if c := primary(a, b); c != 0 {
			return c < 0
		}
		if c := a.Departure.DateTime.Compare(b.Departure.DateTime); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	return result
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
