package fixture

import (
	"fmt"
	"math"
	"time"

	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// Fare multipliers relative to an adult fare.
const (
	childFareRatio  = 0.75
	infantFareRatio = 0.1
)

// normalize builds the flights a provider offers for a query from its timetable.
// One-way queries yield one flight per outbound schedule; round trips pair every
// outbound schedule with every inbound schedule of the same airline.
func normalize(provider, currency string, schedules []schedule, q domain.FlightQuery) ([]domain.Flight, error) {
	depDate, err := timeutil.ParseDate(q.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date %q: %w", q.DepartureDate, err)
	}

	var retDate time.Time
	if !q.IsOneWay() {
		retDate, err = timeutil.ParseDate(q.ReturnDate)
		if err != nil {
			return nil, fmt.Errorf("invalid return date %q: %w", q.ReturnDate, err)
		}
	}

	outbound := filterRoute(schedules, q.Origin, q.Destination, q.CabinClass)
	result := make([]domain.Flight, 0, len(outbound))

	for _, out := range outbound {
		f, err := normalizeFlight(provider, currency, out, depDate, q)
		if err != nil {
			continue
		}

		if q.IsOneWay() {
			result = append(result, f)
			continue
		}

		for _, in := range filterRoute(schedules, q.Destination, q.Origin, q.CabinClass) {
			if in.AirlineCode != out.AirlineCode {
				continue
			}
			inDeparture, err := departureAt(retDate, in.DepartureTime)
			if err != nil {
				continue
			}

			rt := f
			rt.ID = f.ID + "-" + in.FlightNumber
			rt.FlightNumber = out.FlightNumber + "/" + in.FlightNumber
			rt.Inbound = &domain.FlightPoint{AirportCode: in.Origin, DateTime: inDeparture}
			rt.Stops = max(out.Stops, in.Stops)
			rt.Duration = domain.NewDurationInfo(out.DurationMinutes + in.DurationMinutes)
			rt.Price.Amount = roundCents(f.Price.Amount + partyFare(in.Fares[string(q.CabinClass)], q))
			result = append(result, rt)
		}
	}

	return result, nil
}

// normalizeFlight converts a single schedule on date to a domain Flight.
func normalizeFlight(provider, currency string, s schedule, date time.Time, q domain.FlightQuery) (domain.Flight, error) {
	departure, err := departureAt(date, s.DepartureTime)
	if err != nil {
		return domain.Flight{}, err
	}

	return domain.Flight{
		ID:           fmt.Sprintf("%s-%s-%s", provider, s.FlightNumber, q.DepartureDate),
		FlightNumber: s.FlightNumber,
		Airline: domain.AirlineInfo{
			Code: s.AirlineCode,
			Name: s.AirlineName,
		},
		Departure: domain.FlightPoint{
			AirportCode: s.Origin,
			DateTime:    departure,
		},
		Arrival: domain.FlightPoint{
			AirportCode: s.Destination,
			DateTime:    departure.Add(time.Duration(s.DurationMinutes) * time.Minute),
		},
		Duration: domain.NewDurationInfo(s.DurationMinutes),
		Price: domain.PriceInfo{
			Amount:   roundCents(partyFare(s.Fares[string(q.CabinClass)], q)),
			Currency: currency,
		},
		Class:    q.CabinClass,
		Stops:    s.Stops,
		Provider: provider,
		QueryKey: q.Key(),
	}, nil
}

// filterRoute returns the schedules flying origin to destination that sell the cabin.
func filterRoute(schedules []schedule, origin, destination string, cabin domain.CabinClass) []schedule {
	result := make([]schedule, 0)
	for _, s := range schedules {
		if s.Origin != origin || s.Destination != destination {
			continue
		}
		if _, ok := s.Fares[string(cabin)]; !ok {
			continue
		}
		result = append(result, s)
	}
	return result
}

// departureAt combines a calendar date with an HH:MM departure time.
func departureAt(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse departure time %q", clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// partyFare prices a fare for every passenger in the query.
func partyFare(adultFare float64, q domain.FlightQuery) float64 {
	return adultFare * (float64(q.Adults) + childFareRatio*float64(q.Children) + infantFareRatio*float64(q.Infants))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
