package planner

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flight-search/flight-query-planner/internal/domain"
	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// Date expressions understood by the resolver.
const (
	ExprToday            = "today"
	ExprTomorrow         = "tomorrow"
	ExprNextWeekend      = "next-weekend"
	ExprFollowingWeekend = "following-weekend"
	ExprNextWeek         = "next-week"
	ExprNextMonth        = "next-month"
	ExprOneWay           = "one-way"

	// ExprInvalid is reserved for exercising unparseable input and always fails validation.
	ExprInvalid = "invalid-date"
)

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	inDaysPattern  = regexp.MustCompile(`^in-(\d{1,3})-days?$`)
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// today returns the current calendar day in the generator's location.
func (g *Generator) today() time.Time {
	return timeutil.CalendarDate(g.clock.Now(), g.loc)
}

// ResolveDates resolves a date expression to calendar dates (midnight UTC), sorted ascending.
// Field is "departureDate" or "returnDate" and is used to name the input in errors.
// A nil result with a nil error means "no date" (one-way).
func (g *Generator) ResolveDates(field, expr string) ([]time.Time, error) {
	raw := expr
	expr = strings.ToLower(strings.TrimSpace(expr))

	if expr == "" || expr == ExprOneWay {
		if field == fieldDepartureDate {
			return nil, domain.NewInvalidValueError(field, raw, "departure date cannot be one-way")
		}
		return nil, nil
	}

	if expr == ExprInvalid {
		return nil, domain.NewInvalidValueError(field, raw, "unparseable date expression")
	}

	if isoDatePattern.MatchString(expr) {
		d, err := timeutil.ParseDate(expr)
		if err != nil {
			return nil, domain.NewInvalidValueError(field, raw, "not a valid calendar date")
		}
		return []time.Time{d}, nil
	}

	today := g.today()

	switch expr {
	case ExprToday:
		return []time.Time{today}, nil
	case ExprTomorrow:
		return []time.Time{timeutil.AddDays(today, 1)}, nil
	case ExprNextWeekend:
		return g.span(nextSaturday(today), 2), nil
	case ExprFollowingWeekend:
		return g.span(timeutil.AddDays(nextSaturday(today), 7), 2), nil
	case ExprNextWeek:
		return g.span(timeutil.AddDays(today, 1), 7), nil
	case ExprNextMonth:
		first := timeutil.FirstOfNextMonth(today)
		days := timeutil.AddDays(timeutil.FirstOfNextMonth(first), -1).Day()
		return g.span(first, days), nil
	}

	if m := inDaysPattern.FindStringSubmatch(expr); m != nil {
		n, _ := strconv.Atoi(m[1])
		return []time.Time{timeutil.AddDays(today, n)}, nil
	}

	if name, ok := strings.CutPrefix(expr, "next-"); ok {
		if wd, ok := weekdayNames[name]; ok {
			return []time.Time{timeutil.AddDays(today, timeutil.DaysUntil(today, wd))}, nil
		}
	}

	fallback := timeutil.AddDays(today, 1)
	g.log.Warn().
		Str("field", field).
		Str("expression", raw).
		Str("resolved", timeutil.FormatDate(fallback)).
		Msg("Unrecognized date expression, defaulting to tomorrow")
	return []time.Time{fallback}, nil
}

// span returns n consecutive days from start in range mode, or just start in anchor mode.
func (g *Generator) span(start time.Time, n int) []time.Time {
	if g.mode == DateModeAnchor || n <= 1 {
		return []time.Time{start}
	}
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = timeutil.AddDays(start, i)
	}
	return dates
}

// nextSaturday returns the first Saturday strictly after d.
func nextSaturday(d time.Time) time.Time {
	return timeutil.AddDays(d, timeutil.DaysUntil(d, time.Saturday))
}

// widen expands every date into [date-n, date+n], deduplicated and sorted.
func widen(dates []time.Time, n int) []time.Time {
	if n <= 0 || len(dates) == 0 {
		return dates
	}

	seen := make(map[string]struct{}, len(dates)*(2*n+1))
	result := make([]time.Time, 0, len(dates)*(2*n+1))
	for _, d := range dates {
		for k := -n; k <= n; k++ {
			day := timeutil.AddDays(d, k)
			key := timeutil.FormatDate(day)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, day)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result
}
