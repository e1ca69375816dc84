// Package planner expands a loosely specified SearchIntent into the full set of
// concrete FlightQuery values: relative date expressions are resolved against a clock,
// widened by the flexibility window and crossed with every origin and destination.
package planner

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// DateMode selects how multi-day expressions ("next-weekend", "next-week", "next-month") resolve.
type DateMode int

const (
	// DateModeRange resolves multi-day expressions to every day they cover.
	DateModeRange DateMode = iota

	// DateModeAnchor resolves multi-day expressions to their first day only.
	DateModeAnchor
)

// String returns the configuration name of the mode.
func (m DateMode) String() string {
	if m == DateModeAnchor {
		return "anchor"
	}
	return "range"
}

// ParseDateMode converts "range" or "anchor" to a DateMode.
func ParseDateMode(s string) (DateMode, bool) {
	switch s {
	case "range", "":
		return DateModeRange, true
	case "anchor":
		return DateModeAnchor, true
	default:
		return DateModeRange, false
	}
}

// Limits applied to an intent before expansion.
const (
	DefaultMaxQueries   = 500
	MaxFlexibilityDays  = 14
	MaxStayDurationDays = 365
)

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock that relative expressions resolve against.
func WithClock(c timeutil.Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithLocation sets the timezone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		if loc != nil {
			g.loc = loc
		}
	}
}

// WithDateMode sets the multi-day expression policy.
func WithDateMode(m DateMode) Option {
	return func(g *Generator) {
		g.mode = m
	}
}

// WithMaxQueries caps the number of queries a single intent may expand into.
// Non-positive values keep the default.
func WithMaxQueries(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxQueries = n
		}
	}
}

// WithLogger sets the logger used for non-fatal diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}
