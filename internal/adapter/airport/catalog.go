// Package airport loads airport reference data and expands metro codes into airports.
package airport

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/flight-search/flight-query-planner/internal/cache"
	"github.com/flight-search/flight-query-planner/internal/domain"
)

// DefaultPath is the catalog file used when none is configured.
const DefaultPath = "data/airports.yaml"

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// file is the on-disk layout of the catalog.
type file struct {
	Airports []domain.Airport `yaml:"airports"`
}

// Catalog is an immutable set of airports indexed by code and by metro code.
// Lookups go through the airports cache when one is attached.
type Catalog struct {
	airports map[string]domain.Airport
	metros   map[string][]string
	cache    *cache.Cache[domain.Airport]
	log      zerolog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCache routes lookups through c.
func WithCache(c *cache.Cache[domain.Airport]) Option {
	return func(cat *Catalog) {
		cat.cache = c
	}
}

// WithLogger sets the catalog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cat *Catalog) {
		cat.log = l
	}
}

// Load reads and parses the YAML catalog at path.
func Load(path string, opts ...Option) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read airport catalog: %w", err)
	}
	return Parse(data, opts...)
}

// Parse builds a Catalog from YAML. Codes are upper-cased; duplicates and codes
// that are not three letters are rejected.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse airport catalog: %w", err)
	}

	c := &Catalog{
		airports: make(map[string]domain.Airport, len(f.Airports)),
		metros:   make(map[string][]string),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for i, a := range f.Airports {
		a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
		a.Metro = strings.ToUpper(strings.TrimSpace(a.Metro))

		if !codePattern.MatchString(a.Code) {
			return nil, fmt.Errorf("parse airport catalog: entry %d: invalid code %q", i, a.Code)
		}
		if a.Metro != "" && !codePattern.MatchString(a.Metro) {
			return nil, fmt.Errorf("parse airport catalog: %s: invalid metro code %q", a.Code, a.Metro)
		}
		if _, dup := c.airports[a.Code]; dup {
			return nil, fmt.Errorf("parse airport catalog: duplicate code %s", a.Code)
		}

		c.airports[a.Code] = a
		if a.Metro != "" {
			c.metros[a.Metro] = append(c.metros[a.Metro], a.Code)
		}
	}

	c.log.Debug().
		Int("airports", len(c.airports)).
		Int("metros", len(c.metros)).
		Msg("Airport catalog loaded")

	return c, nil
}

// Lookup returns the airport with the given code.
func (c *Catalog) Lookup(code string) (domain.Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	if c.cache != nil {
		if a, ok := c.cache.Get(code); ok {
			return a, true
		}
	}

	a, ok := c.airports[code]
	if ok && c.cache != nil {
		c.cache.Set(code, a)
	}
	return a, ok
}

// Members returns the airports of a metro code in catalog order.
func (c *Catalog) Members(metro string) []string {
	members := c.metros[strings.ToUpper(strings.TrimSpace(metro))]
	return append([]string(nil), members...)
}

// IsMetro reports whether code groups several airports and is not itself an airport.
func (c *Catalog) IsMetro(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	_, isAirport := c.airports[code]
	return !isAirport && len(c.metros[code]) > 0
}

// Expand replaces each metro code with its member airports. Any other code,
// known or not, passes through unchanged so validation can report it later.
func (c *Catalog) Expand(codes []string) []string {
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		if c.IsMetro(code) {
			result = append(result, c.Members(code)...)
			continue
		}
		result = append(result, code)
	}
	return result
}

// All returns every airport sorted by code.
func (c *Catalog) All() []domain.Airport {
	result := make([]domain.Airport, 0, len(c.airports))
	for _, a := range c.airports {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Code < result[j].Code
	})
	return result
}

// Len returns the number of airports.
func (c *Catalog) Len() int {
	return len(c.airports)
}
