package domain

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// FlightQuery is one fully resolved origin/destination/date/passenger combination.
// Values are immutable once produced by the planner.
type FlightQuery struct {
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination"`
	DepartureDate string      `json:"departureDate"`
	ReturnDate    string      `json:"returnDate,omitempty"`
	Adults        int         `json:"adults"`
	Children      int         `json:"children"`
	Infants       int         `json:"infants"`
	CabinClass    CabinClass  `json:"cabinClass"`
	Preferences   Preferences `json:"preferences"`
}

// IsOneWay reports whether the query has no return leg.
func (q FlightQuery) IsOneWay() bool {
	return q.ReturnDate == ""
}

// Route returns the "ORG-DST" pair of the query.
func (q FlightQuery) Route() string {
	return q.Origin + "-" + q.Destination
}

// Key returns a deterministic cache key for the query.
// Two queries with identical fields always share a key.
func (q FlightQuery) Key() string {
	return HashJSON(q)
}

// HashJSON returns the hex SHA-256 of v's JSON encoding.
func HashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", v))
	}
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
