package fixture

// file is the layout of the fixture data file.
type file struct {
	Providers []providerData `json:"providers"`
}

// providerData is one simulated provider and its timetable.
type providerData struct {
	Name      string     `json:"name"`
	LatencyMs int        `json:"latency_ms"`
	Currency  string     `json:"currency"`
	Schedules []schedule `json:"schedules"`
}

// schedule is a daily flight operated on a route.
type schedule struct {
	FlightNumber    string             `json:"flight_number"`
	AirlineCode     string             `json:"airline_code"`
	AirlineName     string             `json:"airline_name"`
	Origin          string             `json:"origin"`
	Destination     string             `json:"destination"`
	DepartureTime   string             `json:"departure_time"`
	DurationMinutes int                `json:"duration_minutes"`
	Stops           int                `json:"stops"`
	Fares           map[string]float64 `json:"fares"`
}
