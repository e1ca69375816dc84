package domain

// Airport is reference metadata for a single airport.
type Airport struct {
	Code     string `json:"code" yaml:"code"`
	Name     string `json:"name" yaml:"name"`
	City     string `json:"city" yaml:"city"`
	Country  string `json:"country" yaml:"country"`
	Timezone string `json:"timezone" yaml:"timezone"`

	// Metro is the multi-airport city code this airport belongs to (e.g., "NYC")
	Metro string `json:"metro,omitempty" yaml:"metro,omitempty"`
}
