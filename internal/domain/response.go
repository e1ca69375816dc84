package domain

// SearchResponse represents the aggregated response from a flight search.
type SearchResponse struct {
	// Queries are the concrete queries the intent expanded into
	Queries []FlightQuery `json:"queries"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Flights contains the flight results after filtering and sorting
	Flights []Flight `json:"flights"`
}

// NewSearchResponse creates a SearchResponse with TotalResults set from flights.
// Nil slices become empty so the JSON output always carries arrays.
func NewSearchResponse(queries []FlightQuery, flights []Flight, metadata SearchMetadata) *SearchResponse {
	if queries == nil {
		queries = []FlightQuery{}
	}
	if flights == nil {
		flights = []Flight{}
	}
	if metadata.ProvidersQueried == nil {
		metadata.ProvidersQueried = []string{}
	}
	if metadata.ProvidersFailed == nil {
		metadata.ProvidersFailed = []string{}
	}
	metadata.TotalResults = len(flights)

	return &SearchResponse{
		Queries:  queries,
		Metadata: metadata,
		Flights:  flights,
	}
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// TotalResults is the total number of flights returned
	TotalResults int `json:"totalResults"`

	// QueriesGenerated is the number of queries the intent expanded into
	QueriesGenerated int `json:"queriesGenerated"`

	// QueriesExecuted is the number of queries sent to providers (cache misses)
	QueriesExecuted int `json:"queriesExecuted"`

	// CacheHits is the number of queries answered from the flights cache
	CacheHits int `json:"cacheHits"`

	// ProvidersQueried lists the providers that were asked at least once
	ProvidersQueried []string `json:"providersQueried"`

	// ProvidersFailed lists the providers that failed at least once
	ProvidersFailed []string `json:"providersFailed"`

	// SearchDurationMs is the total search duration in milliseconds
	SearchDurationMs int64 `json:"searchDurationMs"`
}

// PlanResponse is the result of expanding an intent without executing it.
type PlanResponse struct {
	Queries  []FlightQuery `json:"queries"`
	Total    int           `json:"total"`
	CacheHit bool          `json:"cacheHit"`
}

// ProviderResult represents the result from a single provider for a single query.
type ProviderResult struct {
	Provider   string
	Flights    []Flight
	Error      error
	DurationMs int64
}

// IsSuccess returns true if the provider query succeeded.
func (pr *ProviderResult) IsSuccess() bool {
	return pr.Error == nil
}
