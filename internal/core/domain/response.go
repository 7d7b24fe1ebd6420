package domain

// QueryResponse is the JSON document printed by the query command and
// returned by the HTTP and MCP surfaces.
type QueryResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Query   string        `json:"query,omitempty"`
	Results []QueryResult `json:"results"`
	// TotalResults is only set on success.
	TotalResults *int `json:"total_results,omitempty"`
}

// NewQueryResponse builds a successful response. Results is never nil.
func NewQueryResponse(query string, results []QueryResult) QueryResponse {
	if results == nil {
		results = []QueryResult{}
	}
	n := len(results)
	return QueryResponse{
		Success:      true,
		Query:        query,
		Results:      results,
		TotalResults: &n,
	}
}

// QueryErrorResponse builds a failed response with an empty result list.
func QueryErrorResponse(query string, err error) QueryResponse {
	return QueryResponse{
		Success: false,
		Error:   err.Error(),
		Query:   query,
		Results: []QueryResult{},
	}
}
