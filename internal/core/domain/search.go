package domain

// QueryResult is one match returned by the query pipeline.
type QueryResult struct {
	Score      float64 `json:"score"`
	URL        string  `json:"url"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	ChunkIndex int     `json:"chunk_index"`
}

// QueryResultFromMatch maps a vector store match to a query result.
func QueryResultFromMatch(m VectorMatch) QueryResult {
	return QueryResult{
		Score:      m.Score,
		URL:        m.Metadata.URL,
		Title:      m.Metadata.Title,
		Content:    m.Metadata.Content,
		ChunkIndex: m.Metadata.ChunkIndex,
	}
}
