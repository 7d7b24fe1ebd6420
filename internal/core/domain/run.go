package domain

import "time"

// RunStatus is the terminal state of an index run.
type RunStatus string

// Index run states.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// IndexRun records one execution of the setup pipeline.
type IndexRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	IndexName  string
	// Documents is the number of documents collected, fallback included.
	Documents int
	// FallbackDocuments is how many of Documents came from the fallback corpus.
	FallbackDocuments int
	// Vectors is the number of records handed to the vector store.
	Vectors int
	Status  RunStatus
	Error   string
}

// Duration returns how long the run took, or zero if it has not finished.
func (r IndexRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// CollectedDocument is a snapshot of a document seen by a run.
type CollectedDocument struct {
	RunID        string
	URL          string
	Title        string
	WordCount    int
	ScrapedAt    time.Time
	FromFallback bool
}

// CheckResult is the outcome of one self-test check.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// Collection is the output of the scraping stage.
type Collection struct {
	Documents []Document

	// FromFallback holds the URLs whose documents came from the fallback corpus.
	FromFallback map[string]bool

	// FullFallback is true when no page was usable and the entire
	// fallback corpus was substituted.
	FullFallback bool
}

// FallbackCount returns how many documents came from the fallback corpus.
func (c Collection) FallbackCount() int {
	if c.FullFallback {
		return len(c.Documents)
	}
	return len(c.FromFallback)
}

// SmokeQuery is a sample query run after indexing and its results.
type SmokeQuery struct {
	Query   string
	Results []QueryResult
}

// SetupReport summarises a completed setup run.
type SetupReport struct {
	Run        IndexRun
	Collection Collection
	Smoke      []SmokeQuery
}

// SmokeQueries are run after indexing to confirm retrieval works.
var SmokeQueries = []string{
	"What is AVEN?",
	"How do HELOC loans work?",
	"What are the interest rates?",
	"How do I apply for a credit card?",
	"What customer support is available?",
}

// SelfTestQuery is the sample query used by the self-test.
const SelfTestQuery = "What services does AVEN offer?"
