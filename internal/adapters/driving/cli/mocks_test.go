package cli

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

var testStarted = time.Date(2025, 7, 27, 14, 0, 0, 0, time.UTC)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results   []domain.QueryResult
	err       error
	lastQuery string
	lastTopK  int
}

func (m *mockQueryService) Query(_ context.Context, text string, topK int) ([]domain.QueryResult, error) {
	m.lastQuery = text
	m.lastTopK = topK
	return m.results, m.err
}

// mockKnowledgeBase is a mock implementation of driving.KnowledgeBase.
type mockKnowledgeBase struct {
	report *domain.SetupReport
	checks []domain.CheckResult
	stats  domain.IndexStats
	err    error
}

func (m *mockKnowledgeBase) Setup(_ context.Context) (*domain.SetupReport, error) {
	return m.report, m.err
}

func (m *mockKnowledgeBase) SelfTest(_ context.Context) []domain.CheckResult {
	return m.checks
}

func (m *mockKnowledgeBase) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockKnowledgeBase) History(_ context.Context, _ int) ([]domain.IndexRun, error) {
	return nil, m.err
}

// mockCollector is a mock implementation of driving.Collector.
type mockCollector struct {
	coll    domain.Collection
	doc     domain.Document
	err     error
	lastURL string
}

func (m *mockCollector) Collect(_ context.Context) (domain.Collection, error) {
	return m.coll, m.err
}

func (m *mockCollector) ScrapeOne(_ context.Context, url string) (domain.Document, error) {
	m.lastURL = url
	return m.doc, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	values map[string]string
	err    error
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return domain.DefaultSettings(), m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockSettingsService) Values() (map[string]string, error) {
	return m.values, m.err
}

func (m *mockSettingsService) Path() string { return "/tmp/kb/config.toml" }

// mockRunHistory is a mock implementation of driving.RunHistory.
type mockRunHistory struct {
	runs []domain.IndexRun
	docs []domain.CollectedDocument
	err  error
}

func (m *mockRunHistory) List(_ context.Context, limit int) ([]domain.IndexRun, error) {
	if limit > 0 && len(m.runs) > limit {
		return m.runs[:limit], m.err
	}
	return m.runs, m.err
}

func (m *mockRunHistory) Get(_ context.Context, id string) (*domain.IndexRun, []domain.CollectedDocument, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], m.docs, nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	query      *mockQueryService
	kb         *mockKnowledgeBase
	collector  *mockCollector
	settings   *mockSettingsService
	history    *mockRunHistory
	sessionErr error
	lastOpts   SessionOptions
	closed     int
}

var mocks *testServices

// setupTestServices installs mock services and returns a cleanup function.
func setupTestServices() func() {
	mocks = &testServices{
		query:     &mockQueryService{},
		kb:        &mockKnowledgeBase{},
		collector: &mockCollector{},
		settings:  &mockSettingsService{values: map[string]string{"query.top_k": "5"}},
		history:   &mockRunHistory{},
	}

	SetServices(&Services{
		Settings: mocks.settings,
		History:  mocks.history,
		OpenSession: func(_ context.Context, opts SessionOptions) (*Session, error) {
			mocks.lastOpts = opts
			if mocks.sessionErr != nil {
				return nil, mocks.sessionErr
			}
			return &Session{
				KnowledgeBase: mocks.kb,
				Collector:     mocks.collector,
				Query:         mocks.query,
				Settings:      domain.DefaultSettings(),
				Cleanup: func() error {
					mocks.closed++
					return nil
				},
			}, nil
		},
	})

	origInteractive := isInteractive
	isInteractive = func() bool { return false }

	return func() {
		SetServices(nil)
		isInteractive = origInteractive
		logger.Reset()
		mocks = nil
	}
}

// execute runs the root command with args and returns its output and exit code.
func execute(args ...string) (string, int) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	code := Execute(context.Background())
	return buf.String(), code
}

// resetFlags restores every flag to its default so commands can be re-run.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
