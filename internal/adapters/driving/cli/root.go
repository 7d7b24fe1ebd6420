// Package cli provides the command-line interface of the knowledge-base tool.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/messages"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

// version is set at build time.
var version = "dev"

// errSilent is returned by commands that have already reported their failure.
var errSilent = errors.New("command failed")

// Session holds the collaborators of one pipeline run.
type Session struct {
	KnowledgeBase driving.KnowledgeBase
	Collector     driving.Collector
	Query         driving.QueryService
	Settings      domain.Settings

	// Cleanup releases the adapters behind the session. Optional.
	Cleanup func() error
}

// Close releases the session.
func (s *Session) Close() error {
	if s == nil || s.Cleanup == nil {
		return nil
	}
	return s.Cleanup()
}

// SessionOptions select which adapters a session needs.
type SessionOptions struct {
	// WithScraper builds the scraper. Query-only commands leave it off.
	WithScraper bool

	// Ping checks embedding connectivity before the session is returned.
	Ping bool
}

// SessionFactory builds a session. Credentials are validated here, so
// commands that never touch a remote service work without them.
type SessionFactory func(ctx context.Context, opts SessionOptions) (*Session, error)

// Services are the long-lived collaborators of every command.
type Services struct {
	Settings    driving.SettingsService
	History     driving.RunHistory
	OpenSession SessionFactory
}

// Bootstrap creates the services for a config directory.
type Bootstrap func(configDir string) (*Services, error)

var (
	settingsService driving.SettingsService
	runHistory      driving.RunHistory
	openSession     SessionFactory
	bootstrap       Bootstrap
)

// isInteractive reports whether stdin and stdout are terminals.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "kb",
	Short: "Aven knowledge base: scrape, index and query",
	Long: `kb builds and queries the Aven customer support knowledge base.

It scrapes the aven.com pages, splits them into overlapping chunks, embeds
each chunk and stores the vectors in the configured index. Pages that
cannot be fetched are replaced by built-in fallback content.

Environment variables:
  FIRECRAWL_API_KEY     Firecrawl API key
  GEMINI_API_KEY        Google Gemini API key
  PINECONE_API_KEY      Pinecone API key
  PINECONE_ENVIRONMENT  Pinecone region (default: us-west1-gcp)
  PINECONE_INDEX_NAME   Pinecone index name (default: customer-support-kb)

Variables are also read from .env.local and .env in the working directory.

Run without a command in a terminal to open the interactive menu.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initCommand,
	RunE:              runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config-dir", "", "Config directory (default: ~/.kb)")
	rootCmd.PersistentFlags().String("log-format", string(logger.FormatText), "Log format: text or json")
}

// SetBootstrap registers the function that creates services on first use.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		settingsService, runHistory, openSession = nil, nil, nil
		return
	}
	settingsService = s.Settings
	runHistory = s.History
	openSession = s.OpenSession
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		}
		return 1
	}
	return 0
}

func initCommand(cmd *cobra.Command, _ []string) error {
	if err := configureLogging(cmd); err != nil {
		return err
	}
	return ensureServices(cmd)
}

func configureLogging(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("getting verbose flag: %w", err)
	}
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return fmt.Errorf("getting log-format flag: %w", err)
	}
	logger.SetVerbose(verbose)
	return logger.SetFormat(logger.Format(format))
}

func ensureServices(cmd *cobra.Command) error {
	if openSession != nil || bootstrap == nil {
		return nil
	}
	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("getting config-dir flag: %w", err)
	}
	s, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(s)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if !isInteractive() {
		return cmd.Help()
	}

	ports := &tui.Ports{}
	if openSession != nil {
		// The query view is offered only when a session can be opened.
		session, err := openSession(cmd.Context(), SessionOptions{})
		if err == nil {
			defer session.Close()
			ports.Query = session.Query
			ports.TopK = session.Settings.TopK
		} else {
			logger.Debug("Query view disabled: %v", err)
		}
	}

	// Log lines would corrupt the alternate screen.
	logger.SetQuiet()
	action, err := tui.Run(cmd.Context(), ports, tea.WithAltScreen())
	if err != nil {
		return err
	}
	if err := configureLogging(cmd); err != nil {
		return err
	}

	switch action {
	case messages.ActionSetup:
		return runSetup(cmd, nil)
	case messages.ActionTest:
		return runTest(cmd, nil)
	case messages.ActionHelp:
		return cmd.Help()
	default:
		return nil
	}
}

// newSession opens a session or reports that none is configured.
func newSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	if openSession == nil {
		return nil, errors.New("knowledge base not configured")
	}
	return openSession(ctx, opts)
}
