// Command kb builds and queries the Aven customer support knowledge base.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/config/file"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/providers"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/storage/memory"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/storage/sqlite"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/cli"
	"github.com/22Ujjwal/Multimodal-Agent/internal/config"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/services"
	"github.com/22Ujjwal/Multimodal-Agent/internal/corpus"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	a := &app{}
	defer a.close()

	cli.SetVersion(version)
	cli.SetBootstrap(a.bootstrap)
	return cli.Execute(ctx)
}

// app owns the resources created by the bootstrap.
type app struct {
	runs driven.RunStore

	// db is nil when the run ledger fell back to memory.
	db *sqlite.Store
}

func (a *app) bootstrap(configDir string) (*cli.Services, error) {
	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	switch {
	case err == nil:
		configStore = fileStore
	case configDir == "":
		// No usable home directory: run on defaults and environment only.
		logger.Warn("Settings file unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	default:
		return nil, err
	}

	creds := config.LoadCredentials()
	settings := services.NewSettingsService(configStore, services.WithOverride(creds.Apply))

	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	a.openRunStore(dataDir)

	return &cli.Services{
		Settings:    settings,
		History:     services.NewRunHistory(a.runs),
		OpenSession: a.sessionFactory(settings, creds),
	}, nil
}

// openRunStore opens the SQLite run ledger. When the database cannot be
// opened, runs are kept in memory for this process only.
func (a *app) openRunStore(dataDir string) {
	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("Run history unavailable, not persisting runs: %v", err)
		a.runs = memory.NewRunStore()
		return
	}
	a.db = db
	a.runs = db
}

func (a *app) sessionFactory(settings *services.SettingsService, creds config.Credentials) cli.SessionFactory {
	return func(ctx context.Context, opts cli.SessionOptions) (*cli.Session, error) {
		s, err := settings.Get()
		if err != nil {
			return nil, err
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}

		adapters, err := providers.Build(ctx, s, creds, providers.Options{
			WithScraper: opts.WithScraper,
			Ping:        opts.Ping,
		})
		if err != nil {
			return nil, err
		}

		pipeline, err := services.NewPipeline(s, services.Deps{
			Scraper:  adapters.Scraper,
			Embedder: adapters.Embedder,
			Store:    adapters.Store,
			Fallback: corpus.Default(),
			Runs:     a.runs,
		})
		if err != nil {
			_ = adapters.Close()
			return nil, err
		}

		kb := services.NewKnowledgeBase(pipeline)
		return &cli.Session{
			KnowledgeBase: kb,
			Collector:     kb.Collector(),
			Query:         kb.Query(),
			Settings:      s,
			Cleanup:       pipeline.Close,
		}, nil
	}
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		logger.Warn("Closing run store: %v", err)
	}
}
