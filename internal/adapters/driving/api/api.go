// Package api serves the knowledge base over HTTP for the web front end and
// the voice assistant's function calls.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

// DefaultQueryTimeout bounds a single voice-assistant lookup.
const DefaultQueryTimeout = 30 * time.Second

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("api: query service is required")

// Config holds the collaborators of the API.
type Config struct {
	// Query answers knowledge base lookups (required).
	Query driving.QueryService

	// KnowledgeBase backs the stats endpoint. Optional.
	KnowledgeBase driving.KnowledgeBase

	// TopK is the number of results per lookup (default: 5).
	TopK int

	// QueryTimeout bounds voice-assistant lookups (default: 30s).
	QueryTimeout time.Duration
}

// API provides the HTTP handlers.
type API struct {
	query        driving.QueryService
	kb           driving.KnowledgeBase
	topK         int
	queryTimeout time.Duration
	log          *logger.Logger
}

// NewAPI creates the API handlers.
func NewAPI(cfg Config) (*API, error) {
	if cfg.Query == nil {
		return nil, ErrMissingQueryService
	}
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}

	return &API{
		query:        cfg.Query,
		kb:           cfg.KnowledgeBase,
		topK:         cfg.TopK,
		queryTimeout: cfg.QueryTimeout,
		log:          logger.New("component", "api"),
	}, nil
}

// NewRouter returns a gin engine with every route registered.
func NewRouter(a *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), a.requestLogger())
	RegisterRoutes(router, a)
	return router
}

// RegisterRoutes registers all the routes of the API.
func RegisterRoutes(router *gin.Engine, a *API) {
	router.GET("/healthz", a.HealthHandler)

	group := router.Group("/api")
	{
		group.POST("/knowledge-base", a.KnowledgeBaseHandler)
		group.POST("/vapi-functions", a.VapiFunctionsHandler)
		group.GET("/stats", a.StatsHandler)
	}
}

// Run serves the API on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *API) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.log.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
