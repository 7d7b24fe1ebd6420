package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds in-flight requests once the context is cancelled.
const shutdownTimeout = 5 * time.Second

const instructions = "Answers questions about Aven products and support. " +
	"Call search_knowledge_base with the user's question and answer from the returned passages. " +
	"kb://stats reports the index size; kb://runs lists recent indexing runs."

// Server exposes the knowledge base over the Model Context Protocol.
type Server struct {
	ports  *Ports
	server *mcp.Server
	log    *logger.Logger
}

// NewServer creates a server with the search tool and the kb:// resources.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingQueryService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{Name: "kb", Version: Version}
	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
		log:    logger.New("component", "mcp"),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Debug("Serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("MCP server shutdown: %v", err)
		}
	}()

	s.log.Info("MCP server listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}
