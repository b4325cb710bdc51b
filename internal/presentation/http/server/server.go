// Package server hosts the gin engine inside a tunable http.Server.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarajLabs/maraj-go/internal/application/container"
	"github.com/MarajLabs/maraj-go/internal/presentation/http/routes"
	"github.com/MarajLabs/maraj-go/pkg/config"
)

// Server wraps the HTTP listener with graceful shutdown support.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
}

// New builds the engine, registers the routes and wraps everything in an
// http.Server carrying the configured timeouts.
func New(c *container.Container) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	routes.Register(engine, c)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Handler:      engine,
			ReadTimeout:  config.ServerReadTimeout,
			WriteTimeout: config.ServerWriteTimeout,
			IdleTimeout:  config.ServerIdleTimeout,
		},
	}
}

// Start listens on addr and serves until Stop is called. Returns nil on a
// clean shutdown.
func (s *Server) Start(addr string) error {
	s.httpServer.Addr = addr
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the context's deadline.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Engine exposes the router, used by the HTTP tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
