// Package startup orchestrates application boot: logging, the dependency
// container, the initial consistency pass, and graceful shutdown.
package startup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarajLabs/maraj-go/internal/application/container"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/logging"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/observability/performance"
	"github.com/MarajLabs/maraj-go/internal/infrastructure/security"
	"github.com/MarajLabs/maraj-go/pkg/config"
)

// shutdownGrace bounds how long in-flight requests get to finish.
const shutdownGrace = 10 * time.Second

// Server is anything the orchestrator can run and stop; satisfied by the
// HTTP server in internal/presentation/http/server.
type Server interface {
	Start(addr string) error
	Stop(ctx context.Context) error
}

// Boot initializes logging and the container, seeds the JWT secret when none
// is configured, and runs the initial archive reconcile pass.
func Boot() (*container.Container, error) {
	loggerConfig := logging.DefaultLoggerConfig()
	loggerConfig.LogDirectory = config.LogDirectory
	loggerConfig.OutputToFile = config.LogToFile
	loggerConfig.JSONFormat = config.LogJSON

	logger, err := logging.NewChanneledLogger(loggerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Startup().Info("Starting directory server",
		slog.String("port", config.Port),
		slog.String("driver", config.DBDriver))

	if config.JWTSecret == "" {
		// An ephemeral secret keeps the server usable out of the box;
		// sessions won't survive a restart until one is configured.
		secret, err := security.GenerateSecureKey(64)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = secret
		logger.Startup().Warn("JWT_SECRET not configured, generated ephemeral secret")
	}

	c, err := container.New(logger, performance.NewTracker())
	if err != nil {
		logger.Startup().Error("Container initialization failed", "error", err.Error())
		return nil, err
	}

	if config.ReconcileOnLoad {
		report, err := c.ConsistencyService.Reconcile()
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("initial reconcile failed: %w", err)
		}
		if report.Changed() {
			logger.Startup().Info("Initial reconcile repaired archive flags",
				slog.Int("autoArchived", len(report.AutoArchived)),
				slog.Int("unarchived", len(report.Unarchived)))
		}
	}

	logger.Startup().Info("Startup complete")
	return c, nil
}

// Run serves until SIGINT/SIGTERM, then drains connections and releases the
// container.
func Run(c *container.Container, srv Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(":" + config.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			c.Logger.System().Error("Server failed", "error", err.Error())
			c.Close()
			return err
		}
	case sig := <-quit:
		c.Logger.Shutdown().Info("Shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		c.Logger.Shutdown().Error("Graceful shutdown failed", "error", err.Error())
	}
	if err := c.Close(); err != nil {
		c.Logger.Shutdown().Error("Resource cleanup failed", "error", err.Error())
	}
	c.Logger.Shutdown().Info("Shutdown complete")
	return c.Logger.Close()
}
