// Package cli wires the urfave/cli/v2 App that drives this program: a
// single serve command that starts the HTTP surface, with flags for the
// resource limits §5 names and an optional config file for everything
// else.
package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v2"

	"github.com/ChristianF88/atmsettle/config"
	"github.com/ChristianF88/atmsettle/httpapi"
	"github.com/ChristianF88/atmsettle/job"
)

// Shared flag definitions, following this codebase's convention of one
// package-level var per flag rather than inlining literals into Commands.
var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to a TOML configuration file (see config.ServerConfig)",
	}
	portFlag = &cli.StringFlag{
		Name:  "port",
		Usage: "Port to listen on",
		Value: "8080",
	}
	uploadDirFlag = &cli.StringFlag{
		Name:  "uploadDir",
		Usage: "Directory for staged uploads",
		Value: "uploads",
	}
	maxUploadBytesFlag = &cli.Int64Flag{
		Name:  "maxUploadBytes",
		Usage: "Maximum accepted upload size in bytes",
		Value: config.DefaultMaxUploadBytes,
	}
	requestTimeoutFlag = &cli.DurationFlag{
		Name:  "requestTimeout",
		Usage: "Timeout applied to synchronous request handlers",
		Value: config.DefaultRequestTimeout,
	}
	shutdownTimeoutFlag = &cli.DurationFlag{
		Name:  "shutdownTimeout",
		Usage: "How long to wait for outstanding jobs to drain on shutdown",
		Value: 30 * time.Second,
	}
)

// handleServeCommand processes the serve command with proper separation of
// concerns between config-file mode and flags-only mode.
func handleServeCommand(c *cli.Context) error {
	var serverCfg *config.ServerConfig

	if configPath := c.String("config"); configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		serverCfg = cfg.Server
	} else {
		serverCfg = &config.ServerConfig{
			Port:           c.String("port"),
			UploadDir:      c.String("uploadDir"),
			MaxUploadBytes: c.Int64("maxUploadBytes"),
			RequestTimeout: c.Duration("requestTimeout").String(),
		}
	}

	return serve(serverCfg, c.Duration("shutdownTimeout"))
}

// serve starts the HTTP surface and blocks until it receives SIGINT or
// SIGTERM, then drains outstanding jobs before returning.
func serve(cfg *config.ServerConfig, shutdownTimeout time.Duration) error {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload dir: %w", err)
	}

	mgr := job.NewManager()
	srv := httpapi.NewServer(mgr, cfg.MaxUploadBytes)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeoutDuration(),
		WriteTimeout:      cfg.RequestTimeoutDuration(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	if !mgr.Shutdown(shutdownTimeout) {
		log.Println("warning: some jobs did not finish before shutdown timeout")
	}
	return nil
}

var App = &cli.App{
	Name:  "atmsettle",
	Usage: "Parse and aggregate ATM settlement files over HTTP",
	Commands: []*cli.Command{
		{
			Name:  "serve",
			Usage: "Start the HTTP server",
			Flags: []cli.Flag{
				configFlag,
				portFlag,
				uploadDirFlag,
				maxUploadBytesFlag,
				requestTimeoutFlag,
				shutdownTimeoutFlag,
			},
			Action: handleServeCommand,
		},
	},
}
