package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"ytapi/internal/config"
	"ytapi/internal/dirs"
	"ytapi/internal/janitor"
	"ytapi/internal/server"
	"ytapi/internal/util/media"
)

// Artifacts older than this at startup belong to a previous process.
const staleArtifactAge = time.Hour

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Run the HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runServe,
	}
	fs := cmd.Flags()
	fs.String("host", "", "Interface to listen on (empty = all)")
	fs.Int("port", config.DefaultPort, "Port to listen on (also read from $PORT)")
	fs.Float64("rate-limit", config.DefaultRateLimit, "Requests per second per client IP (0 disables)")
	fs.Duration("shutdown-timeout", config.DefaultShutdownTimeout, "Grace period for in-flight requests on shutdown")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	config.BindFlags(viper.GetViper(), cmd.Flags())
	cfg := config.Load()
	logger := newLogger(cmd, cfg)

	caps, err := detect(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := dirs.Ensure(cfg.TempDir); err != nil {
		return &ExitError{Code: ExitServerError, Err: fmt.Errorf("temp dir: %w", err)}
	}

	j := janitor.New()
	if n := j.SweepStale(cfg.TempDir, media.ArtifactPrefix, staleArtifactAge, time.Now()); n > 0 {
		logger.Info("removed stale artifacts", "count", n, "dir", cfg.TempDir)
	}

	svc := newService(cfg, caps, logger, nil, j)
	srv := server.New(svc, server.WithLogger(logger), server.WithRateLimit(cfg.RateLimit))
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	logger.Info("server starting",
		"addr", addr,
		"downloader", caps.DownloaderPath,
		"ffmpeg", caps.FFmpeg,
		"temp_dir", cfg.TempDir,
	)
	if !caps.FFmpeg {
		logger.Warn("ffmpeg not available: video uses single-stream formats and audio keeps its source container")
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("server shutting down", "timeout", cfg.ShutdownTimeout)
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil {
		return &ExitError{Code: ExitServerError, Err: fmt.Errorf("server: %w", err)}
	}
	return nil
}
