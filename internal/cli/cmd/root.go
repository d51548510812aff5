package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"ytapi/internal/config"
	"ytapi/internal/dirs"
	"ytapi/internal/downloader"
	"ytapi/internal/janitor"
	"ytapi/internal/logging"
	"ytapi/internal/model"
	"ytapi/internal/pipeline"
	"ytapi/internal/progress"
	"ytapi/internal/util/deps"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitMissingDep    = 2
	ExitDownloadError = 3
	ExitServerError   = 5
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ytapi",
		Short:         "Media download API around yt-dlp",
		Long:          "ytapi wraps yt-dlp (or youtube-dl) behind a small HTTP API that returns video metadata and streams downloaded video or audio back to the caller. The same pipeline is available from the command line through 'info' and 'fetch'.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(cmd.Root()); err != nil {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("config: %w", err)}
			}
			return nil
		},
	}

	// Persistent flags available to all subcommands
	pf := root.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Log subprocess commands and extractor output")
	pf.String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	pf.String("ffmpeg-binary", config.DefaultFFmpegBinary, "Path to ffmpeg")
	pf.String("temp-dir", dirs.DefaultTempDir(), "Directory for in-flight downloads")
	pf.Duration("extract-timeout", 0, "Upper bound for a single extractor run (0 = none)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text, json")

	root.AddCommand(newServeCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}

// Helpers

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
}

func detect(ctx context.Context, cfg config.Config) (model.Capabilities, error) {
	caps, err := deps.Detect(ctx, nil, cfg.DLBinary, cfg.FFmpegBinary)
	if err != nil {
		return caps, &ExitError{Code: ExitMissingDep, Err: err}
	}
	return caps, nil
}

// newService wires the extractor client and orchestrator for cfg. rep and j
// may be nil.
func newService(cfg config.Config, caps model.Capabilities, logger *slog.Logger, rep progress.Reporter, j *janitor.Janitor) *pipeline.Service {
	client := downloader.NewClient(caps.DownloaderPath, downloader.WithLogger(logger))
	opts := []pipeline.Option{
		pipeline.WithExtractor(client),
		pipeline.WithCapabilities(caps),
		pipeline.WithTempDir(cfg.TempDir),
		pipeline.WithLogger(logger),
		pipeline.WithExtractTimeout(cfg.ExtractTimeout),
	}
	if rep != nil {
		opts = append(opts, pipeline.WithReporter(rep))
	}
	if j != nil {
		opts = append(opts, pipeline.WithJanitor(j))
	}
	return pipeline.NewService(opts...)
}
