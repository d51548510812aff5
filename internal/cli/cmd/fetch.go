package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"ytapi/internal/config"
	"ytapi/internal/dirs"
	"ytapi/internal/logging"
	"ytapi/internal/model"
	"ytapi/internal/pipeline"
	"ytapi/internal/progress"
	"ytapi/internal/ui"
	"ytapi/internal/util"
	"ytapi/internal/util/format"
)

type fetchOptions struct {
	URLs    []string
	Type    model.MediaType
	Quality string
	OutDir  string
	NoUI    bool
	Jobs    int
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fetch <url>...",
		Short:         "Download video or audio into a local directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE:          runFetch,
	}
	bindDownloadFlags(cmd.Flags())
	return cmd
}

func bindDownloadFlags(fs *pflag.FlagSet) {
	fs.StringP("type", "t", string(model.MediaVideo), "Media type: video, audio")
	fs.StringP("quality", "q", "", "Video: 1080p, 720p, 480p, 360p (default 720p). Audio: 320, 192, 128 (default 192)")
	fs.StringP("out-dir", "o", ".", "Output directory")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
	fs.Int("jobs", 1, "Max concurrent downloads")
}

func parseFetchOptions(fs *pflag.FlagSet, args []string) (fetchOptions, error) {
	typ, _ := fs.GetString("type")
	quality, _ := fs.GetString("quality")
	outDir, _ := fs.GetString("out-dir")
	noUI, _ := fs.GetBool("no-ui")
	jobs, _ := fs.GetInt("jobs")

	var opts fetchOptions
	switch t := model.MediaType(strings.ToLower(typ)); t {
	case model.MediaVideo, model.MediaAudio:
		opts.Type = t
	default:
		return opts, fmt.Errorf("invalid --type: %q (valid: video|audio)", typ)
	}

	quality = strings.ToLower(strings.TrimSpace(quality))
	if quality == "" {
		quality = model.DefaultVideoQuality
		if opts.Type == model.MediaAudio {
			quality = model.DefaultAudioQuality
		}
	}
	if !validQuality(opts.Type, quality) {
		return opts, fmt.Errorf("invalid --quality for %s: %q", opts.Type, quality)
	}
	opts.Quality = quality

	for _, raw := range args {
		u, err := util.NormalizeURL(raw)
		if err != nil {
			return opts, err
		}
		opts.URLs = append(opts.URLs, u)
	}

	if outDir == "" {
		outDir = "."
	}
	opts.OutDir = filepath.Clean(outDir)
	opts.NoUI = noUI
	if jobs <= 0 {
		jobs = 1
	}
	opts.Jobs = jobs
	return opts, nil
}

func validQuality(t model.MediaType, q string) bool {
	valid := []string{model.Quality1080p, model.Quality720p, model.Quality480p, model.Quality360p}
	if t == model.MediaAudio {
		valid = []string{model.Quality320, model.Quality192, model.Quality128}
	}
	for _, v := range valid {
		if q == v {
			return true
		}
	}
	return false
}

func runFetch(cmd *cobra.Command, args []string) error {
	in, err := parseFetchOptions(cmd.Flags(), args)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	cfg := config.Load()
	caps, err := detect(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := dirs.Ensure(in.OutDir); err != nil {
		return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("failed to create output dir: %v", err)}
	}

	// TUI path (auto if TTY and not disabled)
	if !in.NoUI && isTerminal() {
		err := ui.Run(cmd.Context(), in.URLs, ui.Options{
			Type:    in.Type,
			Quality: in.Quality,
			OutDir:  in.OutDir,
			Jobs:    in.Jobs,
			NewService: func(rep progress.Reporter) *pipeline.Service {
				return newService(cfg, caps, logging.Discard(), rep, nil)
			},
		})
		if err != nil {
			return &ExitError{Code: ExitDownloadError, Err: err}
		}
		return nil
	}

	// Non-UI path
	logger := newLogger(cmd, cfg)
	out := cmd.OutOrStdout()
	var failed int
	for _, url := range in.URLs {
		rep := &lineReporter{w: cmd.ErrOrStderr(), verbose: cfg.Verbose}
		svc := newService(cfg, caps, logger, rep, nil)
		req := model.DownloadRequest{URL: url, Type: in.Type, Quality: in.Quality}
		path, n, err := svc.Fetch(cmd.Context(), req, in.OutDir)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", url, err)
			continue
		}
		fmt.Fprintf(out, "Saved: %s (%s)\n", path, format.HumanizeBytes(n))
	}
	if failed > 0 {
		return &ExitError{Code: ExitDownloadError, Err: fmt.Errorf("%d of %d download(s) failed", failed, len(in.URLs))}
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// lineReporter prints stage changes as plain lines. Extractor output is
// only echoed when verbose.
type lineReporter struct {
	w       io.Writer
	verbose bool
	last    progress.Stage
}

func (r *lineReporter) Update(u progress.Update) {
	if u.Stage == r.last || u.Stage.Terminal() {
		return
	}
	r.last = u.Stage
	fmt.Fprintf(r.w, "[%s] %s\n", u.Stage, u.Message)
}

func (r *lineReporter) Log(l progress.Log) {
	if r.verbose {
		fmt.Fprintln(r.w, l.Line)
	}
}

func (r *lineReporter) Result(progress.Result) {}

var _ progress.Reporter = (*lineReporter)(nil)
