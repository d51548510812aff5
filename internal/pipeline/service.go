// Package pipeline orchestrates metadata lookups and downloads on top of the
// extractor adapter.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"ytapi/internal/dirs"
	"ytapi/internal/downloader"
	"ytapi/internal/janitor"
	"ytapi/internal/model"
	"ytapi/internal/progress"
	"ytapi/internal/util/format"
	"ytapi/internal/util/media"
)

var (
	// ErrMissingURL is returned before any work when a request has no URL.
	ErrMissingURL = errors.New("missing URL")
	// ErrNoExtractor means the Service was built without an extractor.
	ErrNoExtractor = errors.New("no extractor configured")
)

// Extractor is the subset of downloader.Client the Service drives.
type Extractor interface {
	FetchInfo(ctx context.Context, url string) (downloader.YTDLPInfo, error)
	Extract(ctx context.Context, url string, plan downloader.Plan, opts downloader.ExtractOptions) (model.Artifact, error)
}

// Service runs the validate → metadata → format → extract → locate → stream
// → cleanup workflow for one request at a time. A Service holds no per-request
// state and may be shared between goroutines.
type Service struct {
	extractor      Extractor
	caps           model.Capabilities
	tempDir        string
	janitor        *janitor.Janitor
	reporter       progress.Reporter
	logger         *slog.Logger
	now            func() time.Time
	extractTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithExtractor sets the extractor adapter.
func WithExtractor(e Extractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

// WithCapabilities sets the host tooling detected at startup.
func WithCapabilities(c model.Capabilities) Option {
	return func(s *Service) {
		s.caps = c
	}
}

// WithTempDir sets the directory artifacts are written to.
func WithTempDir(dir string) Option {
	return func(s *Service) {
		s.tempDir = dir
	}
}

// WithJanitor replaces the default janitor.
func WithJanitor(j *janitor.Janitor) Option {
	return func(s *Service) {
		s.janitor = j
	}
}

// WithReporter attaches a progress reporter (used by TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// WithLogger sets the logger for request outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock overrides time.Now for artifact ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithExtractTimeout bounds each extractor call. Zero means no bound.
func WithExtractTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.extractTimeout = d
	}
}

// NewService constructs a new Service with the provided options.
// It applies sensible defaults for missing components.
func NewService(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.janitor == nil {
		s.janitor = janitor.New()
	}
	if s.reporter == nil {
		s.reporter = progress.Nop{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.tempDir == "" {
		s.tempDir = os.TempDir()
	}
	return s
}

// Capabilities returns the tooling the Service was built with.
func (s *Service) Capabilities() model.Capabilities {
	return s.caps
}

// Info fetches and normalizes metadata for url.
func (s *Service) Info(ctx context.Context, url string) (model.VideoInfo, error) {
	if url == "" {
		return model.VideoInfo{}, ErrMissingURL
	}
	if s.extractor == nil {
		return model.VideoInfo{}, ErrNoExtractor
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.extractor.FetchInfo(ctx, url)
	if err != nil {
		return model.VideoInfo{}, fmt.Errorf("fetch info: %w", err)
	}
	return NormalizeInfo(raw), nil
}

// NormalizeInfo turns raw extractor metadata into display-ready VideoInfo.
func NormalizeInfo(raw downloader.YTDLPInfo) model.VideoInfo {
	return model.VideoInfo{
		Title:     firstNonEmpty(raw.Title, "Unknown"),
		Thumbnail: raw.Thumbnail,
		Duration:  format.Duration(raw.Duration),
		Channel:   firstNonEmpty(raw.Uploader, raw.Channel, "Unknown"),
		Views:     format.Views(raw.ViewCount),
		VideoID:   raw.ID,
	}
}

// Prepare runs everything up to the point where the artifact can be
// streamed. The caller must Close the returned Download. On error, every
// file the request may have produced has already been swept.
func (s *Service) Prepare(ctx context.Context, req model.DownloadRequest) (*Download, error) {
	s.stage("", progress.StageValidating, "Validating request")
	if strings.TrimSpace(req.URL) == "" {
		return nil, s.fail("", ErrMissingURL)
	}
	if s.extractor == nil {
		return nil, s.fail("", ErrNoExtractor)
	}
	if req.Type == "" {
		req.Type = model.MediaVideo
	}

	id := media.NewArtifactID(s.now())
	base := media.BasePath(s.tempDir, id)
	log := s.logger.With("id", id, "type", string(req.Type), "quality", req.Quality)

	d, err := s.prepare(ctx, req, id, base)
	if err != nil {
		s.janitor.Sweep(base)
		log.Error("download failed", "url", req.URL, "err", err)
		return nil, s.fail(id, err)
	}
	log.Info("download ready", "ext", d.Artifact.Ext, "bytes", d.Size)
	return d, nil
}

func (s *Service) prepare(ctx context.Context, req model.DownloadRequest, id, base string) (*Download, error) {
	if err := dirs.Ensure(s.tempDir); err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.stage(id, progress.StageFetchingMetadata, "Fetching metadata")
	info, err := s.extractor.FetchInfo(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch info: %w", err)
	}

	s.stage(id, progress.StageSelectingFormat, "Selecting format")
	plan := downloader.BuildPlan(req, s.caps, base)

	s.stage(id, progress.StageExtracting, "Downloading")
	art, err := s.extractor.Extract(ctx, req.URL, plan, downloader.ExtractOptions{JobID: id, Reporter: s.reporter})
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	// The artifact may not share the base when it was found by prefix.
	if !strings.HasPrefix(art.Path, base) {
		s.janitor.Remove(art.Path)
		return nil, fmt.Errorf("artifact %q outside request base", art.Path)
	}

	f, err := os.Open(art.Path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	art.Size = st.Size()

	return &Download{
		ID:          id,
		Title:       info.Title,
		Filename:    media.DownloadFilename(info.Title, req.Type, art.Ext),
		ContentType: art.MIMEType,
		Size:        art.Size,
		Artifact:    art,
		file:        f,
		base:        base,
		svc:         s,
	}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.extractTimeout > 0 {
		return context.WithTimeout(ctx, s.extractTimeout)
	}
	return context.WithCancel(ctx)
}

// fail reports err as the terminal event of request id and returns it.
func (s *Service) fail(id string, err error) error {
	s.reporter.Update(progress.Update{JobID: id, Stage: progress.StageError, Percent: -1, Message: err.Error()})
	s.reporter.Result(progress.Result{JobID: id, Err: err})
	return err
}

func (s *Service) stage(id string, st progress.Stage, msg string) {
	s.reporter.Update(progress.Update{JobID: id, Stage: st, Percent: -1, Message: msg})
}

// Download is a located artifact ready to be streamed with WriteTo. Close
// releases the file and deletes every artifact of the request.
type Download struct {
	ID          string
	Title       string
	Filename    string // "<safe title>.<actual ext>"
	ContentType string
	Size        int64
	Artifact    model.Artifact

	file *os.File
	base string
	dest string // set when the artifact was saved locally
	svc  *Service

	mu      sync.Mutex
	written int64
	once    sync.Once
	err     error
}

// WriteTo streams the whole artifact to w and records how much of it was
// written for the final report.
func (d *Download) WriteTo(w io.Writer) (int64, error) {
	d.svc.reporter.Update(progress.Update{
		JobID:   d.ID,
		Stage:   progress.StageStreaming,
		Percent: -1,
		Message: "Streaming " + d.Filename,
	})
	n, err := io.Copy(w, d.file)
	d.mu.Lock()
	d.written += n
	d.mu.Unlock()
	return n, err
}

// Fail records a streaming error so Close reports the request as failed.
func (d *Download) Fail(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.mu.Unlock()
}

// Close closes the artifact and sweeps the request's files. It is safe to
// call more than once.
func (d *Download) Close() error {
	var cerr error
	d.once.Do(func() {
		s := d.svc
		s.stage(d.ID, progress.StageCleanup, "Cleaning up")
		cerr = d.file.Close()
		s.janitor.Remove(d.Artifact.Path)
		s.janitor.Sweep(d.base)

		d.mu.Lock()
		streamErr, written := d.err, d.written
		d.mu.Unlock()

		if streamErr != nil {
			s.logger.Error("stream failed", "id", d.ID, "written", written, "bytes", d.Size, "err", streamErr)
			s.reporter.Update(progress.Update{JobID: d.ID, Stage: progress.StageError, Percent: -1, Message: streamErr.Error()})
		} else {
			s.reporter.Update(progress.Update{
				JobID:   d.ID,
				Stage:   progress.StageCompleted,
				Percent: 100,
				Message: fmt.Sprintf("Sent: %s (%s)", d.Filename, format.HumanizeBytes(d.Size)),
			})
		}
		out := d.Filename
		if d.dest != "" {
			out = d.dest
		}
		s.reporter.Result(progress.Result{JobID: d.ID, OutputPath: out, Bytes: written, Err: streamErr})
	})
	return cerr
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
