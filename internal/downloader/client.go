package downloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ytapi/internal/model"
	"ytapi/internal/progress"
	"ytapi/internal/util"
	"ytapi/internal/util/media"
)

// Flags passed on every extractor call.
var commonArgs = []string{"--no-check-certificates", "--no-warnings", "--no-playlist"}

// Client drives a yt-dlp compatible binary.
type Client struct {
	path   string
	runner util.CmdRunner
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithLogger sets the logger used for command lines and extractor stderr.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient returns a Client for the extractor binary at path.
func NewClient(path string, opts ...Option) *Client {
	c := &Client{path: path}
	for _, o := range opts {
		o(c)
	}
	if c.runner == nil {
		c.runner = util.NewDefaultRunner()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// ExtractOptions carries per-request observers for Extract.
type ExtractOptions struct {
	JobID    string
	Reporter progress.Reporter
}

// FetchInfo runs the extractor in metadata-only mode.
func (c *Client) FetchInfo(ctx context.Context, url string) (YTDLPInfo, error) {
	if c.path == "" {
		return YTDLPInfo{}, errors.New("downloader path is required")
	}
	args := append([]string{"-J", "--prefer-free-formats"}, commonArgs...)
	args = append(args, "--", url)

	res, runErr := c.runner.Run(ctx, util.CmdSpec{
		Path:   c.path,
		Args:   args,
		Logger: c.logger,
	})
	if runErr != nil && len(res.Stdout) == 0 {
		return YTDLPInfo{}, fmt.Errorf("metadata fetch failed: %w", runErr)
	}
	return parseInfo(res.Stdout)
}

// parseInfo decodes -J output. yt-dlp may print more than one JSON document
// (or stray lines) on stdout; the last line that decodes with an id wins.
func parseInfo(out []byte) (YTDLPInfo, error) {
	data := strings.TrimSpace(string(out))
	var info YTDLPInfo
	err := json.NewDecoder(strings.NewReader(data)).Decode(&info)
	if err == nil && info.ID != "" {
		return info, nil
	}
	lines := strings.Split(data, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		var tmp YTDLPInfo
		if json.Unmarshal([]byte(line), &tmp) == nil && tmp.ID != "" {
			return tmp, nil
		}
	}
	if err == nil {
		err = errors.New("missing id")
	}
	return YTDLPInfo{}, fmt.Errorf("parse metadata JSON: %w", err)
}

// Extract runs plan for url and locates the produced file. The returned
// artifact describes what was actually written, which may differ from the
// nominal container when no transcoding was possible.
func (c *Client) Extract(ctx context.Context, url string, plan Plan, opts ExtractOptions) (model.Artifact, error) {
	if c.path == "" {
		return model.Artifact{}, errors.New("downloader path is required")
	}
	if plan.Base == "" {
		return model.Artifact{}, errors.New("plan has no base path")
	}

	args := append([]string{}, plan.FormatArgs...)
	args = append(args, "-o", plan.OutputTemplate, "--newline")
	args = append(args, commonArgs...)
	args = append(args, "--", url)

	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}
	spec := util.CmdSpec{
		Path:   c.path,
		Args:   args,
		Dir:    filepath.Dir(plan.Base),
		Logger: c.logger,
		StdoutLine: func(line string) {
			if u, ok := ParseProgress(line, opts.JobID); ok {
				rep.Update(u)
			}
		},
		StderrLine: func(line string) {
			rep.Log(progress.Log{JobID: opts.JobID, Stream: progress.StreamStderr, Line: line})
		},
	}
	if _, err := c.runner.Run(ctx, spec); err != nil {
		return model.Artifact{}, fmt.Errorf("downloader failed: %w", err)
	}

	rep.Update(progress.Update{
		JobID:   opts.JobID,
		Stage:   progress.StageLocatingOutput,
		Percent: -1,
		Message: "Locating output",
	})
	path, err := LocateOutput(plan.Base, plan.Candidates)
	if err != nil {
		return model.Artifact{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return model.Artifact{}, fmt.Errorf("stat output: %w", err)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return model.Artifact{
		Path:     path,
		Ext:      ext,
		MIMEType: media.ContentType(ext, plan.Type),
		Size:     st.Size(),
	}, nil
}
