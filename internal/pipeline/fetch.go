package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ytapi/internal/dirs"
	"ytapi/internal/model"
)

// Fetch runs a download and saves the artifact as outDir/<filename> instead
// of streaming it to a client. It returns the saved path and size. The
// temporary artifact is always swept.
func (s *Service) Fetch(ctx context.Context, req model.DownloadRequest, outDir string) (string, int64, error) {
	d, err := s.Prepare(ctx, req)
	if err != nil {
		return "", 0, err
	}
	path, n, err := d.saveTo(outDir)
	if err != nil {
		d.Fail(err)
	}
	if cerr := d.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return "", 0, err
	}
	return path, n, nil
}

func (d *Download) saveTo(outDir string) (string, int64, error) {
	if outDir == "" {
		outDir = "."
	}
	if err := dirs.Ensure(outDir); err != nil {
		return "", 0, fmt.Errorf("output dir: %w", err)
	}
	path := filepath.Join(outDir, d.Filename)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create output: %w", err)
	}
	n, err := d.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("save output: %w", err)
	}
	d.dest = path
	return path, n, nil
}
