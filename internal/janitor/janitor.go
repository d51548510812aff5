// Package janitor removes temporary download artifacts. Every removal is
// best-effort: errors are swallowed and missing files are not an error.
package janitor

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"ytapi/internal/util/media"
)

// Extensions is every extension the extractor may leave behind for a request.
var Extensions = []string{".mp4", ".mp3", ".m4a", ".webm", ".mkv", ".ogg", ".opus"}

// Janitor deletes artifacts for a request base path.
type Janitor struct {
	exts   []string
	remove func(string) error
}

// Option configures a Janitor.
type Option func(*Janitor)

// WithExtensions overrides the tracked extension set.
func WithExtensions(exts ...string) Option {
	return func(j *Janitor) {
		j.exts = append([]string(nil), exts...)
	}
}

// WithRemoveFunc replaces os.Remove (useful for testing).
func WithRemoveFunc(fn func(string) error) Option {
	return func(j *Janitor) {
		j.remove = fn
	}
}

// New returns a Janitor tracking Extensions.
func New(opts ...Option) *Janitor {
	j := &Janitor{exts: Extensions, remove: os.Remove}
	for _, o := range opts {
		o(j)
	}
	return j
}

// Sweep attempts to delete base itself and base+ext for every tracked
// extension, then any other file in base's directory that belongs to it:
// ".part" downloads, "-f" format intermediates and the like, which a killed
// extractor leaves behind. It is safe to call any number of times.
func (j *Janitor) Sweep(base string) {
	if base == "" {
		return
	}
	_ = j.remove(base)
	for _, ext := range j.exts {
		_ = j.remove(base + ext)
	}

	dir, name := filepath.Dir(base), filepath.Base(base)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() && media.BelongsTo(e.Name(), name) {
			_ = j.remove(filepath.Join(dir, e.Name()))
		}
	}
}

// Remove deletes a single resolved artifact path.
func (j *Janitor) Remove(path string) {
	if path == "" {
		return
	}
	_ = j.remove(path)
}

// SweepStale deletes regular files in dir whose name starts with prefix and
// whose modification time is older than maxAge. It returns how many were
// removed.
func (j *Janitor) SweepStale(dir, prefix string, maxAge time.Duration, now time.Time) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || now.Sub(info.ModTime()) < maxAge {
			continue
		}
		if j.remove(filepath.Join(dir, e.Name())) == nil {
			removed++
		}
	}
	return removed
}
