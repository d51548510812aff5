package downloader

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ytapi/internal/util/media"
)

// ErrOutputNotFound means the extractor exited cleanly but no file for the
// request could be located.
var ErrOutputNotFound = errors.New("download output not found")

// LocateOutput finds the file the extractor produced for base. It probes
// base+ext for each candidate in order, then falls back to any finished
// file in the same directory whose name starts with base's name.
func LocateOutput(base string, candidates []string) (string, error) {
	for _, ext := range candidates {
		p := base + ext
		if isRegularFile(p) {
			return p, nil
		}
	}

	dir, prefix := filepath.Dir(base), filepath.Base(base)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ErrOutputNotFound
	}
	var matches []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !media.BelongsTo(name, prefix) || isPartial(name) {
			continue
		}
		matches = append(matches, filepath.Join(dir, name))
	}
	if len(matches) == 0 {
		return "", ErrOutputNotFound
	}
	sort.SliceStable(matches, func(i, j int) bool {
		pi := extPriority(filepath.Ext(matches[i]))
		pj := extPriority(filepath.Ext(matches[j]))
		if pi == pj {
			return matches[i] < matches[j]
		}
		return pi < pj
	})
	return matches[0], nil
}

func isPartial(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".part", ".ytdl", ".temp", ".tmp":
		return true
	}
	return strings.Contains(name, ".part-")
}

// extPriority returns a priority score for file extensions (lower = better).
func extPriority(ext string) int {
	switch strings.ToLower(ext) {
	case ".mp4":
		return 0
	case ".mp3":
		return 1
	case ".m4a":
		return 2
	case ".mkv":
		return 3
	case ".webm":
		return 4
	case ".ogg", ".opus":
		return 5
	default:
		return 100
	}
}

func isRegularFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
