package downloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocateOutput(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name       string
		files      []string
		base       string
		candidates []string
		wantFile   string
		wantError  bool
	}{
		{
			name:       "first candidate wins",
			files:      []string{"yt-1.webm", "yt-1.mp4"},
			base:       "yt-1",
			candidates: VideoCandidates,
			wantFile:   "yt-1.mp4",
		},
		{
			name:       "candidate order, not priority",
			files:      []string{"yt-1.mp3", "yt-1.m4a"},
			base:       "yt-1",
			candidates: AudioCandidates,
			wantFile:   "yt-1.m4a",
		},
		{
			name:       "webm when no mp4",
			files:      []string{"yt-1.webm"},
			base:       "yt-1",
			candidates: VideoCandidates,
			wantFile:   "yt-1.webm",
		},
		{
			name:       "prefix fallback for unlisted extension",
			files:      []string{"yt-1.flv"},
			base:       "yt-1",
			candidates: VideoCandidates,
			wantFile:   "yt-1.flv",
		},
		{
			name:       "prefix fallback skips partial files",
			files:      []string{"yt-1.flv.part", "yt-1.3gp"},
			base:       "yt-1",
			candidates: VideoCandidates,
			wantFile:   "yt-1.3gp",
		},
		{
			name:       "other request ids are ignored",
			files:      []string{"yt-12.mp4", "other.mp4"},
			base:       "yt-1",
			candidates: VideoCandidates,
			wantError:  true,
		},
		{
			name:       "error when no files",
			files:      nil,
			base:       "yt-1",
			candidates: VideoCandidates,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDir := filepath.Join(tmpDir, tt.name)
			if err := os.MkdirAll(testDir, 0o755); err != nil {
				t.Fatalf("Failed to create test dir: %v", err)
			}
			for _, f := range tt.files {
				if err := os.WriteFile(filepath.Join(testDir, f), []byte("test"), 0o644); err != nil {
					t.Fatalf("Failed to create test file %s: %v", f, err)
				}
			}

			got, err := LocateOutput(filepath.Join(testDir, tt.base), tt.candidates)
			if tt.wantError {
				if !errors.Is(err, ErrOutputNotFound) {
					t.Errorf("LocateOutput() error = %v, want ErrOutputNotFound (got %q)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LocateOutput() unexpected error: %v", err)
			}
			if gotBase := filepath.Base(got); gotBase != tt.wantFile {
				t.Errorf("LocateOutput() = %v, want %v", gotBase, tt.wantFile)
			}
		})
	}
}

func TestLocateOutput_MissingDir(t *testing.T) {
	_, err := LocateOutput(filepath.Join(t.TempDir(), "gone", "yt-1"), VideoCandidates)
	if !errors.Is(err, ErrOutputNotFound) {
		t.Errorf("LocateOutput() error = %v, want ErrOutputNotFound", err)
	}
}

func TestExtPriority(t *testing.T) {
	tests := []struct {
		ext  string
		want int
	}{
		{ext: ".mp4", want: 0},
		{ext: ".mp3", want: 1},
		{ext: ".m4a", want: 2},
		{ext: ".mkv", want: 3},
		{ext: ".webm", want: 4},
		{ext: ".opus", want: 5},
		{ext: ".unknown", want: 100},
		{ext: ".MP4", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := extPriority(tt.ext); got != tt.want {
				t.Errorf("extPriority(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}
