package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"ytapi/internal/model"
	"ytapi/internal/progress"
)

func TestParseFetchOptions(t *testing.T) {
	tests := []struct {
		name        string
		flags       []string
		args        []string
		wantType    model.MediaType
		wantQuality string
		wantURLs    []string
		wantErr     bool
	}{
		{
			name:        "video defaults",
			args:        []string{"https://youtu.be/abc"},
			wantType:    model.MediaVideo,
			wantQuality: "720p",
			wantURLs:    []string{"https://youtu.be/abc"},
		},
		{
			name:        "audio defaults",
			flags:       []string{"--type", "audio"},
			args:        []string{"youtu.be/abc"},
			wantType:    model.MediaAudio,
			wantQuality: "192",
			wantURLs:    []string{"https://youtu.be/abc"},
		},
		{
			name:        "explicit audio quality",
			flags:       []string{"-t", "AUDIO", "-q", "320"},
			args:        []string{"https://youtu.be/abc"},
			wantType:    model.MediaAudio,
			wantQuality: "320",
			wantURLs:    []string{"https://youtu.be/abc"},
		},
		{
			name:    "video quality for audio",
			flags:   []string{"--type", "audio", "--quality", "1080p"},
			args:    []string{"https://youtu.be/abc"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			flags:   []string{"--type", "gif"},
			args:    []string{"https://youtu.be/abc"},
			wantErr: true,
		},
		{
			name:    "bad url scheme",
			args:    []string{"ftp://example.com/x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
			bindDownloadFlags(fs)
			if err := fs.Parse(tt.flags); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, err := parseFetchOptions(fs, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Type != tt.wantType || got.Quality != tt.wantQuality {
				t.Errorf("type/quality = %s/%s, want %s/%s", got.Type, got.Quality, tt.wantType, tt.wantQuality)
			}
			if strings.Join(got.URLs, ",") != strings.Join(tt.wantURLs, ",") {
				t.Errorf("URLs = %v, want %v", got.URLs, tt.wantURLs)
			}
			if got.OutDir != "." || got.Jobs != 1 {
				t.Errorf("OutDir/Jobs = %q/%d", got.OutDir, got.Jobs)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	err := error(&ExitError{Code: ExitDownloadError, Err: inner})
	if err.Error() != "boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
	var ee *ExitError
	if !errors.As(err, &ee) || ee.Code != ExitDownloadError {
		t.Errorf("errors.As = %+v", ee)
	}
	if (&ExitError{Code: 1}).Error() != "" {
		t.Error("nil inner error should render empty")
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "info", "fetch", "doctor", "completion"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q missing", name)
		}
	}
	for _, flag := range []string{"verbose", "dl-binary", "ffmpeg-binary", "temp-dir", "log-level", "log-format"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag %q missing", flag)
		}
	}
}

func TestCompletion(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(buf.String(), "ytapi") {
		t.Error("bash completion should mention the binary name")
	}
}

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &lineReporter{w: &buf}
	r.Update(progress.Update{Stage: progress.StageFetchingMetadata, Message: "Fetching metadata"})
	r.Update(progress.Update{Stage: progress.StageExtracting, Message: "Downloading", Percent: 10})
	r.Update(progress.Update{Stage: progress.StageExtracting, Message: "Downloading", Percent: 20})
	r.Log(progress.Log{Line: "hidden"})
	r.Update(progress.Update{Stage: progress.StageCompleted})

	want := "[fetching-metadata] Fetching metadata\n[extracting] Downloading\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
