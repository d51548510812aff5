package deps

import (
	"context"
	"errors"
	"testing"

	"ytapi/internal/util"
)

type stubRunner struct {
	err   error
	calls []util.CmdSpec
}

func (s *stubRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	s.calls = append(s.calls, spec)
	return util.CmdResult{}, s.err
}

func TestProbeFFmpeg(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		err       error
		want      bool
		wantCalls int
	}{
		{name: "version succeeds", path: "/usr/bin/ffmpeg", want: true, wantCalls: 1},
		{name: "version fails", path: "/usr/bin/ffmpeg", err: errors.New("exit 1"), want: false, wantCalls: 1},
		{name: "no path", path: "", want: false, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubRunner{err: tt.err}
			got := ProbeFFmpeg(context.Background(), r, tt.path)
			if got != tt.want {
				t.Errorf("ProbeFFmpeg() = %v, want %v", got, tt.want)
			}
			if len(r.calls) != tt.wantCalls {
				t.Fatalf("runner calls = %d, want %d", len(r.calls), tt.wantCalls)
			}
			if tt.wantCalls > 0 {
				c := r.calls[0]
				if c.Path != tt.path || len(c.Args) != 1 || c.Args[0] != "-version" {
					t.Errorf("unexpected probe spec: %+v", c)
				}
			}
		})
	}
}

func TestFindDownloader_CustomMissing(t *testing.T) {
	if _, err := FindDownloader("/definitely/not/here/yt-dlp"); err == nil {
		t.Error("expected error for missing custom downloader")
	}
}
