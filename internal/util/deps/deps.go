package deps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"ytapi/internal/model"
	"ytapi/internal/util"
)

// probeTimeout bounds the one-off "ffmpeg -version" call at startup.
const probeTimeout = 10 * time.Second

// FindDownloader returns the path to yt-dlp or youtube-dl.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindDownloader(customPath string) (string, error) {
	if customPath != "" {
		return lookup(customPath)
	}
	if p, err := exec.LookPath("yt-dlp"); err == nil {
		return p, nil
	}
	if p, err := exec.LookPath("youtube-dl"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find yt-dlp or youtube-dl in PATH. Please install yt-dlp.")
}

// FindFFmpeg returns the path to the ffmpeg binary, preferring customPath.
func FindFFmpeg(customPath string) (string, error) {
	if customPath == "" {
		customPath = "ffmpeg"
	}
	p, err := lookup(customPath)
	if err != nil {
		return "", fmt.Errorf("could not find ffmpeg (%s). Please install ffmpeg.", customPath)
	}
	return p, nil
}

func lookup(name string) (string, error) {
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return name, nil
	}
	if p, err := exec.LookPath(name); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find %q", name)
}

// ProbeFFmpeg runs "<path> -version" and reports whether it succeeded.
// Every failure, including an empty path, counts as unavailable.
func ProbeFFmpeg(ctx context.Context, runner util.CmdRunner, path string) bool {
	if path == "" {
		return false
	}
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	_, err := runner.Run(ctx, util.CmdSpec{Path: path, Args: []string{"-version"}})
	return err == nil
}

// Detect resolves the downloader and probes ffmpeg once. A missing
// downloader is an error; a missing ffmpeg only turns the capability off.
func Detect(ctx context.Context, runner util.CmdRunner, dlBinary, ffmpegBinary string) (model.Capabilities, error) {
	dl, err := FindDownloader(dlBinary)
	if err != nil {
		return model.Capabilities{}, err
	}
	caps := model.Capabilities{DownloaderPath: dl}
	if ff, ferr := FindFFmpeg(ffmpegBinary); ferr == nil {
		caps.FFmpegPath = ff
		caps.FFmpeg = ProbeFFmpeg(ctx, runner, ff)
	}
	return caps, nil
}
