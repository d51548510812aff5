package downloader

import (
	"fmt"
	"strings"

	"ytapi/internal/model"
)

// Candidate extensions probed after extraction, in preference order.
var (
	VideoCandidates = []string{".mp4", ".webm", ".mkv"}
	AudioCandidates = []string{".m4a", ".mp3", ".webm", ".ogg", ".opus"}

	// With ffmpeg the audio is re-encoded, so mp3 is expected first.
	transcodedAudioCandidates = []string{".mp3", ".m4a", ".webm", ".ogg", ".opus"}
)

// Plan is the extractor invocation chosen for one request.
type Plan struct {
	Type           model.MediaType
	Base           string   // artifact path without extension
	FormatArgs     []string // format selection and post-processing flags
	OutputTemplate string   // value for -o
	Candidates     []string // extensions to probe for the produced file
}

// Selector returns the -f value of the plan, or "" when it has none.
func (p Plan) Selector() string {
	for i := 0; i+1 < len(p.FormatArgs); i++ {
		if p.FormatArgs[i] == "-f" {
			return p.FormatArgs[i+1]
		}
	}
	return ""
}

// BuildPlan selects the format strategy for req. Without ffmpeg no merge or
// transcode step can run, so only single-stream formats are requested and
// the produced container is whatever the site serves.
func BuildPlan(req model.DownloadRequest, caps model.Capabilities, base string) Plan {
	if req.Type == model.MediaAudio {
		return audioPlan(req.Quality, caps.FFmpeg, base)
	}
	return videoPlan(req.Quality, caps.FFmpeg, base)
}

func videoPlan(quality string, ffmpeg bool, base string) Plan {
	h := model.VideoHeight(quality)
	p := Plan{
		Type:       model.MediaVideo,
		Base:       base,
		Candidates: VideoCandidates,
	}
	if ffmpeg {
		p.FormatArgs = []string{
			"-f", fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]/best", h, h),
			"--merge-output-format", "mp4",
		}
		p.OutputTemplate = base + ".mp4"
		return p
	}
	p.FormatArgs = []string{
		"-f", fmt.Sprintf("best[height<=%d][vcodec!=none][acodec!=none]/best[vcodec!=none][acodec!=none]/best", h),
	}
	p.OutputTemplate = base + ".%(ext)s"
	return p
}

func audioPlan(quality string, ffmpeg bool, base string) Plan {
	p := Plan{
		Type:           model.MediaAudio,
		Base:           base,
		OutputTemplate: base + ".%(ext)s",
	}
	if ffmpeg {
		p.FormatArgs = []string{
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", model.AudioQualityLevel(quality),
		}
		p.Candidates = transcodedAudioCandidates
		return p
	}
	p.FormatArgs = []string{"-f", "bestaudio[ext=m4a]/bestaudio"}
	p.Candidates = AudioCandidates
	return p
}

// RequiresMerge reports whether the selector asks the extractor to combine
// separate streams.
func (p Plan) RequiresMerge() bool {
	return strings.Contains(p.Selector(), "+")
}
