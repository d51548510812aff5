package model

// MediaType selects between a merged video download and an audio-only one.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// ParseMediaType maps a query value to a MediaType. Anything but "audio" is video.
func ParseMediaType(s string) MediaType {
	if s == string(MediaAudio) {
		return MediaAudio
	}
	return MediaVideo
}

// Video quality labels accepted on the wire.
const (
	Quality1080p = "1080p"
	Quality720p  = "720p"
	Quality480p  = "480p"
	Quality360p  = "360p"

	DefaultVideoQuality = Quality720p
)

// Audio quality labels (nominal kbps) accepted on the wire.
const (
	Quality320 = "320"
	Quality192 = "192"
	Quality128 = "128"

	DefaultAudioQuality = Quality192
)

// VideoHeight returns the max height for a video quality label, falling back to 720.
func VideoHeight(label string) int {
	switch label {
	case Quality1080p:
		return 1080
	case Quality720p:
		return 720
	case Quality480p:
		return 480
	case Quality360p:
		return 360
	default:
		return 720
	}
}

// AudioQualityLevel maps an audio quality label to the extractor's
// --audio-quality value (0 best .. 9 worst). Unknown labels use the middle tier.
func AudioQualityLevel(label string) string {
	switch label {
	case Quality320:
		return "0"
	case Quality192:
		return "2"
	case Quality128:
		return "5"
	default:
		return "2"
	}
}

// VideoInfo is the display-ready metadata returned by /api/info.
type VideoInfo struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
	Channel   string `json:"channel"`
	Views     string `json:"views"`
	VideoID   string `json:"videoId"`
}

// DownloadRequest is a single download as received from a client.
type DownloadRequest struct {
	URL     string
	Type    MediaType
	Quality string
}

// Artifact is a file the extractor produced for one request.
type Artifact struct {
	Path     string
	Ext      string // without the leading dot, e.g. "m4a"
	MIMEType string
	Size     int64
}

// Capabilities describes the host tooling detected at startup.
// It is computed once and passed to the components that branch on it.
type Capabilities struct {
	FFmpeg         bool
	FFmpegPath     string
	DownloaderPath string
}
