package media

import (
	"strings"

	"ytapi/internal/model"
)

// ContentType maps a produced file extension to the MIME type sent to the
// client. Containers that carry both (mp4, webm) are labelled by what was
// requested.
func ContentType(ext string, mt model.MediaType) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp4":
		if mt == model.MediaAudio {
			return "audio/mp4"
		}
		return "video/mp4"
	case "webm":
		if mt == model.MediaAudio {
			return "audio/webm"
		}
		return "video/webm"
	case "mkv":
		return "video/x-matroska"
	case "mp3":
		return "audio/mpeg"
	case "m4a":
		return "audio/mp4"
	case "ogg":
		return "audio/ogg"
	case "opus":
		return "audio/opus"
	default:
		return "application/octet-stream"
	}
}
