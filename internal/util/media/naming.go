package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytapi/internal/model"
)

// ArtifactPrefix starts every temporary artifact name. The janitor's stale
// sweep relies on it.
const ArtifactPrefix = "yt-"

const maxTitleBytes = 100

// NewArtifactID returns a per-request identifier derived from now. A short
// random suffix keeps two requests in the same millisecond apart.
func NewArtifactID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d-%s", ArtifactPrefix, now.UnixMilli(), suffix)
}

// BasePath joins the temp dir and the artifact id. The extractor appends
// the extension it picks.
func BasePath(tempDir, id string) string {
	return filepath.Join(tempDir, id)
}

// BelongsTo reports whether the file name was produced for the artifact
// named base: base itself, or base followed by any extension chain such as
// ".mp4", ".mp4.part" or ".f137.mp4". "yt-1-abcd.mp4" does not belong to
// "yt-1-abc".
func BelongsTo(name, base string) bool {
	return base != "" && (name == base || strings.HasPrefix(name, base+"."))
}

// SafeTitle keeps ASCII letters, digits, spaces, '_' and '-', and caps the
// result at 100 bytes. An empty result becomes fallback.
func SafeTitle(title, fallback string) string {
	var b strings.Builder
	for _, r := range title {
		if r < 0x80 && isSafe(byte(r)) {
			b.WriteRune(r)
			if b.Len() == maxTitleBytes {
				break
			}
		}
	}
	s := strings.TrimSpace(b.String())
	if s == "" {
		return fallback
	}
	return s
}

func isSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == ' ', c == '_', c == '-':
		return true
	}
	return false
}

// DownloadFilename builds the Content-Disposition filename from the title
// and the extension that was actually produced.
func DownloadFilename(title string, mt model.MediaType, ext string) string {
	return SafeTitle(title, string(mt)) + "." + strings.TrimPrefix(ext, ".")
}
