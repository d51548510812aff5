package downloader

import (
	"strconv"
	"strings"
	"time"

	"ytapi/internal/progress"
)

// ParseProgress parses yt-dlp progress output lines.
// Returns a progress.Update if the line contains download progress, and ok=true.
func ParseProgress(line, jobID string) (u progress.Update, ok bool) {
	// yt-dlp outputs lines like: [download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[download]") {
		return progress.Update{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(line, "[download]"))

	idx := strings.Index(rest, "%")
	if idx == -1 {
		// "[download] Destination: ..." and similar carry no percentage.
		return progress.Update{}, false
	}
	percent, err := strconv.ParseFloat(strings.TrimSpace(rest[:idx]), 64)
	if err != nil {
		return progress.Update{}, false
	}

	var speed *string
	if i := strings.Index(rest, " at "); i != -1 {
		s := strings.TrimSpace(rest[i+4:])
		if j := strings.Index(s, " "); j != -1 {
			s = s[:j]
		}
		if s != "" && s != "Unknown" {
			speed = &s
		}
	}

	var eta *time.Duration
	if i := strings.Index(rest, "ETA "); i != -1 {
		etaStr := strings.TrimSpace(rest[i+4:])
		if j := strings.Index(etaStr, " "); j != -1 {
			etaStr = etaStr[:j]
		}
		if d, err := parseETA(etaStr); err == nil {
			eta = &d
		}
	}

	return progress.Update{
		JobID:   jobID,
		Stage:   progress.StageExtracting,
		Percent: percent,
		Speed:   speed,
		ETA:     eta,
		Message: "Downloading",
	}, true
}

// parseETA parses duration strings like "00:04", "01:23:45", etc.
func parseETA(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		return time.Duration(nums[0]) * time.Second, nil
	case 2:
		return time.Duration(nums[0])*time.Minute + time.Duration(nums[1])*time.Second, nil
	case 3:
		return time.Duration(nums[0])*time.Hour + time.Duration(nums[1])*time.Minute + time.Duration(nums[2])*time.Second, nil
	default:
		return 0, &strconv.NumError{Func: "parseETA", Num: s, Err: strconv.ErrSyntax}
	}
}
