package format

import "strconv"

var byteUnits = []string{"KB", "MB", "GB", "TB", "PB", "EB"}

// HumanizeBytes renders a size with binary units and one decimal, e.g.
// "1.5 MB". Sizes below 1 KB are printed exactly; negative sizes are
// "unknown".
func HumanizeBytes(b int64) string {
	if b < 0 {
		return "unknown"
	}
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	v := float64(b) / unit
	i := 0
	for v >= unit && i < len(byteUnits)-1 {
		v /= unit
		i++
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + byteUnits[i]
}
