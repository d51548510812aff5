package format

import (
	"fmt"
	"math"
)

// Duration renders seconds as M:SS, or H:MM:SS once there is at least one hour.
// Fractional seconds are rounded; negative or NaN input is treated as zero.
func Duration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
