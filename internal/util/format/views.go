package format

import "strconv"

// Views abbreviates a view count: one decimal plus "M" from a million,
// one decimal plus "K" from a thousand, otherwise the plain integer.
// The K form is kept right up to the million boundary, so 999999 is "1000.0K".
func Views(n int64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}
