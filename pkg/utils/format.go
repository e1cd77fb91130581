package utils

import (
	"fmt"
	"math"
)

// FormatSeconds renders a duration in seconds as "1d 2h 3m 4.56s",
// dropping leading zero units. Values below a minute keep two decimals.
func FormatSeconds(seconds float64) string {
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return "n/a"
	}
	if seconds < 0 {
		return "-" + FormatSeconds(-seconds)
	}

	days := math.Floor(seconds / 86400)
	seconds -= days * 86400
	hours := math.Floor(seconds / 3600)
	seconds -= hours * 3600
	minutes := math.Floor(seconds / 60)
	seconds -= minutes * 60

	switch {
	case days > 0:
		return fmt.Sprintf("%.0fd %.0fh %.0fm %.2fs", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%.0fh %.0fm %.2fs", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%.0fm %.2fs", minutes, seconds)
	default:
		return fmt.Sprintf("%.2fs", seconds)
	}
}
