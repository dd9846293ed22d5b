package music

import (
	"math"
	"strings"
)

const progressCells = 20

// ProgressBar renders progress/total as a 20-cell bar and a rounded percent,
// e.g. "[████░░░░░░░░░░░░░░░░] 20%".
func ProgressBar(progress, total int) (string, int) {
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(progress) / float64(total) * 100))
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 5
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressCells-filled) + "]", pct
}

// milestone reports whether the cursor just completed a phrase worth
// cheering for.
func milestone(cursor int) bool {
	switch cursor {
	case 7, 14, 21:
		return true
	}
	return false
}
