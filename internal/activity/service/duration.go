package service

import (
	"fmt"
	"strings"
	"time"
)

const clockLayout = "15:04"

// formatDuration renders the elapsed time between two HH:MM clock values as
// shown on the activity log ("1h 30min"). An unparsable pair or a range that
// does not move forward yields "" and the duration is simply omitted.
func formatDuration(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" || end == "" {
		return ""
	}

	from, err := time.Parse(clockLayout, start)
	if err != nil {
		return ""
	}
	to, err := time.Parse(clockLayout, end)
	if err != nil {
		return ""
	}
	if !to.After(from) {
		return ""
	}

	elapsed := to.Sub(from)
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dmin", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
}
