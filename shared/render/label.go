package render

import (
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeLabel describes t relative to now for display, e.g. "2 hours ago".
// Anything under a minute old is "Just now".
func RelativeLabel(t, now time.Time) string {
	if d := now.Sub(t); d < time.Minute && d > -time.Minute {
		return "Just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
