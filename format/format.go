// Package format renders timestamps and counters for display.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const day = 24 * time.Hour

// Short cutoffs after which a relative time falls back to a date.
const (
	ListingCutoff = 30 * day
	InboxCutoff   = 7 * day
)

// Ago renders t relative to now as "Nm ago", "Nh ago" or "Nd ago". Once the
// difference reaches cutoff the date is shown instead. A zero cutoff never
// falls back. Times after now count as zero.
func Ago(t, now time.Time, cutoff time.Duration) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}
	mins := int(diff / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	if cutoff > 0 && time.Duration(days)*day >= cutoff {
		return Date(t)
	}
	return fmt.Sprintf("%dd ago", days)
}

// Since renders the long relative form used on profiles.
func Since(t, now time.Time) string {
	mins := int(now.Sub(t) / time.Minute)
	if mins < 0 {
		mins = 0
	}
	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%d minutes ago", mins)
	case mins/60 < 24:
		return fmt.Sprintf("%d hours ago", mins/60)
	default:
		return fmt.Sprintf("%d days ago", mins/60/24)
	}
}

// Date renders a short numeric date.
func Date(t time.Time) string {
	return t.Format("1/2/2006")
}

// LongDate renders a date such as "March 15, 2024".
func LongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Stamp renders a date with its time of day.
func Stamp(t time.Time) string {
	return t.Format("January 2, 2006 at 03:04 PM")
}

// Clock renders the time of day only.
func Clock(t time.Time) string {
	return t.Format("03:04 PM")
}

// Count renders n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Percent renders a display percentage without trailing zeros.
func Percent(p float64) string {
	return humanize.Ftoa(p) + "%"
}
