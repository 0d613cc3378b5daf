package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func TestAgo(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		cutoff time.Duration
		want   string
	}{
		{"minutes", 5 * time.Minute, ListingCutoff, "5m ago"},
		{"zero", 0, ListingCutoff, "0m ago"},
		{"hours", 3*time.Hour + 10*time.Minute, ListingCutoff, "3h ago"},
		{"days", 2*day + time.Hour, ListingCutoff, "2d ago"},
		{"listing cutoff", 30 * day, ListingCutoff, "9/14/2026"},
		{"inbox below cutoff", 6 * day, InboxCutoff, "6d ago"},
		{"inbox cutoff", 7 * day, InboxCutoff, "10/7/2026"},
		{"no cutoff", 400 * day, 0, "400d ago"},
		{"future minutes", -3 * time.Minute, ListingCutoff, "0m ago"},
		{"future days", -5 * day, InboxCutoff, "0m ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ago(now.Add(-tt.offset), now, tt.cutoff))
		})
	}
}

func TestSince(t *testing.T) {
	assert.Equal(t, "Just now", Since(now.Add(-30*time.Second), now))
	assert.Equal(t, "12 minutes ago", Since(now.Add(-12*time.Minute), now))
	assert.Equal(t, "5 hours ago", Since(now.Add(-5*time.Hour), now))
	assert.Equal(t, "3 days ago", Since(now.Add(-3*day), now))
	assert.Equal(t, "Just now", Since(now.Add(2*time.Hour), now))
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, 3, 15, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "3/15/2024", Date(ts))
	assert.Equal(t, "March 15, 2024", LongDate(ts))
	assert.Equal(t, "March 15, 2024 at 02:05 PM", Stamp(ts))
	assert.Equal(t, "02:05 PM", Clock(ts))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "28,419", Count(28419))
	assert.Equal(t, "1,000,000", Count(1000000))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "44%", Percent(44))
	assert.Equal(t, "12.5%", Percent(12.5))
}
