package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30), the timezone the
// billing job runs in for production deployments.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Location resolves a timezone name to a *time.Location. Empty name or a
// lookup failure falls back to UTC so a bad config value never stops billing.
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if name == "Asia/Kolkata" {
		return IST
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// StartOfDay returns the start of day (00:00:00) for the given time in its
// own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
