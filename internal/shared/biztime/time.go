// Package biztime holds the helpdesk's business timezone. Timestamps are
// stored and sent in UTC; the zone only decides where a day starts.
package biztime

import (
	"fmt"
	"sync/atomic"
	"time"
)

var loc atomic.Pointer[time.Location]

// Init sets the business timezone from an IANA name. Empty means UTC.
func Init(tz string) error {
	if tz == "" {
		loc.Store(time.UTC)
		return nil
	}
	l, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}
	loc.Store(l)
	return nil
}

// Location falls back to UTC until Init has been called.
func Location() *time.Location {
	if l := loc.Load(); l != nil {
		return l
	}
	return time.UTC
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// dayStart is midnight of t's business day.
func dayStart(t time.Time) time.Time {
	l := Location()
	y, m, d := t.In(l).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, l)
}

// WindowStartUTC is the lower bound of a window covering the last days
// business days, today included.
func WindowStartUTC(now time.Time, days int) time.Time {
	endOfToday := dayStart(now).AddDate(0, 0, 1).Add(-time.Nanosecond)
	return endOfToday.AddDate(0, 0, -days).UTC()
}
