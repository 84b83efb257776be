package format

import (
	"math"
	"time"
)

const (
	filetimeOffset = 116444736000000000 // difference between FILETIME epoch and Unix epoch in 100ns units
	filetimeUnit   = 100                // FILETIME units are 100ns

	oleDayNanos = int64(24 * time.Hour)
)

// oleEpoch is day zero of an OLE automation date.
var oleEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// FiletimeToTime converts a Windows FILETIME value (little-endian) to time.Time.
func FiletimeToTime(v uint64) time.Time {
	if v <= filetimeOffset {
		return time.Unix(0, 0).UTC()
	}
	ns := int64((v - filetimeOffset) * filetimeUnit)
	sec := ns / int64(time.Second)
	nsec := ns % int64(time.Second)
	return time.Unix(sec, nsec).UTC()
}

// TimeToFiletime converts a time.Time to a Windows FILETIME value (little-endian uint64).
func TimeToFiletime(t time.Time) uint64 {
	ns := t.UnixNano()
	if ns < 0 {
		ns = 0
	}
	return uint64(ns)/filetimeUnit + filetimeOffset
}

// OLEDateToTime converts an OLE automation date (days since 1899-12-30, with
// the fraction as time of day) to UTC. For negative dates the fraction still
// counts forward from midnight, as in the COM definition.
func OLEDateToTime(d float64) time.Time {
	days, frac := math.Modf(d)
	frac = math.Abs(frac)
	t := oleEpoch.AddDate(0, 0, int(days))
	return t.Add(time.Duration(math.Round(frac * float64(oleDayNanos))))
}

// TimeToOLEDate converts t to an OLE automation date.
func TimeToOLEDate(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	days := float64((midnight.Unix() - oleEpoch.Unix()) / 86400)
	frac := float64(t.Sub(midnight)) / float64(oleDayNanos)
	if days < 0 {
		return days - frac
	}
	return days + frac
}
