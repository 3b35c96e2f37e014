// Package stats aggregates record timestamps into chart-ready buckets.
// All bucketing is done in UTC so chart labels are stable across server
// timezones.
package stats

import (
	"sort"
	"time"
)

const dayKeyFormat = "2006-01-02"

// Bucket is one labeled count in a chart series.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// BucketByDay counts timestamps per UTC calendar day over the trailing
// window ending today. Every day in the window appears in the result, zero
// filled, in ascending order. Timestamps outside the window and zero
// timestamps are skipped.
func BucketByDay(timestamps []time.Time, windowDays int, now time.Time) []Bucket {
	if windowDays <= 0 {
		return []Bucket{}
	}
	end := truncateDay(now.UTC())
	start := end.AddDate(0, 0, -(windowDays - 1))

	counts := make(map[string]int, windowDays)
	for _, ts := range timestamps {
		if ts.IsZero() {
			continue
		}
		day := truncateDay(ts.UTC())
		if day.Before(start) || day.After(end) {
			continue
		}
		counts[day.Format(dayKeyFormat)]++
	}

	out := make([]Bucket, 0, windowDays)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKeyFormat)
		out = append(out, Bucket{Key: key, Count: counts[key]})
	}
	return out
}

// BucketByWeek counts timestamps per week, keyed by the UTC Sunday on or
// before each timestamp. Only weeks with at least one record appear, in
// ascending key order. Zero timestamps are skipped.
func BucketByWeek(timestamps []time.Time) []Bucket {
	counts := make(map[time.Time]int)
	for _, ts := range timestamps {
		if ts.IsZero() {
			continue
		}
		counts[weekStart(ts.UTC())]++
	}

	out := make([]Bucket, 0, len(counts))
	for week, n := range counts {
		out = append(out, Bucket{Key: week.Format(dayKeyFormat), Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Sunday on or before t, at midnight UTC.
func weekStart(t time.Time) time.Time {
	day := truncateDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
