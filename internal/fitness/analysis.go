// Package fitness condenses a runner's recent activity history into the
// snapshot the coach prompt is built from.
package fitness

import (
	"sort"
	"time"

	"github.com/calebmartin/raceplan/internal/plan"
)

// ActivitySummary is a read-only snapshot of one recorded run.
type ActivitySummary struct {
	Date         time.Time `json:"date"`
	DistanceKM   float64   `json:"distance_km"`
	Duration     int64     `json:"duration_sec"`
	AvgPace      plan.Pace `json:"-"`
	AvgPaceLabel string    `json:"avg_pace"`
	AvgHeartRate int       `json:"avg_hr,omitempty"`
}

// Summary is the condensed fitness picture sent to the model.
type Summary struct {
	HasData      bool              `json:"has_data"`
	TotalRuns    int               `json:"total_runs,omitempty"`
	TotalKM      float64           `json:"total_distance_km,omitempty"`
	AvgKM        float64           `json:"avg_distance_km,omitempty"`
	AvgPace      plan.Pace         `json:"-"`
	AvgPaceLabel string            `json:"avg_pace,omitempty"`
	AvgHeartRate int               `json:"avg_hr,omitempty"`
	WeeklyKM     []float64         `json:"weekly_km,omitempty"` // oldest week first
	RecentRuns   []ActivitySummary `json:"recent_runs,omitempty"`
}

const recentRunLimit = 10

// Summarize builds a Summary from activity history. Activities may arrive in
// any order; the weekly mileage trend covers the span between the oldest and
// newest run, bucketed Monday to Sunday.
func Summarize(activities []ActivitySummary) Summary {
	if len(activities) == 0 {
		return Summary{HasData: false}
	}

	sorted := make([]ActivitySummary, len(activities))
	copy(sorted, activities)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	s := Summary{HasData: true, TotalRuns: len(sorted)}

	var paceSum time.Duration
	var paceCount int
	var hrSum, hrCount int
	for _, a := range sorted {
		s.TotalKM += a.DistanceKM
		if a.AvgPace > 0 {
			paceSum += time.Duration(a.AvgPace)
			paceCount++
		}
		if a.AvgHeartRate > 0 {
			hrSum += a.AvgHeartRate
			hrCount++
		}
	}
	s.AvgKM = s.TotalKM / float64(len(sorted))
	if paceCount > 0 {
		s.AvgPace = plan.Pace(paceSum / time.Duration(paceCount))
		s.AvgPaceLabel = s.AvgPace.String()
	}
	if hrCount > 0 {
		s.AvgHeartRate = hrSum / hrCount
	}

	s.WeeklyKM = weeklyMileage(sorted)

	limit := recentRunLimit
	if limit > len(sorted) {
		limit = len(sorted)
	}
	s.RecentRuns = sorted[:limit]
	for i := range s.RecentRuns {
		if s.RecentRuns[i].AvgPace > 0 {
			s.RecentRuns[i].AvgPaceLabel = s.RecentRuns[i].AvgPace.String()
		}
	}

	return s
}

// weeklyMileage buckets distance per Monday-anchored week, oldest first.
func weeklyMileage(activities []ActivitySummary) []float64 {
	if len(activities) == 0 {
		return nil
	}

	newest := weekAnchor(activities[0].Date)
	oldest := weekAnchor(activities[len(activities)-1].Date)
	weeks := int(newest.Sub(oldest).Hours()/(24*7)) + 1
	out := make([]float64, weeks)

	for _, a := range activities {
		idx := int(weekAnchor(a.Date).Sub(oldest).Hours() / (24 * 7))
		if idx >= 0 && idx < weeks {
			out[idx] += a.DistanceKM
		}
	}
	return out
}

func weekAnchor(t time.Time) time.Time {
	offset := (int(t.Weekday()) - int(time.Monday) + 7) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
}
