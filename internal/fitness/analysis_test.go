package fitness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmartin/raceplan/internal/plan"
)

func run(date string, km float64, pace string, hr int) ActivitySummary {
	d, _ := time.Parse("2006-01-02", date)
	p, _ := plan.ParsePace(pace)
	return ActivitySummary{Date: d, DistanceKM: km, Duration: int64(float64(time.Duration(p).Seconds()) * km), AvgPace: p, AvgHeartRate: hr}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.False(t, s.HasData)
	assert.Zero(t, s.TotalRuns)
}

func TestSummarize(t *testing.T) {
	activities := []ActivitySummary{
		run("2024-02-19", 10, "5:30/km", 150), // Monday, week 1
		run("2024-02-22", 8, "5:10/km", 155),  // Thursday, week 1
		run("2024-03-01", 12, "5:50/km", 0),   // Friday, week 2
	}

	s := Summarize(activities)
	require.True(t, s.HasData)

	assert.Equal(t, 3, s.TotalRuns)
	assert.InDelta(t, 30, s.TotalKM, 0.001)
	assert.InDelta(t, 10, s.AvgKM, 0.001)
	assert.Equal(t, "5:30/km", s.AvgPaceLabel)
	assert.Equal(t, 152, s.AvgHeartRate) // runs without HR excluded

	require.Len(t, s.WeeklyKM, 2)
	assert.InDelta(t, 18, s.WeeklyKM[0], 0.001)
	assert.InDelta(t, 12, s.WeeklyKM[1], 0.001)

	// Recent runs are newest first.
	require.Len(t, s.RecentRuns, 3)
	assert.Equal(t, 12.0, s.RecentRuns[0].DistanceKM)
	assert.Equal(t, "5:50/km", s.RecentRuns[0].AvgPaceLabel)
}

func TestSummarizeLimitsRecentRuns(t *testing.T) {
	var activities []ActivitySummary
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		a := run("2024-01-01", 5, "6:00/km", 140)
		a.Date = base.AddDate(0, 0, i)
		activities = append(activities, a)
	}

	s := Summarize(activities)
	assert.Equal(t, 25, s.TotalRuns)
	assert.Len(t, s.RecentRuns, 10)
}
