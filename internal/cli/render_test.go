package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calebmartin/raceplan/internal/calendar"
	"github.com/calebmartin/raceplan/internal/fitness"
	"github.com/calebmartin/raceplan/internal/plan"
)

func TestRenderFitnessNoData(t *testing.T) {
	out := RenderFitness(fitness.Summary{})
	assert.Contains(t, out, "No recent runs")
}

func TestRenderFitness(t *testing.T) {
	out := RenderFitness(fitness.Summary{
		HasData:      true,
		TotalRuns:    12,
		TotalKM:      96.4,
		AvgKM:        8.0,
		AvgPaceLabel: "5:30/km",
		AvgHeartRate: 151,
		WeeklyKM:     []float64{24, 26, 22, 24},
	})

	assert.Contains(t, out, "12 runs")
	assert.Contains(t, out, "5:30/km")
	assert.Contains(t, out, "151 bpm")
	assert.Contains(t, out, "24 / 26 / 22 / 24 km")
}

func TestRenderPlanGroupsByWeek(t *testing.T) {
	scheduled := []plan.ScheduledWorkout{
		{
			Workout: plan.PlannedWorkout{Type: plan.EasyRun, Name: "Week 1 - Easy"},
			Week:    1,
			Date:    time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			Workout: plan.PlannedWorkout{Type: plan.LongRun, Name: "Week 1 - Long Run"},
			Week:    1,
			Date:    time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			Workout: plan.PlannedWorkout{Type: plan.Tempo, Name: "Week 2 - Tempo"},
			Week:    2,
			Date:    time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC),
		},
	}

	out := RenderPlan(scheduled)
	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "Week 2")
	assert.Contains(t, out, "Tue 2024-03-12")
	assert.Contains(t, out, "Week 1 - Long Run")
}

func TestRenderSyncResult(t *testing.T) {
	out := RenderSyncResult(&calendar.Result{Created: 30, Updated: 1, Skipped: 5})
	assert.Contains(t, out, "30 created, 1 updated, 5 already scheduled")
	assert.NotContains(t, out, "failed")
}

func TestRenderSyncResultWithFailures(t *testing.T) {
	out := RenderSyncResult(&calendar.Result{
		Created: 3,
		Failures: []calendar.Failure{
			{Date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), Name: "Week 1 - Tempo", Err: errors.New("server error")},
		},
	})

	assert.Contains(t, out, "1 workouts failed")
	assert.Contains(t, out, "Week 1 - Tempo")
	assert.Contains(t, out, "Re-run to retry")
}
