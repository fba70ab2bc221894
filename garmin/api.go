package garmin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/calebmartin/raceplan/internal/fitness"
	"github.com/calebmartin/raceplan/internal/plan"
)

const dateFormat = "2006-01-02"

// ListActivities returns all activities recorded between start and end.
func (c *Client) ListActivities(ctx context.Context, start, end time.Time) ([]Activity, error) {
	var activities []Activity
	err := c.getJSON(ctx, "/activitylist-service/activities/search/activities", map[string]string{
		"startDate": start.Format(dateFormat),
		"endDate":   end.Format(dateFormat),
		"limit":     "200",
	}, &activities)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// RunningHistory fetches the last `days` days of activities and condenses the
// runs into activity summaries, newest first.
func (c *Client) RunningHistory(ctx context.Context, days int) ([]fitness.ActivitySummary, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	activities, err := c.ListActivities(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var out []fitness.ActivitySummary
	for _, a := range activities {
		if !strings.Contains(strings.ToLower(a.ActivityType.TypeKey), "run") {
			continue
		}
		date, err := a.Start()
		if err != nil || a.Distance <= 0 {
			continue
		}

		km := a.Distance / 1000
		summary := fitness.ActivitySummary{
			Date:       date,
			DistanceKM: km,
			Duration:   int64(a.Duration),
			AvgPace:    plan.Pace(time.Duration(a.Duration / km * float64(time.Second))),
		}
		if a.AverageHR > 0 {
			summary.AvgHeartRate = int(a.AverageHR)
		}
		out = append(out, summary)
	}

	c.log.Debug().Int("total", len(activities)).Int("runs", len(out)).Msg("fetched activity history")
	return out, nil
}

// ListSchedule returns the workouts already scheduled between start and end.
// Never cached: sync decisions need the live calendar.
func (c *Client) ListSchedule(ctx context.Context, start, end time.Time) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	err := c.getJSONUncached(ctx, "/workout-service/schedule", map[string]string{
		"startDate": start.Format(dateFormat),
		"endDate":   end.Format(dateFormat),
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UploadWorkout creates a workout definition and returns its remote id.
func (c *Client) UploadWorkout(ctx context.Context, w *Workout) (int64, error) {
	var created Workout
	if err := c.sendJSON(ctx, "POST", "/workout-service/workout", w, &created); err != nil {
		return 0, err
	}
	if created.ID == 0 {
		return 0, fmt.Errorf("garmin: workout created without id")
	}
	return created.ID, nil
}

// UpdateWorkout replaces the definition of an existing workout.
func (c *Client) UpdateWorkout(ctx context.Context, id int64, w *Workout) error {
	w.ID = id
	return c.sendJSON(ctx, "PUT", fmt.Sprintf("/workout-service/workout/%d", id), w, nil)
}

// ScheduleWorkout places a workout on the calendar.
func (c *Client) ScheduleWorkout(ctx context.Context, workoutID int64, date time.Time) error {
	body := map[string]string{"date": date.Format(dateFormat)}
	return c.sendJSON(ctx, "POST", fmt.Sprintf("/workout-service/schedule/%d", workoutID), body, nil)
}

// DeleteSchedule removes a calendar occurrence.
func (c *Client) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	return c.sendJSON(ctx, "DELETE", fmt.Sprintf("/workout-service/schedule/%d", scheduleID), nil, nil)
}
