// Package calendar brings the remote workout calendar in line with a locally
// generated training plan: create what is missing, overwrite what conflicts,
// skip what already matches.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/calebmartin/raceplan/garmin"
	"github.com/calebmartin/raceplan/internal/plan"
)

// API is the slice of the remote client the scheduler needs.
type API interface {
	ListSchedule(ctx context.Context, start, end time.Time) ([]garmin.ScheduleEntry, error)
	UploadWorkout(ctx context.Context, w *garmin.Workout) (int64, error)
	UpdateWorkout(ctx context.Context, id int64, w *garmin.Workout) error
	ScheduleWorkout(ctx context.Context, workoutID int64, date time.Time) error
}

// Item is one dated workout ready to sync: the schedule assignment plus its
// native representation. Rest days never become items.
type Item struct {
	Scheduled plan.ScheduledWorkout
	Native    *garmin.Workout
}

// Failure records one workout that could not be synced.
type Failure struct {
	Date time.Time
	Name string
	Err  error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s %q: %v", f.Date.Format("2006-01-02"), f.Name, f.Err)
}

// Result aggregates the outcome of one sync run.
type Result struct {
	Created  int
	Updated  int
	Skipped  int
	Failures []Failure
}

// Ok reports whether every workout synced.
func (r *Result) Ok() bool { return len(r.Failures) == 0 }

// Scheduler executes idempotent calendar syncs.
type Scheduler struct {
	api API
	log zerolog.Logger
}

// NewScheduler creates a Scheduler over the given remote API.
func NewScheduler(api API, log zerolog.Logger) *Scheduler {
	return &Scheduler{api: api, log: log}
}

// Sync reconciles the remote calendar with the plan's dated workouts.
//
// For each item: a remote entry on the same date with the same title is left
// alone; a different entry on that date has its workout definition replaced;
// an empty date gets a new workout created and scheduled. Remote writes are
// retried a few times; a workout that still fails is recorded and never
// aborts the remaining items. Only the initial calendar listing can fail the
// sync as a whole. Synced items get their RemoteID filled in.
func (s *Scheduler) Sync(ctx context.Context, items []Item) (*Result, error) {
	if len(items) == 0 {
		return &Result{}, nil
	}

	start, end := items[0].Scheduled.Date, items[0].Scheduled.Date
	for _, it := range items {
		if it.Scheduled.Date.Before(start) {
			start = it.Scheduled.Date
		}
		if it.Scheduled.Date.After(end) {
			end = it.Scheduled.Date
		}
	}

	existing, err := s.api.ListSchedule(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled workouts: %w", err)
	}
	byDate := make(map[string]garmin.ScheduleEntry, len(existing))
	for _, e := range existing {
		byDate[e.Date] = e
	}

	res := &Result{}
	for i := range items {
		it := &items[i]
		date := it.Scheduled.Date.Format("2006-01-02")
		name := it.Scheduled.Workout.Name
		log := s.log.With().Str("date", date).Str("workout", name).Logger()

		entry, occupied := byDate[date]
		switch {
		case occupied && entry.Title == name:
			it.Scheduled.RemoteID = entry.WorkoutID
			log.Debug().Msg("already scheduled, skipping")
			res.Skipped++

		case occupied:
			err := s.push(ctx, func() error {
				return s.api.UpdateWorkout(ctx, entry.WorkoutID, it.Native)
			})
			if err != nil {
				log.Warn().Err(err).Msg("update failed")
				res.Failures = append(res.Failures, Failure{Date: it.Scheduled.Date, Name: name, Err: err})
				continue
			}
			it.Scheduled.RemoteID = entry.WorkoutID
			log.Info().Int64("workout_id", entry.WorkoutID).Msg("replaced existing workout")
			res.Updated++

		default:
			var id int64
			err := s.push(ctx, func() error {
				var uerr error
				id, uerr = s.api.UploadWorkout(ctx, it.Native)
				return uerr
			})
			if err == nil {
				err = s.push(ctx, func() error {
					return s.api.ScheduleWorkout(ctx, id, it.Scheduled.Date)
				})
			}
			if err != nil {
				log.Warn().Err(err).Msg("create failed")
				res.Failures = append(res.Failures, Failure{Date: it.Scheduled.Date, Name: name, Err: err})
				continue
			}
			it.Scheduled.RemoteID = id
			log.Info().Int64("workout_id", id).Msg("scheduled workout")
			res.Created++
		}
	}

	return res, nil
}

// Each remote write gets a few attempts before the workout counts as failed.
const pushAttempts = 3

func (s *Scheduler) push(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= pushAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	return err
}

// BuildItems maps every dated workout to its native representation. Mapping
// errors are fatal here: nothing is synced from a plan that cannot be fully
// expressed remotely.
func BuildItems(scheduled []plan.ScheduledWorkout, goal plan.Goal) ([]Item, error) {
	items := make([]Item, 0, len(scheduled))
	for _, sw := range scheduled {
		native, err := garmin.BuildWorkout(sw.Workout, goal)
		if err != nil {
			return nil, err
		}
		if native == nil {
			continue // rest day
		}
		items = append(items, Item{Scheduled: sw, Native: native})
	}
	return items, nil
}
