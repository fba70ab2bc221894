package plan

import (
	"fmt"
	"sort"
	"time"
)

// AssignDates pins every non-rest workout in the plan to a calendar date.
//
// Week 1 begins on the Monday of the week that lies len(Weeks)-1 weeks before
// race week, so the race date always falls inside the final week. Within a
// week the long run is pinned to the goal's long-run day and the race to the
// race date; everything else keeps plan order, preferring its declared day and
// otherwise taking the earliest free weekday. At least one day per week must
// stay free as a rest day.
//
// The assignment is pure and deterministic: no randomness, no network.
func AssignDates(goal Goal, tp *TrainingPlan, now time.Time) ([]ScheduledWorkout, error) {
	if len(tp.Weeks) == 0 {
		return nil, fmt.Errorf("plan has no weeks")
	}

	raceDate := dateOnly(goal.RaceDate)
	if raceDate.Before(dateOnly(now)) {
		return nil, fmt.Errorf("race date %s has passed", raceDate.Format("2006-01-02"))
	}
	start := mondayOf(raceDate).AddDate(0, 0, -7*(len(tp.Weeks)-1))

	var out []ScheduledWorkout
	for _, week := range tp.Weeks {
		weekStart := start.AddDate(0, 0, 7*(week.Index-1))
		finalWeek := week.Index == len(tp.Weeks)

		used := map[time.Weekday]bool{}
		assign := func(wo PlannedWorkout, day time.Weekday) {
			used[day] = true
			out = append(out, ScheduledWorkout{
				Workout: wo,
				Week:    week.Index,
				Date:    dateFor(weekStart, day),
			})
		}

		free := func(day time.Weekday) bool {
			if used[day] {
				return false
			}
			// Nothing schedules after the race.
			if finalWeek && dateFor(weekStart, day).After(raceDate) {
				return false
			}
			return true
		}

		// Pinned placements first: race day, then the long run.
		var rest []PlannedWorkout
		for _, wo := range week.Workouts {
			switch {
			case wo.Type == Rest:
				// Rest days hold no calendar entry.
			case wo.Type == RaceDay:
				if !finalWeek {
					return nil, fmt.Errorf("week %d: race workout before final week", week.Index)
				}
				if used[raceDate.Weekday()] {
					return nil, fmt.Errorf("week %d: race date already occupied", week.Index)
				}
				assign(wo, raceDate.Weekday())
			case wo.Type == LongRun && free(goal.LongRunDay):
				assign(wo, goal.LongRunDay)
			default:
				rest = append(rest, wo)
			}
		}

		// Remaining workouts in plan order: declared day if free, else the
		// earliest free weekday starting Monday.
		for _, wo := range rest {
			day, ok := pickDay(wo.Day, free)
			if !ok {
				return nil, fmt.Errorf("week %d: no free day for workout %q", week.Index, wo.Name)
			}
			assign(wo, day)
		}

		if len(used) >= 7 {
			return nil, fmt.Errorf("week %d: no rest day left", week.Index)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	seen := map[string]string{}
	for _, sw := range out {
		key := sw.Date.Format("2006-01-02")
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("two workouts on %s (%q, %q)", key, prev, sw.Workout.Name)
		}
		seen[key] = sw.Workout.Name
	}

	return out, nil
}

func pickDay(preferred time.Weekday, free func(time.Weekday) bool) (time.Weekday, bool) {
	if free(preferred) {
		return preferred, true
	}
	// Monday-first scan keeps placement stable across runs.
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	for _, d := range order {
		if free(d) {
			return d, true
		}
	}
	return 0, false
}

// mondayOf returns the Monday on or before t.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) - int(time.Monday) + 7) % 7
	return dateOnly(t).AddDate(0, 0, -offset)
}

// dateFor returns the date of the given weekday within the week starting at
// weekStart (a Monday).
func dateFor(weekStart time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(time.Monday) + 7) % 7
	return weekStart.AddDate(0, 0, offset)
}
