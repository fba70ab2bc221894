package plan

import (
	"fmt"
	"math"
	"time"
)

// WeeksUntil returns the number of whole calendar weeks between now and the
// race date, rounded down. Negative when the race is in the past. The race
// counts as its calendar date regardless of location, so a date parsed as UTC
// midnight lines up with a local-zone now.
func WeeksUntil(now, race time.Time) int {
	n := dateOnly(now)
	y, m, d := race.Date()
	r := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	// Rounding absorbs DST transitions inside the span.
	days := int(math.Round(r.Sub(n).Hours() / 24))
	if days < 0 {
		return -((-days) / 7)
	}
	return days / 7
}

// Validate checks the structural invariants of a generated plan against the
// goal. Violations are never repaired: the caller surfaces them (and may
// re-prompt the model).
func (p *TrainingPlan) Validate(goal Goal, now time.Time) error {
	if len(p.Weeks) == 0 {
		return fmt.Errorf("plan has no weeks")
	}

	want := WeeksUntil(now, goal.RaceDate)
	if len(p.Weeks) != want {
		return fmt.Errorf("plan spans %d weeks, want %d (now to race date)", len(p.Weeks), want)
	}

	for i, w := range p.Weeks {
		if w.Index != i+1 {
			return fmt.Errorf("week %d has index %d, want contiguous indexes from 1", i+1, w.Index)
		}
		if len(w.Workouts) == 0 {
			return fmt.Errorf("week %d has no workouts", w.Index)
		}
		for _, wo := range w.Workouts {
			if wo.Type != Rest && len(wo.Steps) == 0 {
				return fmt.Errorf("week %d: workout %q has no steps", w.Index, wo.Name)
			}
		}
	}

	final := p.Weeks[len(p.Weeks)-1]
	races := 0
	for _, wo := range final.Workouts {
		if wo.Type != RaceDay {
			continue
		}
		races++
		if wo.Day != goal.RaceDate.Weekday() {
			return fmt.Errorf("race workout falls on %s, race date is a %s",
				wo.Day, goal.RaceDate.Weekday())
		}
	}
	if races == 0 {
		return fmt.Errorf("final week has no race workout")
	}
	if races > 1 {
		return fmt.Errorf("final week has %d race workouts, want 1", races)
	}

	for i, w := range p.Weeks[:len(p.Weeks)-1] {
		for _, wo := range w.Workouts {
			if wo.Type == RaceDay {
				return fmt.Errorf("week %d has a race workout before the final week", i+1)
			}
		}
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
