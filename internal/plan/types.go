// Package plan holds the training-plan domain model: the race goal entered by
// the runner, the periodized plan produced by the coach, and the calendar
// assignment that pins each workout to a date.
package plan

import (
	"fmt"
	"strings"
	"time"
)

// RaceDistance is a supported race distance.
type RaceDistance string

const (
	Race5K       RaceDistance = "5K"
	Race10K      RaceDistance = "10K"
	RaceHalf     RaceDistance = "Half Marathon"
	RaceMarathon RaceDistance = "Marathon"
	RaceCustom   RaceDistance = "Custom"
)

// Meters returns the race distance in meters. Custom distances return 0;
// use Goal.DistanceMeters instead.
func (d RaceDistance) Meters() float64 {
	switch d {
	case Race5K:
		return 5000
	case Race10K:
		return 10000
	case RaceHalf:
		return 21097.5
	case RaceMarathon:
		return 42195
	default:
		return 0
	}
}

// Goal is the race goal entered by the runner. Immutable once collected.
type Goal struct {
	Distance     RaceDistance
	CustomMeters float64 // used when Distance == RaceCustom
	GoalPace     Pace
	RaceDate     time.Time // date only, local midnight
	LongRunDay   time.Weekday
}

// DistanceMeters returns the goal race distance in meters.
func (g Goal) DistanceMeters() float64 {
	if g.Distance == RaceCustom {
		return g.CustomMeters
	}
	return g.Distance.Meters()
}

// WorkoutType classifies a planned workout.
type WorkoutType string

const (
	EasyRun  WorkoutType = "easy"
	Tempo    WorkoutType = "tempo"
	Interval WorkoutType = "interval"
	LongRun  WorkoutType = "long"
	Rest     WorkoutType = "rest"
	RaceDay  WorkoutType = "race"
)

// ParseWorkoutType maps a model-emitted workout type label onto a WorkoutType.
func ParseWorkoutType(s string) (WorkoutType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "easy run", "recovery", "recovery run":
		return EasyRun, nil
	case "tempo", "threshold":
		return Tempo, nil
	case "interval", "intervals", "speed", "vo2max", "track":
		return Interval, nil
	case "long", "long run":
		return LongRun, nil
	case "rest", "off":
		return Rest, nil
	case "race", "race day":
		return RaceDay, nil
	}
	return "", fmt.Errorf("unknown workout type %q", s)
}

// StepKind classifies one interval segment within a workout.
type StepKind string

const (
	WarmUp   StepKind = "warmup"
	Work     StepKind = "work"
	Recovery StepKind = "recovery"
	CoolDown StepKind = "cooldown"
)

// TargetType is the kind of intensity target attached to a step.
type TargetType string

const (
	TargetNone      TargetType = "none"
	TargetPace      TargetType = "pace"
	TargetHeartRate TargetType = "heart_rate"
)

// EndKind is how a step ends: after a distance or after a duration.
type EndKind string

const (
	EndDistance EndKind = "distance" // EndValue in meters
	EndDuration EndKind = "duration" // EndValue in seconds
)

// Step is one interval segment of a planned workout.
//
// Pace targets are either absolute (PaceLow/PaceHigh set) or goal-relative
// (both zero, GoalOffset holds a per-mile shift from goal pace; negative is
// faster). The mapper resolves goal-relative targets against Goal.GoalPace.
type Step struct {
	Kind       StepKind
	Name       string
	Target     TargetType
	PaceLow    Pace
	PaceHigh   Pace
	GoalOffset time.Duration
	ZoneLow    int
	ZoneHigh   int
	End        EndKind
	EndValue   float64
}

// PlannedWorkout is one workout within a training week.
type PlannedWorkout struct {
	Day         time.Weekday
	Type        WorkoutType
	Name        string
	Description string
	Steps       []Step
}

// WeekPlan is one week of the periodized plan. Index is 1-based.
type WeekPlan struct {
	Index    int
	Workouts []PlannedWorkout
}

// TrainingPlan is the full periodized plan for one race goal.
type TrainingPlan struct {
	Weeks []WeekPlan
}

// ScheduledWorkout is a planned workout pinned to a calendar date. RemoteID is
// set once the workout exists on the remote calendar; re-runs use the remote
// schedule to detect existing entries instead.
type ScheduledWorkout struct {
	Workout  PlannedWorkout
	Week     int
	Date     time.Time
	RemoteID int64
}

// ParseDay parses a day-of-week name ("Sunday", "sun") into a time.Weekday.
func ParseDay(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue", "tues":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu", "thur", "thurs":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	}
	return 0, fmt.Errorf("unknown day of week %q", s)
}
