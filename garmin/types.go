package garmin

import "time"

// Activity is one recorded activity as returned by the activity list API.
type Activity struct {
	ID           int64        `json:"activityId"`
	Name         string       `json:"activityName"`
	ActivityType ActivityType `json:"activityType"`
	StartLocal   string       `json:"startTimeLocal"` // "2006-01-02 15:04:05"
	Distance     float64      `json:"distance"`       // meters
	Duration     float64      `json:"duration"`       // seconds
	AverageHR    float64      `json:"averageHR"`
}

// ActivityType carries the remote activity classification.
type ActivityType struct {
	TypeKey string `json:"typeKey"`
}

// Start parses the activity's local start time.
func (a Activity) Start() (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", a.StartLocal)
}

// ScheduleEntry is one workout occurrence on the remote calendar.
type ScheduleEntry struct {
	ScheduleID int64  `json:"scheduleId"`
	WorkoutID  int64  `json:"workoutId"`
	Title      string `json:"title"`
	Date       string `json:"date"` // "2006-01-02"
}

// On parses the entry's calendar date.
func (e ScheduleEntry) On() (time.Time, error) {
	return time.Parse("2006-01-02", e.Date)
}

// Workout is the native structured-workout representation.
type Workout struct {
	ID          int64     `json:"workoutId,omitempty"`
	Name        string    `json:"workoutName"`
	Description string    `json:"description,omitempty"`
	SportType   SportType `json:"sportType"`
	Segments    []Segment `json:"workoutSegments"`
}

// SportType identifies the sport of a workout or segment.
type SportType struct {
	ID  int    `json:"sportTypeId"`
	Key string `json:"sportTypeKey"`
}

// Segment groups the ordered steps of a workout.
type Segment struct {
	Order     int              `json:"segmentOrder"`
	SportType SportType        `json:"sportType"`
	Steps     []ExecutableStep `json:"workoutSteps"`
}

// ExecutableStep is one native interval step.
type ExecutableStep struct {
	Type              string       `json:"type"` // always "ExecutableStepDTO"
	Order             int          `json:"stepOrder"`
	Description       string       `json:"description,omitempty"`
	StepType          StepType     `json:"stepType"`
	EndCondition      EndCondition `json:"endCondition"`
	EndConditionValue float64      `json:"endConditionValue"`
	TargetType        TargetType   `json:"targetType"`
	TargetValueOne    *float64     `json:"targetValueOne"`
	TargetValueTwo    *float64     `json:"targetValueTwo"`
}

// StepType classifies a native step (warmup, interval, recovery, cooldown).
type StepType struct {
	ID  int    `json:"stepTypeId"`
	Key string `json:"stepTypeKey"`
}

// EndCondition is how a native step ends (distance or time).
type EndCondition struct {
	ID  int    `json:"conditionTypeId"`
	Key string `json:"conditionTypeKey"`
}

// TargetType is a native step's intensity target kind.
type TargetType struct {
	ID  int    `json:"workoutTargetTypeId"`
	Key string `json:"workoutTargetTypeKey"`
}
