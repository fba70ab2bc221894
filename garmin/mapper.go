package garmin

import (
	"fmt"

	"github.com/calebmartin/raceplan/internal/plan"
)

// MappingError reports a planned step that cannot be expressed in the native
// workout schema. It should not occur for well-formed generator output, so it
// carries the offending step for diagnosis.
type MappingError struct {
	Workout string
	Step    string
	Reason  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map workout %q step %q: %s", e.Workout, e.Step, e.Reason)
}

var (
	sportRunning = SportType{ID: 1, Key: "running"}

	stepWarmup   = StepType{ID: 1, Key: "warmup"}
	stepCooldown = StepType{ID: 2, Key: "cooldown"}
	stepInterval = StepType{ID: 3, Key: "interval"}
	stepRecovery = StepType{ID: 4, Key: "recovery"}

	endTime     = EndCondition{ID: 2, Key: "time"}
	endDistance = EndCondition{ID: 3, Key: "distance"}

	targetOpen = TargetType{ID: 1, Key: "no.target"}
	targetHR   = TargetType{ID: 4, Key: "heart.rate.zone"}
	targetPace = TargetType{ID: 6, Key: "pace.zone"}
)

// Pace targets get a +/-5% band around the prescribed speed so the watch
// alerts leave room for terrain.
const paceBand = 0.05

// BuildWorkout converts a planned workout into its native representation.
// Pure and deterministic: the same workout and goal always produce the same
// payload. Rest days have no native counterpart and return (nil, nil).
func BuildWorkout(wo plan.PlannedWorkout, goal plan.Goal) (*Workout, error) {
	if wo.Type == plan.Rest {
		return nil, nil
	}

	steps := make([]ExecutableStep, 0, len(wo.Steps))
	for i, s := range wo.Steps {
		built, err := buildStep(i+1, wo.Name, s, goal)
		if err != nil {
			return nil, err
		}
		steps = append(steps, built)
	}

	return &Workout{
		Name:        wo.Name,
		Description: wo.Description,
		SportType:   sportRunning,
		Segments: []Segment{{
			Order:     1,
			SportType: sportRunning,
			Steps:     steps,
		}},
	}, nil
}

func buildStep(order int, workout string, s plan.Step, goal plan.Goal) (ExecutableStep, error) {
	step := ExecutableStep{
		Type:        "ExecutableStepDTO",
		Order:       order,
		Description: s.Name,
	}

	switch s.Kind {
	case plan.WarmUp:
		step.StepType = stepWarmup
	case plan.CoolDown:
		step.StepType = stepCooldown
	case plan.Recovery:
		step.StepType = stepRecovery
	case plan.Work:
		step.StepType = stepInterval
	default:
		return step, &MappingError{Workout: workout, Step: s.Name,
			Reason: fmt.Sprintf("unsupported step kind %q", s.Kind)}
	}

	switch s.End {
	case plan.EndDistance:
		step.EndCondition = endDistance
	case plan.EndDuration:
		step.EndCondition = endTime
	default:
		return step, &MappingError{Workout: workout, Step: s.Name,
			Reason: fmt.Sprintf("unsupported end condition %q", s.End)}
	}
	if s.EndValue <= 0 {
		return step, &MappingError{Workout: workout, Step: s.Name,
			Reason: "non-positive end condition value"}
	}
	step.EndConditionValue = s.EndValue

	switch s.Target {
	case plan.TargetNone:
		step.TargetType = targetOpen

	case plan.TargetPace:
		low, high := paceBounds(s, goal)
		step.TargetType = targetPace
		step.TargetValueOne = &low
		step.TargetValueTwo = &high

	case plan.TargetHeartRate:
		if s.ZoneLow < 1 || s.ZoneHigh < s.ZoneLow || s.ZoneHigh > 5 {
			return step, &MappingError{Workout: workout, Step: s.Name,
				Reason: fmt.Sprintf("heart rate zone out of range (%d-%d)", s.ZoneLow, s.ZoneHigh)}
		}
		low := float64(s.ZoneLow)
		high := float64(s.ZoneHigh)
		step.TargetType = targetHR
		step.TargetValueOne = &low
		step.TargetValueTwo = &high

	default:
		return step, &MappingError{Workout: workout, Step: s.Name,
			Reason: fmt.Sprintf("unsupported target type %q", s.Target)}
	}

	return step, nil
}

// paceBounds resolves a step's pace target into native speed bounds in m/s.
// TargetValueOne is the fast edge, TargetValueTwo the slow edge. A single
// prescribed pace widens into the +/-5% band; an explicit low/high pair maps
// directly.
func paceBounds(s plan.Step, goal plan.Goal) (float64, float64) {
	if s.PaceLow > 0 && s.PaceHigh > 0 && s.PaceLow != s.PaceHigh {
		fast, slow := s.PaceLow, s.PaceHigh
		if fast > slow { // lower pace value = faster
			fast, slow = slow, fast
		}
		return fast.MetersPerSecond(), slow.MetersPerSecond()
	}

	base := s.PaceLow
	if base == 0 {
		base = goal.GoalPace.AddPerMile(s.GoalOffset)
	}
	speed := base.MetersPerSecond()
	return speed * (1 + paceBand), speed * (1 - paceBand)
}
