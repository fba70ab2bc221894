package coach

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/calebmartin/raceplan/internal/plan"
)

// Wire schema for the model's JSON answer. Kept separate from the domain
// types: model output is untrusted input and every field is validated on the
// way in.
type planResponse struct {
	Weeks []weekResponse `json:"weeks"`
}

type weekResponse struct {
	Week     int               `json:"week"`
	Workouts []workoutResponse `json:"workouts"`
}

type workoutResponse struct {
	Day         string         `json:"day"`
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Steps       []stepResponse `json:"steps"`
}

type stepResponse struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Duration string `json:"duration"`
	Target   string `json:"target"`
}

// parsePlan turns raw model output into a validated TrainingPlan.
func parsePlan(raw string, goal plan.Goal, now time.Time) (*plan.TrainingPlan, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("%w: no JSON found in response", ErrMalformedResponse)
	}

	var resp planResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	tp := &plan.TrainingPlan{}
	for _, w := range resp.Weeks {
		week := plan.WeekPlan{Index: w.Week}
		for _, wo := range w.Workouts {
			converted, err := convertWorkout(wo)
			if err != nil {
				return nil, fmt.Errorf("%w: week %d: %v", ErrMalformedResponse, w.Week, err)
			}
			week.Workouts = append(week.Workouts, converted)
		}
		tp.Weeks = append(tp.Weeks, week)
	}

	if err := tp.Validate(goal, now); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	return tp, nil
}

func convertWorkout(wo workoutResponse) (plan.PlannedWorkout, error) {
	day, err := plan.ParseDay(wo.Day)
	if err != nil {
		return plan.PlannedWorkout{}, fmt.Errorf("workout %q: %v", wo.Name, err)
	}
	typ, err := plan.ParseWorkoutType(wo.Type)
	if err != nil {
		return plan.PlannedWorkout{}, fmt.Errorf("workout %q: %v", wo.Name, err)
	}

	out := plan.PlannedWorkout{
		Day:         day,
		Type:        typ,
		Name:        wo.Name,
		Description: wo.Description,
	}
	for _, s := range wo.Steps {
		step, err := convertStep(s)
		if err != nil {
			return plan.PlannedWorkout{}, fmt.Errorf("workout %q: %v", wo.Name, err)
		}
		out.Steps = append(out.Steps, step)
	}
	return out, nil
}

func convertStep(s stepResponse) (plan.Step, error) {
	kind, err := parseStepKind(s.Kind)
	if err != nil {
		return plan.Step{}, fmt.Errorf("step %q: %v", s.Name, err)
	}
	end, endValue, err := parseDuration(s.Duration)
	if err != nil {
		return plan.Step{}, fmt.Errorf("step %q: %v", s.Name, err)
	}

	step := plan.Step{
		Kind:     kind,
		Name:     s.Name,
		End:      end,
		EndValue: endValue,
	}
	if err := parseTarget(s.Target, &step); err != nil {
		return plan.Step{}, fmt.Errorf("step %q: %v", s.Name, err)
	}
	return step, nil
}

func parseStepKind(s string) (plan.StepKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warmup", "warm up", "warm-up":
		return plan.WarmUp, nil
	case "work", "active", "interval", "run":
		return plan.Work, nil
	case "recovery", "rest":
		return plan.Recovery, nil
	case "cooldown", "cool down", "cool-down":
		return plan.CoolDown, nil
	}
	return "", fmt.Errorf("unknown step kind %q", s)
}

var (
	distanceRE = regexp.MustCompile(`^([\d.]+)\s*(m|km|mi|mile|miles)$`)
	clockRE    = regexp.MustCompile(`^(\d+):(\d{2})$`)
	unitTimeRE = regexp.MustCompile(`^([\d.]+)\s*(min|mins|minute|minutes|sec|secs|second|seconds|s)$`)
)

// parseDuration reads a step end condition: a distance ("800m", "2 mi",
// "1 km") or a time ("10:00" as MM:SS, "90 sec").
func parseDuration(s string) (plan.EndKind, float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", 0, fmt.Errorf("missing duration")
	}

	if m := distanceRE.FindStringSubmatch(s); m != nil {
		value, _ := strconv.ParseFloat(m[1], 64)
		meters := value
		switch m[2] {
		case "km":
			meters = value * 1000
		case "mi", "mile", "miles":
			meters = value * plan.MetersPerMile
		}
		return plan.EndDistance, meters, nil
	}

	if m := clockRE.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.Atoi(m[1])
		secs, _ := strconv.Atoi(m[2])
		return plan.EndDuration, float64(mins*60 + secs), nil
	}

	if m := unitTimeRE.FindStringSubmatch(s); m != nil {
		value, _ := strconv.ParseFloat(m[1], 64)
		if strings.HasPrefix(m[2], "s") {
			return plan.EndDuration, value, nil
		}
		return plan.EndDuration, value * 60, nil
	}

	return "", 0, fmt.Errorf("unparseable duration %q", s)
}

var (
	goalRelRE = regexp.MustCompile(`^goal\s*(?:([+-])\s*(\d+)\s*s(?:ec)?)?$`)
	zoneRE    = regexp.MustCompile(`^zone\s*(\d)(?:\s*-\s*(\d))?$`)
)

// parseTarget reads a step intensity target into the step's target fields.
func parseTarget(s string, step *plan.Step) error {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "", "open", "easy", "jog", "none":
		step.Target = plan.TargetNone
		return nil
	}

	if m := goalRelRE.FindStringSubmatch(s); m != nil {
		step.Target = plan.TargetPace
		if m[1] != "" {
			secs, _ := strconv.Atoi(m[2])
			offset := time.Duration(secs) * time.Second
			if m[1] == "-" {
				offset = -offset
			}
			step.GoalOffset = offset
		}
		return nil
	}

	if m := zoneRE.FindStringSubmatch(s); m != nil {
		low, _ := strconv.Atoi(m[1])
		high := low
		if m[2] != "" {
			high, _ = strconv.Atoi(m[2])
		}
		step.Target = plan.TargetHeartRate
		step.ZoneLow, step.ZoneHigh = low, high
		return nil
	}

	if pace, err := plan.ParsePace(s); err == nil {
		step.Target = plan.TargetPace
		step.PaceLow, step.PaceHigh = pace, pace
		return nil
	}

	return fmt.Errorf("unparseable target %q", s)
}
