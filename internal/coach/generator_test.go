package coach

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmartin/raceplan/internal/fitness"
	"github.com/calebmartin/raceplan/internal/llm"
	"github.com/calebmartin/raceplan/internal/plan"
)

var (
	testNow  = time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	testRace = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) // Saturday, 12 weeks out
)

func testGoal() plan.Goal {
	pace, _ := plan.ParsePace("5:30/km")
	return plan.Goal{
		Distance:   plan.RaceHalf,
		GoalPace:   pace,
		RaceDate:   testRace,
		LongRunDay: time.Sunday,
	}
}

// scriptedLLM plays back canned responses (or errors) in order.
type scriptedLLM struct {
	responses []string
	errs      []error
	prompts   []string
}

func (s *scriptedLLM) Generate(_ context.Context, _, user string) (string, error) {
	i := len(s.prompts)
	s.prompts = append(s.prompts, user)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return s.responses[len(s.responses)-1], nil
}

func step(name, kind, duration, target string) stepResponse {
	return stepResponse{Name: name, Kind: kind, Duration: duration, Target: target}
}

// validResponse builds a well-formed 12-week answer for the test goal.
func validResponse(t *testing.T, mutate func(*planResponse)) string {
	t.Helper()
	resp := planResponse{}
	for i := 1; i <= 12; i++ {
		week := weekResponse{Week: i}
		week.Workouts = append(week.Workouts,
			workoutResponse{
				Day: "Tuesday", Type: "easy", Name: "Easy Run",
				Steps: []stepResponse{step("Easy", "work", "5 mi", "goal+75s")},
			},
			workoutResponse{
				Day: "Thursday", Type: "tempo", Name: "Tempo Run",
				Steps: []stepResponse{
					step("Warm Up", "warmup", "2 mi", "easy"),
					step("Tempo", "work", "4 mi", "goal+18s"),
					step("Cool Down", "cooldown", "1 mi", "easy"),
				},
			},
		)
		if i == 12 {
			week.Workouts = append(week.Workouts, workoutResponse{
				Day: "Saturday", Type: "race", Name: "Race Day",
				Steps: []stepResponse{step("Half Marathon", "work", "13.1 mi", "goal")},
			})
		} else {
			week.Workouts = append(week.Workouts, workoutResponse{
				Day: "Sunday", Type: "long", Name: "Long Run",
				Steps: []stepResponse{step("Long", "work", "10 mi", "goal+80s")},
			})
		}
		resp.Weeks = append(resp.Weeks, week)
	}
	if mutate != nil {
		mutate(&resp)
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(b)
}

func newTestGenerator(client llm.Client, retries int) *Generator {
	g := NewGenerator(client, retries, zerolog.Nop())
	return g.WithClock(func() time.Time { return testNow })
}

func TestGenerateParsesValidResponse(t *testing.T) {
	fake := &scriptedLLM{responses: []string{validResponse(t, nil)}}
	g := newTestGenerator(fake, 2)

	tp, err := g.Generate(context.Background(), testGoal(), fitness.Summary{HasData: false})
	require.NoError(t, err)

	require.Len(t, tp.Weeks, 12)
	final := tp.Weeks[11]
	var race *plan.PlannedWorkout
	for i := range final.Workouts {
		if final.Workouts[i].Type == plan.RaceDay {
			race = &final.Workouts[i]
		}
	}
	require.NotNil(t, race, "final week must contain the race")
	assert.Equal(t, time.Saturday, race.Day)
	assert.Len(t, fake.prompts, 1)
}

func TestGenerateToleratesFencedResponse(t *testing.T) {
	fenced := "Here you go:\n```json\n" + validResponse(t, nil) + "\n```"
	fake := &scriptedLLM{responses: []string{fenced}}
	g := newTestGenerator(fake, 0)

	tp, err := g.Generate(context.Background(), testGoal(), fitness.Summary{})
	require.NoError(t, err)
	assert.Len(t, tp.Weeks, 12)
}

func TestGenerateRetriesMalformedWithReminder(t *testing.T) {
	fake := &scriptedLLM{responses: []string{"I am not JSON", validResponse(t, nil)}}
	g := newTestGenerator(fake, 2)

	tp, err := g.Generate(context.Background(), testGoal(), fitness.Summary{})
	require.NoError(t, err)
	assert.Len(t, tp.Weeks, 12)

	require.Len(t, fake.prompts, 2)
	assert.NotContains(t, fake.prompts[0], "REJECTED")
	assert.Contains(t, fake.prompts[1], "REJECTED")
}

func TestGenerateInvalidPlanExhaustsBudget(t *testing.T) {
	// Final week never contains a race workout.
	noRace := validResponse(t, func(r *planResponse) {
		final := &r.Weeks[11]
		final.Workouts = final.Workouts[:2]
	})
	fake := &scriptedLLM{responses: []string{noRace}}
	g := newTestGenerator(fake, 1)

	_, err := g.Generate(context.Background(), testGoal(), fitness.Summary{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPlan)
	assert.Len(t, fake.prompts, 2, "one retry for a retry budget of 1")
}

func TestGenerateWrongWeekCountRejected(t *testing.T) {
	short := validResponse(t, func(r *planResponse) {
		r.Weeks = r.Weeks[:10]
		// keep the race in what is now the final week
		r.Weeks[9].Workouts = append(r.Weeks[9].Workouts, workoutResponse{
			Day: "Saturday", Type: "race", Name: "Race Day",
			Steps: []stepResponse{step("Race", "work", "13.1 mi", "goal")},
		})
	})
	fake := &scriptedLLM{responses: []string{short}}
	g := newTestGenerator(fake, 0)

	_, err := g.Generate(context.Background(), testGoal(), fitness.Summary{})
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestGenerateModelUnavailable(t *testing.T) {
	fake := &scriptedLLM{
		responses: []string{"", "", ""},
		errs:      []error{llm.ErrUnavailable, llm.ErrUnavailable, llm.ErrUnavailable},
	}
	g := newTestGenerator(fake, 2)

	_, err := g.Generate(context.Background(), testGoal(), fitness.Summary{})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Len(t, fake.prompts, 3)
}
