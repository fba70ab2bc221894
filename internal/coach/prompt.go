// Package coach turns a race goal plus recent fitness into a validated
// periodized training plan by prompting a generative model and parsing its
// JSON response.
package coach

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/calebmartin/raceplan/internal/fitness"
	"github.com/calebmartin/raceplan/internal/plan"
)

const systemPrompt = `You are an elite running coach creating a training plan for an experienced, competitive runner. You follow Daniels/Pfitzinger/Hudson periodization and always answer with valid JSON matching the requested schema exactly.`

// BuildUserPrompt assembles the generation prompt from the runner's goal and
// condensed history.
func BuildUserPrompt(goal plan.Goal, summary fitness.Summary, now time.Time) string {
	athlete, _ := json.MarshalIndent(summary, "", "  ")
	weeks := plan.WeeksUntil(now, goal.RaceDate)

	var b strings.Builder
	fmt.Fprintf(&b, "ATHLETE DATA:\n%s\n\n", athlete)

	fmt.Fprintf(&b, "RACE GOAL:\n")
	fmt.Fprintf(&b, "- Distance: %s (%.0f m)\n", goal.Distance, goal.DistanceMeters())
	fmt.Fprintf(&b, "- Goal pace: %s (%s)\n", goal.GoalPace.MileString(), goal.GoalPace)
	fmt.Fprintf(&b, "- Race date: %s (a %s)\n", goal.RaceDate.Format("2006-01-02"), goal.RaceDate.Weekday())
	fmt.Fprintf(&b, "- Today: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Weeks until race: %d\n\n", weeks)

	fmt.Fprintf(&b, "SCHEDULE PREFERENCES:\n")
	fmt.Fprintf(&b, "- Long runs on %s\n", goal.LongRunDay)
	fmt.Fprintf(&b, "- Space hard workouts with easy days between them\n")
	fmt.Fprintf(&b, "- 4-5 quality workouts per week, at least one rest day\n\n")

	fmt.Fprintf(&b, "PACE ZONES (relative to goal pace %s):\n", goal.GoalPace.MileString())
	fmt.Fprintf(&b, "- Easy: %s-%s (60-90 sec/mi slower)\n",
		goal.GoalPace.AddPerMile(60*time.Second).MileString(),
		goal.GoalPace.AddPerMile(90*time.Second).MileString())
	fmt.Fprintf(&b, "- Tempo: %s-%s (15-20 sec/mi slower)\n",
		goal.GoalPace.AddPerMile(15*time.Second).MileString(),
		goal.GoalPace.AddPerMile(20*time.Second).MileString())
	fmt.Fprintf(&b, "- VO2max: %s-%s (20-30 sec/mi faster)\n",
		goal.GoalPace.AddPerMile(-30*time.Second).MileString(),
		goal.GoalPace.AddPerMile(-20*time.Second).MileString())
	fmt.Fprintf(&b, "- Speed: %s-%s (45-60 sec/mi faster)\n\n",
		goal.GoalPace.AddPerMile(-60*time.Second).MileString(),
		goal.GoalPace.AddPerMile(-45*time.Second).MileString())

	fmt.Fprintf(&b, "PLAN STRUCTURE:\n")
	fmt.Fprintf(&b, "- Exactly %d weeks, numbered 1..%d\n", weeks, weeks)
	fmt.Fprintf(&b, "- Every week has at least one workout and the final week has exactly one \"race\" workout on %s, the race day\n", goal.RaceDate.Weekday())
	fmt.Fprintf(&b, "- The race workout is ONE step at goal pace over the race distance. No warmup or cooldown steps.\n")
	fmt.Fprintf(&b, "- Proper taper in the final 10-14 days\n")
	fmt.Fprintf(&b, "- Each step is ONE interval. For repeats emit separate steps (\"800m Repeat 1\", \"Recovery 1\", ...), never \"4x800m\"\n\n")

	b.WriteString(outputContract)
	return b.String()
}

const outputContract = `OUTPUT FORMAT - return ONLY this JSON object, no prose:
{
  "weeks": [
    {
      "week": 1,
      "workouts": [
        {
          "day": "Tuesday",
          "type": "interval",
          "name": "Week 1 - VO2max Intervals",
          "description": "Short description",
          "steps": [
            {"name": "Warm Up", "kind": "warmup", "duration": "2 mi", "target": "easy"},
            {"name": "800m Repeat 1", "kind": "work", "duration": "800m", "target": "goal-25s"},
            {"name": "Recovery 1", "kind": "recovery", "duration": "400m", "target": "easy"},
            {"name": "Cool Down", "kind": "cooldown", "duration": "1 mi", "target": "easy"}
          ]
        }
      ]
    }
  ]
}

FIELD RULES:
- "day": full weekday name
- "type": one of "easy", "tempo", "interval", "long", "rest", "race"
- "kind": one of "warmup", "work", "recovery", "cooldown"
- "duration": a distance ("800m", "1 km", "2 mi") or a time ("10:00", "1:30" as MM:SS). Never "3 min".
- "target": an absolute pace ("7:30/mi", "5:10/km"), a goal-relative pace ("goal", "goal+75s", "goal-20s", seconds per mile), a heart-rate zone ("zone 2"), or "easy" for no target
- "rest" workouts carry no steps`

// strictReminder is appended to the prompt before a retry after a parse or
// validation failure.
func strictReminder(reason error) string {
	return fmt.Sprintf("\n\nYOUR PREVIOUS ANSWER WAS REJECTED: %v.\n"+
		"Return ONLY the JSON object described above. Every field rule is mandatory. "+
		"Double-check the week count and the single race workout in the final week before answering.", reason)
}
