package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/calebmartin/raceplan/internal/calendar"
	"github.com/calebmartin/raceplan/internal/fitness"
	"github.com/calebmartin/raceplan/internal/plan"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleGood   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	styleBad    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	styleBold   = lipgloss.NewStyle().Bold(true)
)

func header(text string) string {
	upper := strings.ToUpper(text)
	return styleHeader.Render(upper) + "\n" + styleDim.Render(strings.Repeat("─", len(upper)))
}

// RenderFitness formats the athlete's recent training snapshot.
func RenderFitness(s fitness.Summary) string {
	var b strings.Builder
	b.WriteString(header("Recent training") + "\n")

	if !s.HasData {
		b.WriteString(styleDim.Render("No recent runs found. The plan will assume a conservative base.") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s %d runs, %.1f km total (avg %.1f km)\n",
		styleBold.Render("Volume:"), s.TotalRuns, s.TotalKM, s.AvgKM)
	fmt.Fprintf(&b, "%s %s\n", styleBold.Render("Avg pace:"), s.AvgPaceLabel)
	if s.AvgHeartRate > 0 {
		fmt.Fprintf(&b, "%s %d bpm\n", styleBold.Render("Avg HR:"), s.AvgHeartRate)
	}
	if len(s.WeeklyKM) > 0 {
		parts := make([]string, len(s.WeeklyKM))
		for i, km := range s.WeeklyKM {
			parts[i] = fmt.Sprintf("%.0f", km)
		}
		fmt.Fprintf(&b, "%s %s km\n", styleBold.Render("Weekly:"), strings.Join(parts, " / "))
	}
	return b.String()
}

// RenderPlan formats the dated plan as a per-week table.
func RenderPlan(scheduled []plan.ScheduledWorkout) string {
	var b strings.Builder
	b.WriteString(header("Training plan") + "\n")

	week := 0
	for _, sw := range scheduled {
		if sw.Week != week {
			week = sw.Week
			fmt.Fprintf(&b, "%s\n", styleBold.Render(fmt.Sprintf("Week %d", week)))
		}
		label := workoutStyle(sw.Workout.Type).Render(string(sw.Workout.Type))
		fmt.Fprintf(&b, "  %s  %-9s %s\n",
			styleDim.Render(sw.Date.Format("Mon 2006-01-02")), label, sw.Workout.Name)
	}
	return b.String()
}

func workoutStyle(t plan.WorkoutType) lipgloss.Style {
	switch t {
	case plan.Interval, plan.RaceDay:
		return styleBad
	case plan.Tempo:
		return styleWarn
	case plan.LongRun:
		return styleGood
	default:
		return styleDim
	}
}

// RenderSyncResult formats the calendar sync outcome, listing every workout
// that could not be scheduled.
func RenderSyncResult(res *calendar.Result) string {
	var b strings.Builder
	b.WriteString(header("Calendar sync") + "\n")
	fmt.Fprintf(&b, "%s %d created, %d updated, %d already scheduled\n",
		styleGood.Render("✓"), res.Created, res.Updated, res.Skipped)

	if len(res.Failures) > 0 {
		fmt.Fprintf(&b, "%s %d workouts failed:\n", styleBad.Render("✗"), len(res.Failures))
		for _, f := range res.Failures {
			fmt.Fprintf(&b, "  %s\n", styleBad.Render(f.String()))
		}
		b.WriteString(styleDim.Render("Re-run to retry the failed workouts; scheduled ones are skipped.") + "\n")
	}
	return b.String()
}
