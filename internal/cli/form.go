// Package cli implements the interactive surface: the goal form, progress
// spinners, and styled terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/calebmartin/raceplan/internal/plan"
)

const dateLayout = "2006-01-02"

// PromptGoal runs the interactive form and returns the completed race goal.
func PromptGoal(now time.Time) (plan.Goal, error) {
	var (
		distance     = plan.Race10K
		customMeters string
		paceInput    string
		dateInput    string
		longRunDay   = time.Saturday
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[plan.RaceDistance]().
				Title("Race distance").
				Options(
					huh.NewOption("5K", plan.Race5K),
					huh.NewOption("10K", plan.Race10K),
					huh.NewOption("Half marathon", plan.RaceHalf),
					huh.NewOption("Marathon", plan.RaceMarathon),
					huh.NewOption("Custom", plan.RaceCustom),
				).
				Value(&distance),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Race distance in meters").
				Placeholder("25000").
				Value(&customMeters).
				Validate(validateCustomMeters),
		).WithHideFunc(func() bool { return distance != plan.RaceCustom }),
		huh.NewGroup(
			huh.NewInput().
				Title("Goal pace").
				Description("M:SS/km or M:SS/mi").
				Placeholder("5:00/km").
				Value(&paceInput).
				Validate(validatePace),
			huh.NewInput().
				Title("Race date").
				Placeholder(now.AddDate(0, 3, 0).Format(dateLayout)).
				Value(&dateInput).
				Validate(validateRaceDate(now)),
			huh.NewSelect[time.Weekday]().
				Title("Long run day").
				Options(
					huh.NewOption("Saturday", time.Saturday),
					huh.NewOption("Sunday", time.Sunday),
					huh.NewOption("Monday", time.Monday),
					huh.NewOption("Tuesday", time.Tuesday),
					huh.NewOption("Wednesday", time.Wednesday),
					huh.NewOption("Thursday", time.Thursday),
					huh.NewOption("Friday", time.Friday),
				).
				Value(&longRunDay),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return plan.Goal{}, err
	}

	goal := plan.Goal{
		Distance:   distance,
		RaceDate:   mustParseDate(dateInput),
		LongRunDay: longRunDay,
	}
	goal.GoalPace, _ = plan.ParsePace(paceInput)
	if distance == plan.RaceCustom {
		meters, _ := strconv.Atoi(strings.TrimSpace(customMeters))
		goal.CustomMeters = float64(meters)
	}
	return goal, nil
}

func validatePace(s string) error {
	if _, err := plan.ParsePace(s); err != nil {
		return err
	}
	return nil
}

// validateRaceDate requires a YYYY-MM-DD date at least one full week out, so
// the plan has at least one week to work with.
func validateRaceDate(now time.Time) func(string) error {
	return func(s string) error {
		d, err := time.Parse(dateLayout, strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("use YYYY-MM-DD")
		}
		if plan.WeeksUntil(now, d) < 1 {
			return fmt.Errorf("race date must be at least a week away")
		}
		return nil
	}
}

func validateCustomMeters(s string) error {
	meters, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of meters")
	}
	if meters < 1000 || meters > 500000 {
		return fmt.Errorf("distance must be between 1000 and 500000 meters")
	}
	return nil
}

// mustParseDate is only called on input the form already validated.
func mustParseDate(s string) time.Time {
	d, _ := time.Parse(dateLayout, strings.TrimSpace(s))
	return d
}
