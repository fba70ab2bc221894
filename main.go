package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/calebmartin/raceplan/cache"
	"github.com/calebmartin/raceplan/garmin"
	"github.com/calebmartin/raceplan/internal/calendar"
	"github.com/calebmartin/raceplan/internal/cli"
	"github.com/calebmartin/raceplan/internal/coach"
	"github.com/calebmartin/raceplan/internal/config"
	"github.com/calebmartin/raceplan/internal/fitness"
	"github.com/calebmartin/raceplan/internal/llm"
	"github.com/calebmartin/raceplan/internal/plan"
)

const version = "0.1.0"

const cacheTTL = 15 * time.Minute

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	dryRun bool
	days   int
}

func runCLI(args []string) error {
	opts := options{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "help", "--help", "-h":
			printUsage()
			return nil
		case "version", "--version", "-v":
			fmt.Println("raceplan v" + version)
			return nil
		case "--dry-run", "-n":
			opts.dryRun = true
		case "--days":
			i++
			if i >= len(args) {
				return fmt.Errorf("--days requires a number")
			}
			days, err := strconv.Atoi(args[i])
			if err != nil || days < 1 {
				return fmt.Errorf("invalid --days value %q", args[i])
			}
			opts.days = days
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}
	return run(opts)
}

func printUsage() {
	fmt.Println("Usage: raceplan [options]")
	fmt.Println()
	fmt.Println("Generates a personalized training plan from your recent running")
	fmt.Println("history and schedules it on your Garmin calendar.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --dry-run, -n       Print the plan without touching the calendar")
	fmt.Println("  --days N            History window in days (default 90)")
	fmt.Println("  --help, -h          Show this help message")
	fmt.Println("  --version, -v       Show version")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GARMIN_EMAIL        Garmin Connect account email (required)")
	fmt.Println("  GARMIN_PASSWORD     Garmin Connect account password (required)")
	fmt.Println("  OPENAI_API_KEY      OpenAI API key (required)")
	fmt.Println("  RACEPLAN_MODEL      Model name (default gpt-4o)")
	fmt.Println("  RACEPLAN_LOG_LEVEL  Log level (default info)")
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.days > 0 {
		cfg.HistoryDays = opts.days
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("run_id", uuid.NewString()).Logger()

	ctx := context.Background()
	now := time.Now()

	client, err := newGarminClient(cfg, logger)
	if err != nil {
		return err
	}

	if err := cli.Spin(ctx, "Signing in...", func() error {
		return client.Authenticate(ctx)
	}); err != nil {
		if errors.Is(err, garmin.ErrUnauthorized) {
			return fmt.Errorf("garmin sign-in rejected, check GARMIN_EMAIL and GARMIN_PASSWORD: %w", err)
		}
		return err
	}

	var runs []fitness.ActivitySummary
	if err := cli.Spin(ctx, "Fetching activity history...", func() error {
		var ferr error
		runs, ferr = client.RunningHistory(ctx, cfg.HistoryDays)
		return ferr
	}); err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}
	summary := fitness.Summarize(runs)
	fmt.Print(cli.RenderFitness(summary))
	fmt.Println()

	goal, err := cli.PromptGoal(now)
	if err != nil {
		return err
	}

	gen := coach.NewGenerator(
		llm.New(cfg.Model.APIKey, cfg.Model.Name, cfg.HTTPTimeout, logger),
		cfg.Model.MaxRetries,
		logger,
	).WithClock(func() time.Time { return now })

	var tp *plan.TrainingPlan
	if err := cli.Spin(ctx, "Building your training plan...", func() error {
		var gerr error
		tp, gerr = gen.Generate(ctx, goal, summary)
		return gerr
	}); err != nil {
		return fmt.Errorf("generating plan: %w", err)
	}

	scheduled, err := plan.AssignDates(goal, tp, now)
	if err != nil {
		return fmt.Errorf("assigning dates: %w", err)
	}

	// Map everything up front so an unmappable plan fails before any
	// calendar write.
	items, err := calendar.BuildItems(scheduled, goal)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderPlan(scheduled))
	fmt.Println()

	if opts.dryRun {
		logger.Info().Int("workouts", len(items)).Msg("dry run, skipping calendar sync")
		return nil
	}

	sched := calendar.NewScheduler(client, logger)
	var res *calendar.Result
	if err := cli.Spin(ctx, "Syncing calendar...", func() error {
		var serr error
		res, serr = sched.Sync(ctx, items)
		return serr
	}); err != nil {
		return fmt.Errorf("syncing calendar: %w", err)
	}

	fmt.Print(cli.RenderSyncResult(res))
	// Partial failures are reported above but do not fail the run; the next
	// run retries only what is missing.
	return nil
}

func newGarminClient(cfg *config.Config, logger zerolog.Logger) (*garmin.Client, error) {
	opts := []garmin.Option{
		garmin.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		garmin.WithLogger(logger),
		garmin.WithNoCache(cfg.NoCache),
	}
	if home, err := os.UserHomeDir(); err == nil {
		if fc, err := cache.NewFileCache(filepath.Join(home, ".raceplan", "cache")); err == nil {
			opts = append(opts, garmin.WithCache(fc, cacheTTL))
		} else {
			logger.Warn().Err(err).Msg("response cache disabled")
		}
	}
	return garmin.New(cfg.Garmin.Email, cfg.Garmin.Password, opts...)
}
