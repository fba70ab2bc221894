package coach

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/calebmartin/raceplan/internal/fitness"
	"github.com/calebmartin/raceplan/internal/llm"
	"github.com/calebmartin/raceplan/internal/plan"
)

// Generator produces training plans from a generative model.
type Generator struct {
	llm        llm.Client
	maxRetries int
	now        func() time.Time
	log        zerolog.Logger
}

// NewGenerator creates a Generator. maxRetries is the number of additional
// attempts after the first (a budget of 2 means up to 3 model calls).
func NewGenerator(client llm.Client, maxRetries int, log zerolog.Logger) *Generator {
	return &Generator{
		llm:        client,
		maxRetries: maxRetries,
		now:        time.Now,
		log:        log,
	}
}

// WithClock overrides the generator's clock. Used by tests and by callers
// that pin "now" for a whole run so validation and date assignment agree.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate asks the model for a plan and parses the answer. Malformed or
// invalid responses are retried with a stricter reminder appended to the
// prompt; transport failures are retried as-is. The last error is surfaced
// once the budget is spent.
func (g *Generator) Generate(ctx context.Context, goal plan.Goal, summary fitness.Summary) (*plan.TrainingPlan, error) {
	now := g.now()
	user := BuildUserPrompt(goal, summary, now)

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.log.Warn().Err(lastErr).Int("attempt", attempt+1).Msg("retrying plan generation")
			if errors.Is(lastErr, ErrMalformedResponse) || errors.Is(lastErr, ErrInvalidPlan) {
				user = BuildUserPrompt(goal, summary, now) + strictReminder(lastErr)
			}
		}

		text, err := g.llm.Generate(ctx, systemPrompt, user)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		tp, err := parsePlan(text, goal, now)
		if err != nil {
			lastErr = err
			continue
		}

		g.log.Info().Int("weeks", len(tp.Weeks)).Msg("plan generated")
		return tp, nil
	}

	return nil, lastErr
}
