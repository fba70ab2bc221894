package coach

import "errors"

var (
	// ErrMalformedResponse indicates the model output could not be parsed
	// into the expected plan schema.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrInvalidPlan indicates the parsed plan violates a structural
	// invariant (week span, race placement, empty workouts or steps).
	ErrInvalidPlan = errors.New("invalid training plan")
)
