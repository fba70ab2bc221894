package cli

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// Spin runs fn behind a spinner with the given title. The fn error wins over
// spinner teardown errors.
func Spin(ctx context.Context, title string, fn func() error) error {
	var err error
	if serr := spinner.New().Title(title).Context(ctx).ActionWithErr(func(context.Context) error {
		err = fn()
		return nil
	}).Run(); serr != nil && err == nil {
		err = serr
	}
	return err
}
