package testutil

import (
	"context"

	"github.com/kbukum/nap/component"
)

// TestComponent extends component.Component with a Reset method so a
// fixture can be shared between test cases.
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error
}
