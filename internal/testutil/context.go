package testutil

import (
	"context"
	"testing"
	"time"
)

// Context returns a context cancelled after d or when the test ends.
func Context(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)
	return ctx
}
