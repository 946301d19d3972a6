package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog" //nolint:depguard // Test utilities need direct zerolog access

	"github.com/wizzomafizzo/provisioner/internal/logging"
)

// lockedBuilder lets the logger and the test read the same buffer safely.
type lockedBuilder struct {
	b  strings.Builder
	mu sync.Mutex
}

func (l *lockedBuilder) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p) //nolint:wrapcheck // strings.Builder never fails
}

func (l *lockedBuilder) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

// NewTestContext creates a context with a debug logger for race-safe testing
// Returns the context and a function to retrieve log output
func NewTestContext(t *testing.T) (ctx context.Context, getLogOutput func() string) {
	t.Helper()

	var logOutput lockedBuilder

	ctx, err := logging.New(context.Background(), nil, logging.Config{
		Writer: &logOutput,
		Level:  zerolog.DebugLevel,
	})
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return ctx, logOutput.String
}
