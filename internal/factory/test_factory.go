package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/soltomm/PinoGPT/internal/dependencies/mocks"
	"github.com/soltomm/PinoGPT/internal/services/auth"
	"github.com/soltomm/PinoGPT/internal/storage/memory"
)

// TestAdminSecret is the admin credential wired into test apps
const TestAdminSecret = "test-admin-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock controls game IDs and timestamps
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock,
// in-memory storage, and a known admin secret
func NewTestApp() (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC))

	authService, err := auth.New(auth.Config{AdminSecret: TestAdminSecret})
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := newWithDependencies(store, mockClock, authService, 0, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}, nil
}
