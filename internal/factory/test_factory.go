package factory

import (
	"time"

	"github.com/waymarkd/waymark/internal/dependencies/mocks"
	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/services/registry"
	"github.com/waymarkd/waymark/internal/storage/memory"
	"github.com/waymarkd/waymark/internal/testutil"
)

// TestOwnerCode is the owner session code wired by NewTestApp
const TestOwnerCode model.SessionCode = "owner-code"

// TestAdminCode is the shared admin secret wired by NewTestApp
const TestAdminCode = "hunter2"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	registryCfg := registry.Config{
		OwnerCode: TestOwnerCode,
		AdminCode: TestAdminCode,
	}

	app := newWithDependencies(store, mockClock, registryCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
