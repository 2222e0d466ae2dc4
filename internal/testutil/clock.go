package testutil

import (
	"time"

	"github.com/light-bringer/procat-orm/internal/pkg/clock"
)

// Epoch is the start time of test clocks.
var Epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}

// NewSteppingClock creates a clock starting at Epoch that moves one
// millisecond forward on every reading, so each write gets a later timestamp.
func NewSteppingClock() *clock.MockClock {
	return clock.NewSteppingClock(Epoch, time.Millisecond)
}
