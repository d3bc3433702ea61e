package player

import (
	"time"

	"github.com/tripscope/tripscope/pkg/ftdf"
)

// Subscriber receives the player's two output signals. Callbacks run on the
// player's tick goroutine (or, for stepping, on the caller's goroutine) with
// the player's internal lock held, so they must not call back into the
// player.
type Subscriber interface {
	// OnTick fires on every periodic cadence while running, whether or not
	// any event was due.
	OnTick(simulatedTime time.Time)

	// OnEvent fires once per event at the moment it becomes due, in
	// timestamp order.
	OnEvent(event ftdf.TripEvent)
}

// SubscriberFuncs adapts plain functions into a Subscriber. Nil funcs are
// skipped.
type SubscriberFuncs struct {
	Tick  func(simulatedTime time.Time)
	Event func(event ftdf.TripEvent)
}

func (s SubscriberFuncs) OnTick(simulatedTime time.Time) {
	if s.Tick != nil {
		s.Tick(simulatedTime)
	}
}

func (s SubscriberFuncs) OnEvent(event ftdf.TripEvent) {
	if s.Event != nil {
		s.Event(event)
	}
}
