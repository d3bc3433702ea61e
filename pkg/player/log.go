package player

import (
	"sort"
	"time"

	"github.com/tripscope/tripscope/pkg/ftdf"
	"golang.org/x/exp/slices"
)

// EventLog is a closed, timestamp-ordered sequence of trip events. The set
// of events is fixed at construction - nothing is appended during playback.
type EventLog struct {
	events []ftdf.TripEvent
}

// NewEventLog copies & defensively sorts the given events ascending by
// timestamp. The sort is stable so records sharing a timestamp keep their
// original input order.
func NewEventLog(events []ftdf.TripEvent) *EventLog {
	sorted := slices.Clone(events)

	slices.SortStableFunc(sorted, func(a ftdf.TripEvent, b ftdf.TripEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return &EventLog{events: sorted}
}

func (l *EventLog) Len() int {
	return len(l.events)
}

func (l *EventLog) Event(index int) ftdf.TripEvent {
	return l.events[index]
}

// StartTime returns the timestamp of the first event, or false for an empty
// log.
func (l *EventLog) StartTime() (time.Time, bool) {
	if len(l.events) == 0 {
		return time.Time{}, false
	}

	return l.events[0].Timestamp, true
}

// EndTime returns the timestamp of the last event, or false for an empty log.
func (l *EventLog) EndTime() (time.Time, bool) {
	if len(l.events) == 0 {
		return time.Time{}, false
	}

	return l.events[len(l.events)-1].Timestamp, true
}

// IndexAtOrAfter returns the index of the first event with a timestamp at or
// after the target, or Len() if there is none.
func (l *EventLog) IndexAtOrAfter(target time.Time) int {
	return sort.Search(len(l.events), func(i int) bool {
		return !l.events[i].Timestamp.Before(target)
	})
}

// IndexAfter returns the index of the first event with a timestamp strictly
// after the target, or Len() if there is none.
func (l *EventLog) IndexAfter(target time.Time) int {
	return sort.Search(len(l.events), func(i int) bool {
		return l.events[i].Timestamp.After(target)
	})
}
