package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tripscope/tripscope/pkg/ftdf"
)

func TestNewEventLogSortsByTimestamp(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	eventLog := NewEventLog([]ftdf.TripEvent{
		{Kind: ftdf.EventKindLocationUpdate, Timestamp: base.Add(10 * time.Second), VehicleRef: "bus-2"},
		{Kind: ftdf.EventKindLocationUpdate, Timestamp: base, VehicleRef: "bus-1"},
		{Kind: ftdf.EventKindTripCompleted, Timestamp: base.Add(4 * time.Second), VehicleRef: "bus-1"},
	})

	assert.Equal(t, 3, eventLog.Len())
	assert.Equal(t, "bus-1", eventLog.Event(0).VehicleRef)
	assert.Equal(t, ftdf.EventKind(ftdf.EventKindTripCompleted), eventLog.Event(1).Kind)
	assert.Equal(t, "bus-2", eventLog.Event(2).VehicleRef)
}

func TestNewEventLogStableOnEqualTimestamps(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	eventLog := NewEventLog([]ftdf.TripEvent{
		{Timestamp: base, VehicleRef: "first"},
		{Timestamp: base, VehicleRef: "second"},
		{Timestamp: base, VehicleRef: "third"},
	})

	assert.Equal(t, "first", eventLog.Event(0).VehicleRef)
	assert.Equal(t, "second", eventLog.Event(1).VehicleRef)
	assert.Equal(t, "third", eventLog.Event(2).VehicleRef)
}

func TestEventLogIndexLookups(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	eventLog := NewEventLog([]ftdf.TripEvent{
		{Timestamp: base},
		{Timestamp: base.Add(4 * time.Second)},
		{Timestamp: base.Add(10 * time.Second)},
	})

	assert.Equal(t, 0, eventLog.IndexAtOrAfter(base.Add(-time.Hour)))
	assert.Equal(t, 1, eventLog.IndexAtOrAfter(base.Add(4*time.Second)))
	assert.Equal(t, 2, eventLog.IndexAtOrAfter(base.Add(5*time.Second)))
	assert.Equal(t, 3, eventLog.IndexAtOrAfter(base.Add(time.Hour)))

	assert.Equal(t, 1, eventLog.IndexAfter(base))
	assert.Equal(t, 2, eventLog.IndexAfter(base.Add(4*time.Second)))
	assert.Equal(t, 3, eventLog.IndexAfter(base.Add(10*time.Second)))
}

func TestEventLogStartEndTime(t *testing.T) {
	empty := NewEventLog(nil)

	_, ok := empty.StartTime()
	assert.False(t, ok)
	_, ok = empty.EndTime()
	assert.False(t, ok)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	eventLog := NewEventLog([]ftdf.TripEvent{
		{Timestamp: base.Add(10 * time.Second)},
		{Timestamp: base},
	})

	startTime, ok := eventLog.StartTime()
	assert.True(t, ok)
	assert.Equal(t, base, startTime)

	endTime, ok := eventLog.EndTime()
	assert.True(t, ok)
	assert.Equal(t, base.Add(10*time.Second), endTime)
}
