package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tripscope/tripscope/pkg/ftdf"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func locationEvent(offset time.Duration, vehicleRef string, tripRef string, lon float64, lat float64) ftdf.TripEvent {
	return ftdf.TripEvent{
		Kind:       ftdf.EventKindLocationUpdate,
		Timestamp:  base.Add(offset),
		VehicleRef: vehicleRef,
		TripRef:    tripRef,
		VehicleLocation: &ftdf.Location{
			Type:        "Point",
			Coordinates: []float64{lon, lat},
		},
	}
}

func TestTrackerFoldsLocationUpdates(t *testing.T) {
	tracker := NewTracker()

	tracker.OnEvent(locationEvent(0, "bus-1", "trip-9", -0.1276, 51.5072))
	tracker.OnEvent(locationEvent(30*time.Second, "bus-1", "trip-9", -0.1278, 51.5074))
	tracker.OnEvent(locationEvent(10*time.Second, "bus-2", "trip-4", -2.5879, 51.4545))

	fleet := tracker.Snapshot()

	assert.Equal(t, 3, fleet.TotalEvents)
	assert.Len(t, fleet.Vehicles, 2)

	bus1 := fleet.Vehicles[0]
	assert.Equal(t, "bus-1", bus1.VehicleRef)
	assert.Equal(t, 2, bus1.PingCount)
	assert.Equal(t, "trip-9", bus1.ActiveTripRef)
	assert.Equal(t, base.Add(30*time.Second), bus1.LastSeen)
	// Two pings ~25m apart in central London.
	assert.Greater(t, bus1.OdometerMetres, 10.0)
	assert.Less(t, bus1.OdometerMetres, 100.0)

	bus2 := fleet.Vehicles[1]
	assert.Equal(t, 1, bus2.PingCount)
	assert.Equal(t, float64(0), bus2.OdometerMetres)
}

func TestTrackerTripLifecycle(t *testing.T) {
	tracker := NewTracker()

	tracker.OnEvent(locationEvent(0, "bus-1", "trip-9", -0.1276, 51.5072))
	tracker.OnEvent(ftdf.TripEvent{
		Kind:       ftdf.EventKindTripCompleted,
		Timestamp:  base.Add(time.Minute),
		VehicleRef: "bus-1",
		TripRef:    "trip-9",
	})
	tracker.OnEvent(ftdf.TripEvent{
		Kind:       ftdf.EventKindTripCancelled,
		Timestamp:  base.Add(2 * time.Minute),
		VehicleRef: "bus-1",
		TripRef:    "trip-10",
	})

	fleet := tracker.Snapshot()
	bus1 := fleet.Vehicles[0]

	assert.Equal(t, 1, bus1.TripsCompleted)
	assert.Equal(t, 1, bus1.TripsCancelled)
	assert.Equal(t, "", bus1.ActiveTripRef)
}

func TestTrackerRecordsTickTime(t *testing.T) {
	tracker := NewTracker()

	tracker.OnTick(base.Add(42 * time.Second))

	assert.Equal(t, base.Add(42*time.Second), tracker.Snapshot().SimulatedTime)
}

func TestSnapshotIsIsolated(t *testing.T) {
	tracker := NewTracker()
	tracker.OnEvent(locationEvent(0, "bus-1", "trip-9", -0.1276, 51.5072))

	fleet := tracker.Snapshot()
	fleet.Vehicles[0].PingCount = 999
	fleet.Vehicles[0].LastLocation.Coordinates[0] = 12.34

	fresh := tracker.Snapshot()
	assert.Equal(t, 1, fresh.Vehicles[0].PingCount)
	assert.Equal(t, -0.1276, fresh.Vehicles[0].LastLocation.Coordinates[0])
}

func TestReset(t *testing.T) {
	tracker := NewTracker()
	tracker.OnEvent(locationEvent(0, "bus-1", "trip-9", -0.1276, 51.5072))

	tracker.Reset()

	fleet := tracker.Snapshot()
	assert.Equal(t, 0, fleet.TotalEvents)
	assert.Empty(t, fleet.Vehicles)
}
