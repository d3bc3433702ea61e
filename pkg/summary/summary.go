// Package summary folds delivered trip events into per-vehicle fleet
// summaries. Updates are incremental - running counts and a latest-pointer
// per vehicle - so cost stays constant per event over a long replay.
package summary

import (
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/ftdf"
	"golang.org/x/exp/slices"
)

type VehicleSummary struct {
	VehicleRef string `groups:"basic"`

	ActiveTripRef string    `groups:"basic"`
	LastSeen      time.Time `groups:"basic"`

	LastLocation *ftdf.Location `groups:"basic"`
	LastBearing  float64        `groups:"detailed"`

	PingCount      int     `groups:"basic"`
	OdometerMetres float64 `groups:"detailed"`

	TripsCompleted int `groups:"basic"`
	TripsCancelled int `groups:"basic"`
}

type FleetSummary struct {
	SimulatedTime time.Time `groups:"basic"`
	TotalEvents   int       `groups:"basic"`

	Vehicles []VehicleSummary `groups:"basic"`
}

// Tracker consumes the player's signals and maintains the fleet summaries.
// It implements player.Subscriber.
type Tracker struct {
	mutex sync.Mutex

	vehicles      map[string]*VehicleSummary
	totalEvents   int
	simulatedTime time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		vehicles: map[string]*VehicleSummary{},
	}
}

func (t *Tracker) OnTick(simulatedTime time.Time) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.simulatedTime = simulatedTime
}

func (t *Tracker) OnEvent(event ftdf.TripEvent) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.totalEvents += 1
	if event.Timestamp.After(t.simulatedTime) {
		t.simulatedTime = event.Timestamp
	}

	vehicle := t.vehicles[event.VehicleRef]
	if vehicle == nil {
		vehicle = &VehicleSummary{VehicleRef: event.VehicleRef}
		t.vehicles[event.VehicleRef] = vehicle
	}

	vehicle.LastSeen = event.Timestamp

	switch event.Kind {
	case ftdf.EventKindLocationUpdate:
		vehicle.PingCount += 1
		vehicle.ActiveTripRef = event.TripRef

		if event.VehicleLocation != nil {
			if vehicle.LastLocation != nil {
				vehicle.OdometerMetres += vehicle.LastLocation.DistanceFrom(event.VehicleLocation)
			}

			vehicle.LastLocation = event.VehicleLocation
			vehicle.LastBearing = event.VehicleBearing
		}
	case ftdf.EventKindTripCompleted:
		vehicle.TripsCompleted += 1
		vehicle.ActiveTripRef = ""
	case ftdf.EventKindTripCancelled:
		vehicle.TripsCancelled += 1
		vehicle.ActiveTripRef = ""
	default:
		log.Debug().Str("kind", string(event.Kind)).Msg("Ignoring unknown event kind")
	}
}

// Snapshot returns a deep copy of the current fleet summary, ordered by
// vehicle reference. Mutating the result does not affect the tracker.
func (t *Tracker) Snapshot() FleetSummary {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	fleetSummary := FleetSummary{
		SimulatedTime: t.simulatedTime,
		TotalEvents:   t.totalEvents,
	}

	for _, vehicle := range t.vehicles {
		var copied VehicleSummary
		if err := copier.CopyWithOption(&copied, *vehicle, copier.Option{DeepCopy: true}); err != nil {
			log.Error().Err(err).Str("vehicle", vehicle.VehicleRef).Msg("Failed to copy vehicle summary")
			continue
		}

		fleetSummary.Vehicles = append(fleetSummary.Vehicles, copied)
	}

	slices.SortFunc(fleetSummary.Vehicles, func(a VehicleSummary, b VehicleSummary) int {
		if a.VehicleRef < b.VehicleRef {
			return -1
		} else if a.VehicleRef > b.VehicleRef {
			return 1
		}
		return 0
	})

	return fleetSummary
}

// Reset clears all summaries, for reuse after rewinding a replay.
func (t *Tracker) Reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.vehicles = map[string]*VehicleSummary{}
	t.totalEvents = 0
	t.simulatedTime = time.Time{}
}
