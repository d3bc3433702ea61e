package ftdf

import "time"

type EventKind string

const (
	EventKindLocationUpdate EventKind = "LocationUpdate"

	EventKindTripCompleted = "TripCompleted"
	EventKindTripCancelled = "TripCancelled"
)

// TripEvent is a single recorded telemetry record. Events are never mutated
// after ingestion.
type TripEvent struct {
	Kind      EventKind `groups:"basic"`
	Timestamp time.Time `groups:"basic"`

	TripRef    string `groups:"basic"`
	VehicleRef string `groups:"basic"`

	DataSource *DataSource `groups:"internal"`

	VehicleLocation *Location `groups:"basic"`
	VehicleBearing  float64   `groups:"detailed"`

	Annotations map[string]string `groups:"detailed"`
}
