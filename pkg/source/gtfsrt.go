package source

import (
	"io"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/ftdf"
	"google.golang.org/protobuf/proto"
)

// GTFSRealtime decodes a recorded GTFS-RT FeedMessage snapshot. Each
// VehiclePosition entity becomes a location update event; other entity types
// carry no vehicle telemetry and are ignored.
type GTFSRealtime struct {
	body []byte
}

func (g *GTFSRealtime) ParseFile(reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	g.body = body

	return nil
}

func (g *GTFSRealtime) TripEvents(datasource *ftdf.DataSource) ([]ftdf.TripEvent, error) {
	feed := gtfs.FeedMessage{}
	if err := proto.Unmarshal(g.body, &feed); err != nil {
		return nil, err
	}

	var events []ftdf.TripEvent

	for _, entity := range feed.Entity {
		vehiclePosition := entity.GetVehicle()
		if vehiclePosition == nil {
			continue
		}

		if vehiclePosition.Timestamp == nil {
			log.Warn().Str("entity", entity.GetId()).Msg("Skipping vehicle position without a timestamp")
			continue
		}
		recordedAtTime := time.Unix(int64(*vehiclePosition.Timestamp), 0).UTC()

		position := vehiclePosition.GetPosition()
		if position == nil {
			log.Warn().Str("entity", entity.GetId()).Msg("Skipping vehicle position without coordinates")
			continue
		}

		event := ftdf.TripEvent{
			Kind:       ftdf.EventKindLocationUpdate,
			Timestamp:  recordedAtTime,
			TripRef:    vehiclePosition.GetTrip().GetTripId(),
			VehicleRef: vehiclePosition.GetVehicle().GetId(),
			DataSource: datasource,
			VehicleLocation: &ftdf.Location{
				Type:        "Point",
				Coordinates: []float64{float64(position.GetLongitude()), float64(position.GetLatitude())},
			},
			VehicleBearing: float64(position.GetBearing()),
		}

		if event.VehicleRef == "" {
			event.VehicleRef = vehiclePosition.GetVehicle().GetLabel()
		}

		events = append(events, event)
	}

	return events, nil
}
