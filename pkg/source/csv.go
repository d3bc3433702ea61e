package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/paulcager/osgridref"
	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/ftdf"
	"github.com/tripscope/tripscope/pkg/util"
)

// TripCSV decodes recorded trip logs in the flat CSV capture format. One row
// per telemetry record; coordinates are either lon/lat or OS grid
// easting/northing.
type TripCSV struct {
	rows []tripCSVRow
}

type tripCSVRow struct {
	Timestamp string `csv:"timestamp"`
	EventType string `csv:"event_type"`

	TripRef    string `csv:"trip_ref"`
	VehicleRef string `csv:"vehicle_ref"`

	Longitude string `csv:"longitude"`
	Latitude  string `csv:"latitude"`
	Easting   string `csv:"easting"`
	Northing  string `csv:"northing"`

	Bearing string `csv:"bearing"`
	Reason  string `csv:"reason"`
}

func init() {
	// Allow us to ignore those naughty records that have missing columns.
	// Registered once here as snapshot directories decode on multiple
	// goroutines and the gocsv reader hook is package state.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})
}

func (t *TripCSV) ParseFile(reader io.Reader) error {
	if err := gocsv.Unmarshal(reader, &t.rows); err != nil {
		return err
	}

	total := len(t.rows)
	util.InPlaceFilter(&t.rows, func(row tripCSVRow) bool {
		return row.Timestamp != ""
	})

	if dropped := total - len(t.rows); dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("Dropped records without a timestamp")
	}

	return nil
}

func (t *TripCSV) TripEvents(datasource *ftdf.DataSource) ([]ftdf.TripEvent, error) {
	var events []ftdf.TripEvent

	for index, row := range t.rows {
		timestamp, err := parseRecordedTimestamp(row.Timestamp)
		if err != nil {
			log.Warn().
				Err(err).
				Int("row", index).
				Str("timestamp", row.Timestamp).
				Msg("Skipping record with unparseable timestamp")
			continue
		}

		kind, ok := eventKindForType(row.EventType)
		if !ok {
			log.Warn().Int("row", index).Str("event_type", row.EventType).Msg("Skipping record with unknown event type")
			continue
		}

		event := ftdf.TripEvent{
			Kind:       kind,
			Timestamp:  timestamp,
			TripRef:    row.TripRef,
			VehicleRef: row.VehicleRef,
			DataSource: datasource,
		}

		if kind == ftdf.EventKindLocationUpdate {
			event.VehicleLocation = rowLocation(row)
			event.VehicleBearing, _ = strconv.ParseFloat(row.Bearing, 64)
		}

		if row.Reason != "" {
			event.Annotations = map[string]string{
				"Reason": row.Reason,
			}
		}

		events = append(events, event)
	}

	return events, nil
}

func rowLocation(row tripCSVRow) *ftdf.Location {
	longitude, lonErr := strconv.ParseFloat(row.Longitude, 64)
	latitude, latErr := strconv.ParseFloat(row.Latitude, 64)

	if lonErr != nil || latErr != nil {
		if row.Easting == "" || row.Northing == "" {
			return nil
		}

		gridRef, err := osgridref.ParseOsGridRef(fmt.Sprintf("%s,%s", row.Easting, row.Northing))
		if err != nil {
			return nil
		}

		latitude, longitude = gridRef.ToLatLon()
	}

	return &ftdf.Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func eventKindForType(eventType string) (ftdf.EventKind, bool) {
	switch eventType {
	case "location", "ping":
		return ftdf.EventKindLocationUpdate, true
	case "completed":
		return ftdf.EventKindTripCompleted, true
	case "cancelled":
		return ftdf.EventKindTripCancelled, true
	}

	return "", false
}

func parseRecordedTimestamp(value string) (time.Time, error) {
	if timestamp, err := time.Parse(time.RFC3339, value); err == nil {
		return timestamp, nil
	}

	if unixSeconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(unixSeconds, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
