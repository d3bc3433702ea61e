package source

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatasetFromFile(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "monday.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTripCSV), 0o644))

	events, err := LoadDataset(DataSet{
		Identifier: "acmefleet-monday",
		Format:     DataSetFormatTripCSV,
		Source:     path,
		Provider:   Provider{Name: "Acme Fleet"},
	})
	require.NoError(t, err)

	assert.Len(t, events, 4)
	assert.Equal(t, "Acme Fleet", events[0].DataSource.Provider)
	assert.Equal(t, "acmefleet-monday", events[0].DataSource.DatasetID)
}

func TestLoadDatasetFromSnapshotDirectory(t *testing.T) {
	directory := t.TempDir()

	first := "timestamp,event_type,trip_ref,vehicle_ref\n" +
		"2024-05-01T09:00:00Z,ping,trip-1,bus-1\n"
	second := "timestamp,event_type,trip_ref,vehicle_ref\n" +
		"2024-05-01T09:01:00Z,ping,trip-1,bus-1\n" +
		"2024-05-01T09:02:00Z,completed,trip-1,bus-1\n"

	require.NoError(t, os.WriteFile(filepath.Join(directory, "0900.csv"), []byte(first), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(directory, "0901.csv"), []byte(second), 0o644))

	events, err := LoadDataset(DataSet{
		Identifier: "acmefleet-tuesday",
		Format:     DataSetFormatTripCSV,
		Source:     directory,
	})
	require.NoError(t, err)

	assert.Len(t, events, 3)
}

func TestTempDownloadFileDiscardsFailedAttempt(t *testing.T) {
	stale := "timestamp,event_type,trip_ref,vehicle_ref\n" +
		"2024-05-01T08:00:00Z,ping,trip-0,bus-0\n" +
		"2024-05-01T08:01:00Z,ping,trip-0,bus-0\n"
	fresh := "timestamp,event_type,trip_ref,vehicle_ref\n" +
		"2024-05-01T09:00:00Z,ping,trip-1,bus-1\n"

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			// Declare more bytes than we send so the client sees the
			// download abort after the stale body has been written
			w.Header().Set("Content-Length", fmt.Sprint(len(stale)*2))
			w.Write([]byte(stale))
			w.(http.Flusher).Flush()
			return
		}

		w.Write([]byte(fresh))
	}))
	defer server.Close()

	path, err := tempDownloadFile(server.URL)
	require.NoError(t, err)
	defer os.Remove(path)

	// The shorter retry body must fully replace the failed first attempt
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fresh, string(contents))
	assert.EqualValues(t, 2, attempts.Load())
}

func TestLoadDatasetUnknownFormat(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := LoadDataset(DataSet{Format: "carrier-pigeon", Source: path})
	assert.Error(t, err)
}
