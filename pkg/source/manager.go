package source

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/tripscope/tripscope/pkg/ftdf"
)

const snapshotDecodeConcurrency = 8

// LoadDataset resolves, decodes and validates a dataset into trip events.
// Event order is not guaranteed here - the player's event log sorts
// defensively.
func LoadDataset(dataset DataSet) ([]ftdf.TripEvent, error) {
	log.Info().Interface("dataset", dataset).Msg("Found dataset")

	datasource := &ftdf.DataSource{
		OriginalFormat: string(dataset.Format),
		Provider:       dataset.Provider.Name,
		DatasetID:      dataset.Identifier,
		Identifier:     dataset.DataSourceRef,
	}

	source := dataset.Source
	if isValidUrl(dataset.Source) {
		tempPath, err := tempDownloadFile(dataset.Source)
		if err != nil {
			return nil, err
		}

		source = tempPath
		defer os.Remove(tempPath)
	}

	fileInfo, err := os.Stat(source)
	if err != nil {
		return nil, err
	}

	if fileInfo.IsDir() {
		return loadSnapshotDirectory(dataset, source, datasource)
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return decode(dataset.Format, file, datasource)
}

func decode(datasetFormat DataSetFormat, reader io.Reader, datasource *ftdf.DataSource) ([]ftdf.TripEvent, error) {
	var format Format

	switch datasetFormat {
	case DataSetFormatTripCSV:
		format = &TripCSV{}
	case DataSetFormatGTFSRealtime:
		format = &GTFSRealtime{}
	default:
		return nil, fmt.Errorf("Unrecognised format %s", datasetFormat)
	}

	if err := format.ParseFile(reader); err != nil {
		return nil, err
	}

	return format.TripEvents(datasource)
}

// loadSnapshotDirectory decodes every file in a directory of recorded feed
// snapshots in parallel and merges the results.
func loadSnapshotDirectory(dataset DataSet, directory string, datasource *ftdf.DataSource) ([]ftdf.TripEvent, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			paths = append(paths, filepath.Join(directory, entry.Name()))
		}
	}
	sort.Strings(paths)

	decodePool := pool.NewWithResults[[]ftdf.TripEvent]()
	decodePool.WithMaxGoroutines(snapshotDecodeConcurrency)

	for _, path := range paths {
		decodePool.Go(func() []ftdf.TripEvent {
			file, err := os.Open(path)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("Failed to open snapshot file")
				return nil
			}
			defer file.Close()

			events, err := decode(dataset.Format, file, datasource)
			if err != nil {
				log.Error().Err(err).Str("path", path).Msg("Failed to decode snapshot file")
				return nil
			}

			return events
		})
	}

	var merged []ftdf.TripEvent
	for _, events := range decodePool.Wait() {
		merged = append(merged, events...)
	}

	return merged, nil
}

func isValidUrl(toTest string) bool {
	parsed, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// tempDownloadFile fetches a remote dataset into a temporary file and
// returns its path. The caller removes the file when done.
func tempDownloadFile(source string) (string, error) {
	tempFile, err := os.CreateTemp("", "tripscope-dataset-")
	if err != nil {
		return "", err
	}

	retryBackoff := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4)

	err = backoff.Retry(func() error {
		resp, err := http.Get(source)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("download returned status %d", resp.StatusCode)
		}

		// Discard anything a failed earlier attempt wrote
		if err := tempFile.Truncate(0); err != nil {
			return backoff.Permanent(err)
		}
		if _, err := tempFile.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(err)
		}

		_, err = io.Copy(tempFile, resp.Body)
		return err
	}, retryBackoff)
	if err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return "", err
	}

	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}
