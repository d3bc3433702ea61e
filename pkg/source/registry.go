package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/util"
	"gopkg.in/yaml.v3"
)

const defaultRegistryDirectory = "data/datasets/"

func registryDirectory() string {
	env := util.GetEnvironmentVariables()

	if env["TRIPSCOPE_DATASETS_DIR"] != "" {
		return env["TRIPSCOPE_DATASETS_DIR"]
	}

	return defaultRegistryDirectory
}

func GetRegisteredDataSets() []DataSet {
	var registeredDatasets []DataSet

	err := filepath.Walk(registryDirectory(),
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !fileInfo.IsDir() {
				log.Debug().Str("path", path).Msg("Loading datasets file")

				extension := filepath.Ext(path)

				if extension != ".yaml" {
					return nil
				}

				registryYaml, err := os.ReadFile(path)
				if err != nil {
					return err
				}

				decoder := yaml.NewDecoder(bytes.NewReader(registryYaml))

				for {
					var recordedSource RecordedSource
					if decoder.Decode(&recordedSource) != nil {
						break
					}

					for _, dataset := range recordedSource.Datasets {
						dataset.Identifier = fmt.Sprintf("%s-%s", recordedSource.Identifier, dataset.Identifier)
						dataset.DataSourceRef = recordedSource.Identifier
						dataset.Provider = recordedSource.Provider

						registeredDatasets = append(registeredDatasets, dataset)
					}
				}
			}

			return nil
		})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load datasets directory")
	}

	return registeredDatasets
}

func GetDataset(identifier string) (DataSet, error) {
	registered := GetRegisteredDataSets()

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return DataSet{}, errors.New("Dataset could not be found")
}
