package source

type DataSet struct {
	Identifier    string `yaml:"identifier"`
	DataSourceRef string `yaml:"-" json:"-"`

	Format DataSetFormat `yaml:"format"`

	Provider Provider `yaml:"-"`

	// Source is a local file, a directory of snapshot files, or a URL.
	Source string `yaml:"source"`

	CustomConfig map[string]string `yaml:"custom_config"`
}

type DataSetFormat string

const (
	DataSetFormatTripCSV      DataSetFormat = "trip-csv"
	DataSetFormatGTFSRealtime               = "gtfs-realtime"
)

type Provider struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
}

// RecordedSource is one yaml document in the dataset registry - a provider
// with its recorded trip datasets.
type RecordedSource struct {
	Identifier string    `yaml:"identifier"`
	Provider   Provider  `yaml:"provider"`
	Datasets   []DataSet `yaml:"datasets"`
}
