package ftdf

type DataSource struct {
	OriginalFormat string `groups:"internal"` // or enum (eg. trip-csv, gtfs-realtime)
	Provider       string `groups:"internal"`
	DatasetID      string `groups:"internal"`
	Identifier     string `groups:"internal"`
}
