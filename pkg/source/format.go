// Package source loads recorded trip datasets and turns them into validated
// trip event logs for the player. Loading is best-effort: individual
// malformed records are skipped & logged, never fatal.
package source

import (
	"io"

	"github.com/tripscope/tripscope/pkg/ftdf"
)

type Format interface {
	ParseFile(io.Reader) error

	// TripEvents returns the decoded events tagged with the datasource.
	// Records failing validation (eg. unparseable timestamps) are dropped.
	TripEvents(*ftdf.DataSource) ([]ftdf.TripEvent, error)
}
