// Package replay ties a recorded dataset to a player and its consumers.
package replay

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/player"
	"github.com/tripscope/tripscope/pkg/source"
	"github.com/tripscope/tripscope/pkg/summary"
)

// Session is one loaded dataset with its event log, player and fleet
// tracker. Sessions are created per dataset and discarded when a new
// dataset loads.
type Session struct {
	Dataset  source.DataSet
	EventLog *player.EventLog
	Player   *player.Player
	Tracker  *summary.Tracker
}

func NewSession(dataset source.DataSet, config player.Config) (*Session, error) {
	events, err := source.LoadDataset(dataset)
	if err != nil {
		return nil, err
	}

	eventLog := player.NewEventLog(events)

	log.Info().
		Str("dataset", dataset.Identifier).
		Int("events", eventLog.Len()).
		Msg("Loaded event log")

	sessionPlayer := player.NewPlayer(eventLog, config)

	tracker := summary.NewTracker()
	sessionPlayer.Subscribe(tracker)

	return &Session{
		Dataset:  dataset,
		EventLog: eventLog,
		Player:   sessionPlayer,
		Tracker:  tracker,
	}, nil
}

// SeekTo repositions the player and clears the fleet tracker. Seeking starts
// a fresh delivery pass, so the summary afterwards covers only events
// delivered from the new position - without the reset a backward seek would
// count redelivered events twice.
func (session *Session) SeekTo(target time.Time) {
	session.Player.Seek(target)
	session.Tracker.Reset()
}
