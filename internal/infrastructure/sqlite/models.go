package sqlite

import (
	"encoding/json"
	"time"

	"github.com/zjrosen/polish/internal/cleaner"
	"github.com/zjrosen/polish/internal/session"
)

// CleaningModel represents the database row for the cleanings table.
// Timestamps are Unix seconds; options are JSON encoded.
type CleaningModel struct {
	ID         string
	SessionID  string
	Input      string
	Output     string
	Options    string
	DurationMs int64
	CreatedAt  int64
}

// toCleaningModel converts a session Record to a database row.
func toCleaningModel(rec session.Record) (*CleaningModel, error) {
	opts, err := json.Marshal(rec.Options)
	if err != nil {
		return nil, err
	}
	return &CleaningModel{
		ID:         rec.ID,
		SessionID:  rec.SessionID,
		Input:      rec.Input,
		Output:     rec.Output,
		Options:    string(opts),
		DurationMs: rec.Duration.Milliseconds(),
		CreatedAt:  rec.CreatedAt.Unix(),
	}, nil
}

// toRecord converts a database row back to a session Record.
func (m *CleaningModel) toRecord() session.Record {
	var opts cleaner.Options
	_ = json.Unmarshal([]byte(m.Options), &opts)
	return session.Record{
		ID:        m.ID,
		SessionID: m.SessionID,
		Input:     m.Input,
		Output:    m.Output,
		Options:   opts,
		Duration:  time.Duration(m.DurationMs) * time.Millisecond,
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
}
