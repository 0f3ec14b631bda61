package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zjrosen/polish/internal/session"
)

// cleaningColumns is the list of columns to select for cleaning queries.
const cleaningColumns = `id, session_id, input, output, options, duration_ms, created_at`

// CleaningRepository persists and retrieves archived cleanings.
type CleaningRepository struct {
	db *sql.DB
}

// newCleaningRepository creates a new CleaningRepository instance.
func newCleaningRepository(db *sql.DB) *CleaningRepository {
	return &CleaningRepository{db: db}
}

// Ensure CleaningRepository implements session.Archiver.
var _ session.Archiver = (*CleaningRepository)(nil)

// scanCleaning scans a row into a CleaningModel.
func scanCleaning(scanner interface{ Scan(...any) error }) (*CleaningModel, error) {
	var model CleaningModel
	err := scanner.Scan(
		&model.ID, &model.SessionID, &model.Input, &model.Output,
		&model.Options, &model.DurationMs, &model.CreatedAt,
	)
	return &model, err
}

// Save inserts a completed cleaning into the archive.
func (r *CleaningRepository) Save(rec session.Record) error {
	model, err := toCleaningModel(rec)
	if err != nil {
		return fmt.Errorf("failed to encode cleaning: %w", err)
	}
	_, err = r.db.Exec(
		`INSERT INTO cleanings (id, session_id, input, output, options, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		model.ID, model.SessionID, model.Input, model.Output,
		model.Options, model.DurationMs, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cleaning: %w", err)
	}
	return nil
}

// Recent returns the most recent cleanings, newest first. A limit of zero
// or less returns all rows.
func (r *CleaningRepository) Recent(limit int) ([]session.Record, error) {
	query := `SELECT ` + cleaningColumns + ` FROM cleanings ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cleanings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []session.Record
	for rows.Next() {
		model, err := scanCleaning(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cleaning row: %w", err)
		}
		records = append(records, model.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cleaning rows: %w", err)
	}
	return records, nil
}

// ForSession returns all cleanings for a session, newest first.
func (r *CleaningRepository) ForSession(sessionID string) ([]session.Record, error) {
	rows, err := r.db.Query(
		`SELECT `+cleaningColumns+` FROM cleanings WHERE session_id = ? ORDER BY created_at DESC, id DESC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cleanings for session: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []session.Record
	for rows.Next() {
		model, err := scanCleaning(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cleaning row: %w", err)
		}
		records = append(records, model.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cleaning rows: %w", err)
	}
	return records, nil
}

// DeleteBefore removes cleanings created before the cutoff and returns the
// number deleted.
func (r *CleaningRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM cleanings WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old cleanings: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
