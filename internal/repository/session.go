package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/myevents/myevents-go/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionColumns = `id, name, description, start_time, end_time, capacity, event_id, speaker_id, created_at, updated_at`

// SessionRepository handles session persistence operations.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session and sets the generated ID on the session struct.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `INSERT INTO sessions (name, description, start_time, end_time, capacity, event_id, speaker_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC().Truncate(time.Second)
	result, err := r.db.ExecContext(ctx, query,
		session.Name, session.Description, session.StartTime, session.EndTime,
		session.Capacity, session.EventID, session.SpeakerID, now, now)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	session.ID = id
	session.CreatedAt = now
	session.UpdatedAt = now
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`

	session := &model.Session{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.Name, &session.Description, &session.StartTime, &session.EndTime,
		&session.Capacity, &session.EventID, &session.SpeakerID, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// ListByEvent returns the sessions scheduled within an event.
func (r *SessionRepository) ListByEvent(ctx context.Context, eventID int64, skip, limit int) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions
		WHERE event_id = ? ORDER BY start_time, id LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, eventID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.StartTime, &s.EndTime,
			&s.Capacity, &s.EventID, &s.SpeakerID, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Update persists the mutable fields of a session.
func (r *SessionRepository) Update(ctx context.Context, session *model.Session) error {
	query := `UPDATE sessions SET name = ?, description = ?, start_time = ?, end_time = ?, capacity = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, query,
		session.Name, session.Description, session.StartTime, session.EndTime,
		session.Capacity, now, session.ID)
	if err != nil {
		return err
	}

	session.UpdatedAt = now
	return nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
