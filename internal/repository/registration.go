package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/myevents/myevents-go/internal/model"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("user is already registered for this event")
	ErrEventFull            = errors.New("event is full")
)

// RegistrationRepository handles registration persistence operations.
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create registers a user for an event, enforcing the capacity ceiling
// atomically. The event row is locked for the duration of the
// transaction so two concurrent registrations for the last slot cannot
// both pass the count check; the unique key on (user_id, event_id)
// backstops the duplicate check.
func (r *RegistrationRepository) Create(ctx context.Context, userID, eventID int64) (*model.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = ? FOR UPDATE`, eventID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID,
	).Scan(&count)
	if err != nil {
		return nil, err
	}
	if count >= capacity {
		return nil, ErrEventFull
	}

	now := time.Now().UTC().Truncate(time.Second)
	result, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (user_id, event_id, registration_date) VALUES (?, ?, ?)`,
		userID, eventID, now)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &model.Registration{
		ID:               id,
		UserID:           userID,
		EventID:          eventID,
		RegistrationDate: now,
	}, nil
}

// Get retrieves the registration linking a user to an event.
func (r *RegistrationRepository) Get(ctx context.Context, userID, eventID int64) (*model.Registration, error) {
	query := `SELECT id, user_id, event_id, registration_date FROM registrations
		WHERE user_id = ? AND event_id = ?`

	reg := &model.Registration{}
	err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(
		&reg.ID, &reg.UserID, &reg.EventID, &reg.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

// ListByUser returns the registrations held by a user.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.Registration, error) {
	query := `SELECT id, user_id, event_id, registration_date FROM registrations
		WHERE user_id = ? ORDER BY registration_date, id LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRegistrations(rows)
}

// ListByEvent returns all registrations for an event.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error) {
	query := `SELECT id, user_id, event_id, registration_date FROM registrations
		WHERE event_id = ? ORDER BY registration_date, id`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRegistrations(rows)
}

// CountByEvent returns the number of registrations held against an event.
func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID,
	).Scan(&count)
	return count, err
}

func scanRegistrations(rows *sql.Rows) ([]model.Registration, error) {
	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegistrationDate); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
