package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/myevents/myevents-go/internal/model"
)

var ErrEventNotFound = errors.New("event not found")

const eventColumns = `id, name, description, event_date, location, capacity, status, organizer_id, created_at, updated_at`

// EventRepository handles event persistence operations.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and sets the generated ID on the event struct.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `INSERT INTO events (name, description, event_date, location, capacity, status, organizer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC().Truncate(time.Second)
	result, err := r.db.ExecContext(ctx, query,
		event.Name, event.Description, event.EventDate, event.Location,
		event.Capacity, string(event.Status), event.OrganizerID, now, now)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	event.CreatedAt = now
	event.UpdatedAt = now
	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	event := &model.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Name, &event.Description, &event.EventDate, &event.Location,
		&event.Capacity, &event.Status, &event.OrganizerID, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListByOrganizer returns events organized by the given user, optionally
// filtered by a case-insensitive substring match on name.
func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64, skip, limit int, nameFilter string) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE organizer_id = ? AND LOWER(name) LIKE LOWER(?)
		ORDER BY event_date, id LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, organizerID, "%"+nameFilter+"%", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListPublished returns published events visible to everyone, optionally
// filtered by a case-insensitive substring match on name.
func (r *EventRepository) ListPublished(ctx context.Context, skip, limit int, nameFilter string) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = 'published' AND LOWER(name) LIKE LOWER(?)
		ORDER BY event_date, id LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, "%"+nameFilter+"%", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Update persists the mutable fields of an event.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `UPDATE events SET name = ?, description = ?, event_date = ?, location = ?, capacity = ?, status = ?, updated_at = ?
		WHERE id = ?`

	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, query,
		event.Name, event.Description, event.EventDate, event.Location,
		event.Capacity, string(event.Status), now, event.ID)
	if err != nil {
		return err
	}

	event.UpdatedAt = now
	return nil
}

// Delete removes an event. Sessions and registrations cascade at the
// database level.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.EventDate, &e.Location,
			&e.Capacity, &e.Status, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
