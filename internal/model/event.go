package model

import "time"

// EventStatus enumerates the lifecycle states of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// Event represents an event in the database. EventDate is a calendar
// date; the time component is always midnight UTC.
type Event struct {
	ID          int64
	Name        string
	Description string
	EventDate   time.Time
	Location    string
	Capacity    int
	Status      EventStatus
	OrganizerID int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEventRequest represents an event creation request. EventDate uses
// the YYYY-MM-DD form.
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	EventDate   string `json:"event_date" validate:"required,datetime=2006-01-02"`
	Location    string `json:"location" validate:"required,max=200"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
}

// UpdateEventRequest represents a partial event update; only non-nil
// fields are applied.
type UpdateEventRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	EventDate   *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft published cancelled completed"`
}

// EventPatch is the parsed form of UpdateEventRequest consumed by the
// event service.
type EventPatch struct {
	Name        *string
	Description *string
	EventDate   *time.Time
	Location    *string
	Capacity    *int
	Status      *EventStatus
}

// EventResponse represents event data for API responses.
type EventResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	EventDate   string      `json:"event_date"`
	Location    string      `json:"location"`
	Capacity    int         `json:"capacity"`
	Status      EventStatus `json:"status"`
	OrganizerID int64       `json:"organizer_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewEventResponse converts an Event to its API representation.
func NewEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		EventDate:   e.EventDate.Format(time.DateOnly),
		Location:    e.Location,
		Capacity:    e.Capacity,
		Status:      e.Status,
		OrganizerID: e.OrganizerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EventsToResponse converts a slice of events.
func EventsToResponse(events []Event) []EventResponse {
	result := make([]EventResponse, len(events))
	for i := range events {
		result[i] = NewEventResponse(&events[i])
	}
	return result
}
