package service

import (
	"context"
	"errors"
	"time"

	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/repository"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrNotOrganizer     = errors.New("not authorized to modify this event")
	ErrInvalidEventDate = errors.New("event date must use the YYYY-MM-DD format")
	ErrEventDateInPast  = errors.New("event date cannot be in the past")
	ErrEventCompleted   = errors.New("cannot change status from completed")
)

// maxPageSize caps the limit accepted by list operations.
const maxPageSize = 100

// EventRepository is the storage contract the event service depends on.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID int64, skip, limit int, nameFilter string) ([]model.Event, error)
	ListPublished(ctx context.Context, skip, limit int, nameFilter string) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id int64) error
}

// EventService handles event business logic.
type EventService struct {
	events EventRepository
}

// NewEventService creates a new EventService.
func NewEventService(events EventRepository) *EventService {
	return &EventService{events: events}
}

// Create persists a new event organized by the caller. Status defaults
// to draft when not provided.
func (s *EventService) Create(ctx context.Context, req model.CreateEventRequest, organizerID int64) (model.EventResponse, error) {
	date, err := time.ParseInLocation(time.DateOnly, req.EventDate, time.UTC)
	if err != nil {
		return model.EventResponse{}, ErrInvalidEventDate
	}
	if date.Before(today()) {
		return model.EventResponse{}, ErrEventDateInPast
	}

	status := model.EventStatusDraft
	if req.Status != "" {
		status = model.EventStatus(req.Status)
	}

	event := &model.Event{
		Name:        req.Name,
		Description: req.Description,
		EventDate:   date,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      status,
		OrganizerID: organizerID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return model.EventResponse{}, err
	}

	return model.NewEventResponse(event), nil
}

// Get retrieves an event by ID.
func (s *EventService) Get(ctx context.Context, id int64) (model.EventResponse, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.EventResponse{}, ErrEventNotFound
		}
		return model.EventResponse{}, err
	}
	return model.NewEventResponse(event), nil
}

// ListOwned returns events organized by the caller, optionally filtered
// by name substring (case-insensitive).
func (s *EventService) ListOwned(ctx context.Context, organizerID int64, skip, limit int, nameFilter string) ([]model.EventResponse, error) {
	skip, limit = normalizePage(skip, limit)
	events, err := s.events.ListByOrganizer(ctx, organizerID, skip, limit, nameFilter)
	if err != nil {
		return nil, err
	}
	return model.EventsToResponse(events), nil
}

// ListPublished returns the public view: published events only.
func (s *EventService) ListPublished(ctx context.Context, skip, limit int, nameFilter string) ([]model.EventResponse, error) {
	skip, limit = normalizePage(skip, limit)
	events, err := s.events.ListPublished(ctx, skip, limit, nameFilter)
	if err != nil {
		return nil, err
	}
	return model.EventsToResponse(events), nil
}

// Update applies a partial patch to an event. Only the organizer may
// update, the date may not move into the past, and completed is a
// terminal status.
func (s *EventService) Update(ctx context.Context, id int64, patch model.EventPatch, callerID int64) (model.EventResponse, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.EventResponse{}, ErrEventNotFound
		}
		return model.EventResponse{}, err
	}

	if event.OrganizerID != callerID {
		return model.EventResponse{}, ErrNotOrganizer
	}

	if patch.EventDate != nil && patch.EventDate.Before(today()) {
		return model.EventResponse{}, ErrEventDateInPast
	}

	if event.Status == model.EventStatusCompleted && patch.Status != nil && *patch.Status != model.EventStatusCompleted {
		return model.EventResponse{}, ErrEventCompleted
	}

	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.EventDate != nil {
		event.EventDate = *patch.EventDate
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Capacity != nil {
		event.Capacity = *patch.Capacity
	}
	if patch.Status != nil {
		event.Status = *patch.Status
	}

	if err := s.events.Update(ctx, event); err != nil {
		return model.EventResponse{}, err
	}

	return model.NewEventResponse(event), nil
}

// Delete removes an event. Only the organizer may delete.
func (s *EventService) Delete(ctx context.Context, id int64, callerID int64) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if event.OrganizerID != callerID {
		return ErrNotOrganizer
	}

	return s.events.Delete(ctx, id)
}

// today returns midnight UTC of the current day, the floor for event dates.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// normalizePage clamps pagination parameters: skip is non-negative and
// limit is between 1 and maxPageSize.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}
