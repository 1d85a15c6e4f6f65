package service

import (
	"context"
	"errors"

	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/repository"
)

var (
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrEventFull         = errors.New("event is full")
)

// RegistrationRepository is the storage contract the registration
// service depends on. Create must enforce the capacity ceiling and the
// (user, event) uniqueness atomically; the service's own checks exist
// only to produce precise errors on the common paths.
type RegistrationRepository interface {
	Create(ctx context.Context, userID, eventID int64) (*model.Registration, error)
	Get(ctx context.Context, userID, eventID int64) (*model.Registration, error)
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.Registration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
}

// RegistrationService handles event registration business logic.
type RegistrationService struct {
	registrations RegistrationRepository
	events        EventRepository
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(registrations RegistrationRepository, events EventRepository) *RegistrationService {
	return &RegistrationService{registrations: registrations, events: events}
}

// Register enrolls a user into an event. Fails when the event is absent,
// the user already holds a registration, or the event is at capacity.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID int64) (model.RegistrationResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return model.RegistrationResponse{}, ErrEventNotFound
		}
		return model.RegistrationResponse{}, err
	}

	if _, err := s.registrations.Get(ctx, userID, eventID); err == nil {
		return model.RegistrationResponse{}, ErrAlreadyRegistered
	} else if !errors.Is(err, repository.ErrRegistrationNotFound) {
		return model.RegistrationResponse{}, err
	}

	count, err := s.registrations.CountByEvent(ctx, eventID)
	if err != nil {
		return model.RegistrationResponse{}, err
	}
	if count >= event.Capacity {
		return model.RegistrationResponse{}, ErrEventFull
	}

	// The checks above can race with concurrent registrations; Create is
	// the authoritative guard.
	reg, err := s.registrations.Create(ctx, userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventFull):
			return model.RegistrationResponse{}, ErrEventFull
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return model.RegistrationResponse{}, ErrAlreadyRegistered
		case errors.Is(err, repository.ErrEventNotFound):
			return model.RegistrationResponse{}, ErrEventNotFound
		}
		return model.RegistrationResponse{}, err
	}

	return model.NewRegistrationResponse(reg), nil
}

// ListByEvent returns all registrations for an event.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID int64) ([]model.RegistrationResponse, error) {
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return model.RegistrationsToResponse(regs), nil
}

// ListByUser returns the registrations held by a user.
func (s *RegistrationService) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]model.RegistrationResponse, error) {
	skip, limit = normalizePage(skip, limit)
	regs, err := s.registrations.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	return model.RegistrationsToResponse(regs), nil
}
