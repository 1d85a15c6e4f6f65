package service

import (
	"context"
	"errors"
	"time"

	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSpeaker      = errors.New("not authorized to modify this session")
	ErrStartInPast     = errors.New("session start time cannot be in the past")
	ErrEndBeforeStart  = errors.New("session end time must be after start time")
)

// SessionRepository is the storage contract the session service depends on.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	ListByEvent(ctx context.Context, eventID int64, skip, limit int) ([]model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
}

// SessionService handles session (talk) business logic.
type SessionService struct {
	sessions SessionRepository
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessions SessionRepository) *SessionService {
	return &SessionService{sessions: sessions}
}

// Create schedules a session. Times are normalized to UTC; the start
// must not be in the past and the end must follow the start.
func (s *SessionService) Create(ctx context.Context, req model.CreateSessionRequest) (model.SessionResponse, error) {
	start := req.StartTime.UTC()
	end := req.EndTime.UTC()

	if start.Before(time.Now().UTC()) {
		return model.SessionResponse{}, ErrStartInPast
	}
	if !end.After(start) {
		return model.SessionResponse{}, ErrEndBeforeStart
	}

	session := &model.Session{
		Name:        req.Name,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		Capacity:    req.Capacity,
		EventID:     req.EventID,
		SpeakerID:   req.SpeakerID,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return model.SessionResponse{}, err
	}

	return model.NewSessionResponse(session), nil
}

// Get retrieves a session by ID.
func (s *SessionService) Get(ctx context.Context, id int64) (model.SessionResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return model.SessionResponse{}, ErrSessionNotFound
		}
		return model.SessionResponse{}, err
	}
	return model.NewSessionResponse(session), nil
}

// ListByEvent returns the sessions scheduled within an event. An event
// with no sessions yields an empty list, not an error.
func (s *SessionService) ListByEvent(ctx context.Context, eventID int64, skip, limit int) ([]model.SessionResponse, error) {
	skip, limit = normalizePage(skip, limit)
	sessions, err := s.sessions.ListByEvent(ctx, eventID, skip, limit)
	if err != nil {
		return nil, err
	}
	return model.SessionsToResponse(sessions), nil
}

// Update applies a partial patch to a session. Only the speaker may
// update, and the patched times must still be ordered.
func (s *SessionService) Update(ctx context.Context, id int64, req model.UpdateSessionRequest, callerID int64) (model.SessionResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return model.SessionResponse{}, ErrSessionNotFound
		}
		return model.SessionResponse{}, err
	}

	if session.SpeakerID != callerID {
		return model.SessionResponse{}, ErrNotSpeaker
	}

	start := session.StartTime
	end := session.EndTime
	if req.StartTime != nil {
		start = req.StartTime.UTC()
		if start.Before(time.Now().UTC()) {
			return model.SessionResponse{}, ErrStartInPast
		}
	}
	if req.EndTime != nil {
		end = req.EndTime.UTC()
	}
	if !end.After(start) {
		return model.SessionResponse{}, ErrEndBeforeStart
	}

	session.StartTime = start
	session.EndTime = end
	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.Capacity != nil {
		session.Capacity = *req.Capacity
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return model.SessionResponse{}, err
	}

	return model.NewSessionResponse(session), nil
}

// Delete removes a session. Only the speaker may delete.
func (s *SessionService) Delete(ctx context.Context, id int64, callerID int64) error {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if session.SpeakerID != callerID {
		return ErrNotSpeaker
	}

	return s.sessions.Delete(ctx, id)
}
