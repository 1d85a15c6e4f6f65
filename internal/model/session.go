package model

import "time"

// Session represents a talk scheduled within an event.
type Session struct {
	ID          int64
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    int
	EventID     int64
	SpeakerID   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateSessionRequest represents a session creation request. Times are
// RFC 3339 timestamps.
type CreateSessionRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=1000"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	EventID     int64     `json:"event_id" validate:"required"`
	SpeakerID   int64     `json:"speaker_id" validate:"required"`
}

// UpdateSessionRequest represents a partial session update; only non-nil
// fields are applied.
type UpdateSessionRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gte=0"`
}

// SessionResponse represents session data for API responses.
type SessionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	EventID     int64     `json:"event_id"`
	SpeakerID   int64     `json:"speaker_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSessionResponse converts a Session to its API representation.
func NewSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Capacity:    s.Capacity,
		EventID:     s.EventID,
		SpeakerID:   s.SpeakerID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SessionsToResponse converts a slice of sessions.
func SessionsToResponse(sessions []Session) []SessionResponse {
	result := make([]SessionResponse, len(sessions))
	for i := range sessions {
		result[i] = NewSessionResponse(&sessions[i])
	}
	return result
}
