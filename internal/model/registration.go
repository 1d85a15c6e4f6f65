package model

import "time"

// Registration links a user to an event they attend.
type Registration struct {
	ID               int64
	UserID           int64
	EventID          int64
	RegistrationDate time.Time
}

// RegistrationResponse represents registration data for API responses.
type RegistrationResponse struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	EventID          int64     `json:"event_id"`
	RegistrationDate time.Time `json:"registration_date"`
}

// NewRegistrationResponse converts a Registration to its API representation.
func NewRegistrationResponse(r *Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:               r.ID,
		UserID:           r.UserID,
		EventID:          r.EventID,
		RegistrationDate: r.RegistrationDate,
	}
}

// RegistrationsToResponse converts a slice of registrations.
func RegistrationsToResponse(regs []Registration) []RegistrationResponse {
	result := make([]RegistrationResponse, len(regs))
	for i := range regs {
		result[i] = NewRegistrationResponse(&regs[i])
	}
	return result
}
