package handler

import (
	"errors"
	"net/http"

	"github.com/myevents/myevents-go/internal/middleware"
	"github.com/myevents/myevents-go/internal/service"
)

// RegistrationHandler handles HTTP requests for event registrations.
type RegistrationHandler struct {
	service *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: svc}
}

// HandleRegister handles POST /api/v1/event/{event_id}/register
// requests, enrolling the authenticated caller.
func (h *RegistrationHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	eventID, err := idParam(r, "event_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	resp, err := h.service.Register(r.Context(), user.ID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound),
			errors.Is(err, service.ErrAlreadyRegistered),
			errors.Is(err, service.ErrEventFull):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleListByEvent handles GET /api/v1/event/{event_id}/registrations requests.
func (h *RegistrationHandler) HandleListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "event_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	resp, err := h.service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListByUser handles GET /api/v1/user/registrations requests for
// the authenticated caller.
func (h *RegistrationHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	skip, limit := pageParams(r)
	resp, err := h.service.ListByUser(r.Context(), user.ID, skip, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
