package handler

import (
	"errors"
	"net/http"

	"github.com/myevents/myevents-go/internal/middleware"
	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/service"
)

// SessionHandler handles HTTP requests for sessions (talks).
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// HandleCreate handles POST /api/v1/session requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStartInPast), errors.Is(err, service.ErrEndBeforeStart):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/session/{session_id} requests.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "session_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid session id"))
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListByEvent handles GET /api/v1/event/{event_id}/sessions
// requests. An event with no sessions yields an empty list.
func (h *SessionHandler) HandleListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "event_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	skip, limit := pageParams(r)
	resp, err := h.service.ListByEvent(r.Context(), eventID, skip, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PATCH /api/v1/session/{session_id} requests.
func (h *SessionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	id, err := idParam(r, "session_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid session id"))
		return
	}

	var req model.UpdateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), id, req, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrNotSpeaker):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrStartInPast), errors.Is(err, service.ErrEndBeforeStart):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/session/{session_id} requests.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	id, err := idParam(r, "session_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid session id"))
		return
	}

	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrNotSpeaker):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
