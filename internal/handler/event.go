package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/myevents/myevents-go/internal/middleware"
	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/service"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

// HandleCreate handles POST /api/v1/event requests. The authenticated
// caller becomes the organizer.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	var req model.CreateEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), req, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventDateInPast), errors.Is(err, service.ErrInvalidEventDate):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/event/{event_id} requests.
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "event_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListOwned handles GET /api/v1/events requests: the owner view,
// listing events organized by the caller.
func (h *EventHandler) HandleListOwned(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	skip, limit := pageParams(r)
	resp, err := h.service.ListOwned(r.Context(), user.ID, skip, limit, r.URL.Query().Get("name_query"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListPublished handles GET /api/v1/events/all requests: the
// public view, listing published events only.
func (h *EventHandler) HandleListPublished(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)
	resp, err := h.service.ListPublished(r.Context(), skip, limit, r.URL.Query().Get("name_query"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PATCH /api/v1/event/{event_id} requests.
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	id, err := idParam(r, "event_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	var req model.UpdateEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch, err := eventPatchFromRequest(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event_date"))
		return
	}

	resp, err := h.service.Update(r.Context(), id, patch, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrNotOrganizer):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEventDateInPast), errors.Is(err, service.ErrEventCompleted):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /api/v1/event/{event_id} requests.
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authenticated"))
		return
	}

	id, err := idParam(r, "event_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrNotOrganizer):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// eventPatchFromRequest parses the wire-format patch into the service
// form, converting the date string.
func eventPatchFromRequest(req model.UpdateEventRequest) (model.EventPatch, error) {
	patch := model.EventPatch{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Capacity:    req.Capacity,
	}

	if req.EventDate != nil {
		date, err := time.ParseInLocation(time.DateOnly, *req.EventDate, time.UTC)
		if err != nil {
			return model.EventPatch{}, err
		}
		patch.EventDate = &date
	}

	if req.Status != nil {
		status := model.EventStatus(*req.Status)
		patch.Status = &status
	}

	return patch, nil
}
