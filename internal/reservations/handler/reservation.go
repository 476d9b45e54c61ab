package handler

import (
	"encoding/json"
	"net/http"

	"spacebook/internal/reservations/events"
	"spacebook/internal/reservations/service"
	apperrors "spacebook/pkg/errors"
	httputil "spacebook/pkg/http"
	"spacebook/pkg/logger"
	"spacebook/pkg/middleware"
	"spacebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

type bookRequestBody struct {
	Date   string `json:"date"`
	SlotID string `json:"slot_id"`
}

func (h *ReservationHandler) ListSpaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.ListSpaces(r.Context())); err != nil {
		h.log.Error("failed to write success response", "handler", "ListSpaces", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetSpace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	space, err := h.service.GetSpace(r.Context(), ps.ByName("space_id"))
	if err != nil {
		h.writeError(w, "GetSpace", err)
		return
	}

	if err := httputil.WriteSuccess(w, space); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSpace", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.writeError(w, "GetAvailability", apperrors.InvalidInput("date query parameter is required"))
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), ps.ByName("space_id"), date)
	if err != nil {
		h.writeError(w, "GetAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requester := r.Header.Get(middleware.HeaderUserID)
	if requester == "" {
		h.writeError(w, "Book", apperrors.Unauthorized("X-User-ID header is required"))
		return
	}

	var body bookRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
			Code:  apperrors.CodeBadRequest,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	ctx := events.WithCorrelationID(r.Context(), middleware.RequestID(r.Context()))
	reservation, err := h.service.Book(ctx, &model.BookRequest{
		SpaceID:   ps.ByName("space_id"),
		Date:      body.Date,
		SlotID:    body.SlotID,
		Requester: requester,
	})
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReservationHandler) ListForUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservations, err := h.service.ListReservationsForUser(r.Context(), ps.ByName("user_id"))
	if err != nil {
		h.writeError(w, "ListForUser", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForUser", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requester := r.Header.Get(middleware.HeaderUserID)
	if requester == "" {
		h.writeError(w, "Cancel", apperrors.Unauthorized("X-User-ID header is required"))
		return
	}

	ctx := events.WithCorrelationID(r.Context(), middleware.RequestID(r.Context()))
	reservation, err := h.service.Cancel(ctx, ps.ByName("id"), requester)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/spaces", h.ListSpaces)
	router.GET("/api/v1/spaces/:space_id", h.GetSpace)
	router.GET("/api/v1/spaces/:space_id/availability", h.GetAvailability)
	router.POST("/api/v1/spaces/:space_id/reservations", h.Book)
	router.GET("/api/v1/users/:user_id/reservations", h.ListForUser)
	router.DELETE("/api/v1/reservations/id/:id", h.Cancel)
}
