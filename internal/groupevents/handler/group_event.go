package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"groupcal/internal/groupevents/service"
	apperrors "groupcal/pkg/errors"
	httputil "groupcal/pkg/http"
	"groupcal/pkg/logger"
	"groupcal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type GroupEventHandler struct {
	events          service.GroupEventService
	recommendations service.RecommendationService
	log             *logger.Logger
}

func NewGroupEventHandler(
	events service.GroupEventService,
	recommendations service.RecommendationService,
	log *logger.Logger,
) *GroupEventHandler {
	return &GroupEventHandler{
		events:          events,
		recommendations: recommendations,
		log:             log,
	}
}

// RecommendationRequest is the body of a slot recommendation call.
type RecommendationRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	DurationMin int    `json:"duration_min"`
}

// BookingRequest is the body of a booking commit call.
type BookingRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *GroupEventHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var ge model.GroupEvent
	if err := json.NewDecoder(r.Body).Decode(&ge); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.events.Create(r.Context(), &ge); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, ge); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *GroupEventHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	ge, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ge); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *GroupEventHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	var offset int64
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.ParseInt(offsetStr, 10, 64)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr))); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
			}
			return
		}
	}

	events, total, err := h.events.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, events, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *GroupEventHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.events.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *GroupEventHandler) Recommend(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Recommend", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	period := model.Period{Start: req.PeriodStart, End: req.PeriodEnd}
	slots, err := h.recommendations.RecommendSlots(r.Context(), id, period, req.DurationMin)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Recommend", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "Recommend", "operation", "WriteSuccess", "error", err)
	}
}

func (h *GroupEventHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	slot := model.TimeSlot{Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime}
	ge, err := h.recommendations.BookSlot(r.Context(), id, slot)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ge); err != nil {
		h.log.Error("failed to write success response", "handler", "Book", "operation", "WriteSuccess", "error", err)
	}
}

func (h *GroupEventHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/group-events", h.Create)
	router.GET("/api/v1/group-events", h.GetAll)
	router.GET("/api/v1/group-events/:id", h.GetByID)
	router.DELETE("/api/v1/group-events/:id", h.Delete)
	router.POST("/api/v1/group-events/:id/recommendations", h.Recommend)
	router.POST("/api/v1/group-events/:id/booking", h.Book)
}
