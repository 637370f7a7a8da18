package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/auth"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/service"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/httputil"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/logger"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	guard   *auth.Middleware
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, guard *auth.Middleware, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "error", writeErr)
		}
		return
	}

	// The resource may come from the path instead of the body.
	if req.ResourceID == "" {
		req.ResourceID = ps.ByName("resource_id")
	}

	result, err := h.service.Book(r.Context(), auth.UserID(r.Context()), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	status := http.StatusOK
	if result.Committed() {
		status = http.StatusCreated
	}
	if err := httputil.WriteJSON(w, status, result); err != nil {
		h.log.Error("failed to write booking response", "handler", "Book", "error", err)
	}
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.ListForUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListMine", "error", writeErr)
		}
		return
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	if err := httputil.WriteSuccess(w, map[string]any{"bookings": bookings}); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMine", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/booking", h.guard.RequireRole(model.RoleUser, h.Book))
	router.POST("/api/v1/booking/:resource_id", h.guard.RequireRole(model.RoleUser, h.Book))
	router.GET("/api/v1/booking", h.guard.RequireRole(model.RoleUser, h.ListMine))
}
