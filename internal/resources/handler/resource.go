package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/auth"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/resources/service"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/httputil"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/logger"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

type ResourceHandler struct {
	service service.ResourceService
	guard   *auth.Middleware
	log     *logger.Logger
}

func NewResourceHandler(service service.ResourceService, guard *auth.Middleware, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var resource model.Resource
	if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &resource); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, map[string]string{
		"message": "Resource created",
		"id":      resource.ID,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resources, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if resources == nil {
		resources = []*model.Resource{}
	}
	if err := httputil.WriteSuccess(w, map[string]any{"resources": resources}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	resource, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resource); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *ResourceHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/resources", h.guard.RequireRole(model.RoleUser, h.List))
	router.GET("/api/v1/resources/:id", h.guard.RequireRole(model.RoleUser, h.Get))
	router.POST("/api/v1/resources", h.guard.RequireRole(model.RoleAdmin, h.Create))
}
