package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/auth"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/service"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/httputil"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/logger"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "error", writeErr)
		}
		return
	}

	user, err := h.service.Register(r.Context(), &reg)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, map[string]string{
		"message": "User created",
		"id":      user.ID,
		"email":   user.Email,
	}); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email, password, ok := credentialsFrom(r)
	if !ok {
		if writeErr := httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
			Error: "Invalid authorization format",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "error", writeErr)
		}
		return
	}

	token, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{
		"message": "Login successful",
		"token":   token,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := r.Header.Get(auth.TokenHeader)
	if token == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
			Error: "Kindly Provide Your Access Token",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Logout", "error", writeErr)
		}
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Logout", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]string{"message": "Logged out"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "error", err)
	}
}

// credentialsFrom accepts either a Basic Authorization header or a JSON
// body with email/password fields.
func credentialsFrom(r *http.Request) (email, password string, ok bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Basic ") {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, "Basic "))
		if err != nil {
			return "", "", false
		}
		email, password, found := strings.Cut(string(decoded), ":")
		if !found {
			return "", "", false
		}
		return email, password, true
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", "", false
	}
	return body.Email, body.Password, true
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/register", h.Register)
	router.POST("/api/v1/login", h.Login)
	router.POST("/api/v1/logout", h.Logout)
}
