package auth

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/httputil"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/logger"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "X-Token"

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated principal's id, or "" when the request
// did not pass through RequireRole.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// Authenticator resolves a session token to its user. The users service
// implements this.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// Middleware gates routes by role. The token is looked up in the session
// store on every request; there is no in-process session state.
type Middleware struct {
	authenticator Authenticator
	log           *logger.Logger
}

func NewMiddleware(authenticator Authenticator, log *logger.Logger) *Middleware {
	return &Middleware{
		authenticator: authenticator,
		log:           log,
	}
}

// RequireRole wraps a route so only principals holding exactly the given
// role reach it. The principal id is threaded to the handler through the
// request context, never stored on the middleware.
func (m *Middleware) RequireRole(role string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := r.Header.Get(TokenHeader)
		if token == "" {
			m.reject(w, http.StatusUnauthorized, "Kindly Provide Your Access Token")
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			m.reject(w, http.StatusNotFound, "Access Token Not Found or Expired")
			return
		}

		if user.Role != role {
			m.log.Warn("Role check failed",
				"required_role", role,
				"user_role", user.Role,
				"path", r.URL.Path,
			)
			m.reject(w, http.StatusUnauthorized, "Authorized access only")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		next(w, r.WithContext(ctx), ps)
	}
}

func (m *Middleware) reject(w http.ResponseWriter, status int, message string) {
	if err := httputil.WriteJSON(w, status, httputil.ErrorResponse{Error: message}); err != nil {
		m.log.Error("failed to write auth rejection", "error", err)
	}
}
