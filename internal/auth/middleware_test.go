package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/logger"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

type mockAuthenticator struct {
	authenticateFunc func(ctx context.Context, token string) (*model.User, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, token)
	}
	return nil, apperrors.Unauthorized("Access Token Not Found or Expired")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestRequireRole(t *testing.T) {
	knownUser := &model.User{ID: "64b0c1f2a3d4e5f689abcdef", Role: model.RoleUser}
	authn := &mockAuthenticator{
		authenticateFunc: func(ctx context.Context, token string) (*model.User, error) {
			if token == "valid-token" {
				return knownUser, nil
			}
			return nil, apperrors.Unauthorized("Access Token Not Found or Expired")
		},
	}
	mw := NewMiddleware(authn, testLogger())

	tests := []struct {
		name        string
		token       string
		role        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing token",
			token:       "",
			role:        model.RoleUser,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Kindly Provide Your Access Token",
		},
		{
			name:        "unknown token",
			token:       "bogus",
			role:        model.RoleUser,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Access Token Not Found or Expired",
		},
		{
			name:        "wrong role",
			token:       "valid-token",
			role:        model.RoleAdmin,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorized access only",
		},
		{
			name:       "authorized",
			token:      "valid-token",
			role:       model.RoleUser,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			next := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				gotUserID = UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()

			mw.RequireRole(tt.role, next)(rec, req, nil)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantMessage != "" && !strings.Contains(rec.Body.String(), tt.wantMessage) {
				t.Errorf("expected body to contain %q, got %s", tt.wantMessage, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && gotUserID != knownUser.ID {
				t.Errorf("expected user id %q in context, got %q", knownUser.ID, gotUserID)
			}
		})
	}
}

func TestUserID_MissingFromContext(t *testing.T) {
	if id := UserID(context.Background()); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
}
