package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/auth"
	usererrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/repository"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/users/validator"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/config"
	apperrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/events"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/sanitizer"
)

type UserService interface {
	Register(ctx context.Context, reg *model.Registration) (*model.User, error)
	// Login verifies the credentials and issues a session token.
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate resolves a session token to its user. Implements
	// auth.Authenticator.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

type userService struct {
	repo      repository.UserRepository
	sessions  auth.SessionStore
	validator *validator.UserValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	sessions auth.SessionStore,
	validator *validator.UserValidator,
	publisher events.Publisher,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		sessions:  sessions,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, reg *model.Registration) (*model.User, error) {
	reg.Email = sanitizer.NormalizeEmail(reg.Email)
	reg.FirstName = sanitizer.NormalizeName(reg.FirstName)
	reg.LastName = sanitizer.NormalizeName(reg.LastName)

	if err := s.validator.ValidateRegistration(reg); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, apperrors.Validation("Invalid registration input", map[string]any{"error": err.Error()})
	}

	exists, err := s.repo.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, apperrors.Internal("Failed to check user existence", err)
	}
	if exists {
		return nil, apperrors.Conflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	role := reg.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Email:        reg.Email,
		PasswordHash: string(hash),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, usererrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email, "role", user.Role)
	s.publishRegistered(ctx, user)
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.InvalidInput("Email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return "", apperrors.Unauthorized("Invalid email or password")
		}
		return "", apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("Invalid email or password")
	}

	token := uuid.New().String()
	if err := s.sessions.Put(ctx, token, user.ID); err != nil {
		return "", apperrors.Internal("Failed to store session", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return token, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil, apperrors.Unauthorized("Access Token Not Found or Expired")
		}
		return nil, apperrors.Internal("Failed to look up session", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Access Token Not Found or Expired")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	return user, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.Internal("Failed to delete session", err)
	}
	return nil
}

func (s *userService) publishRegistered(ctx context.Context, user *model.User) {
	if s.publisher == nil {
		return
	}

	msg, err := events.NewMessage(events.TypeUserRegistered, user.ID, map[string]string{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to encode user event", "id", user.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, msg.WithSource("users")); err != nil {
		s.cfg.Log.Warn("Failed to publish user event", "id", user.ID, "error", err)
	}
}
