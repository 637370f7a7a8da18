package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/availability"
	bookingerrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/repository"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/validator"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/config"
	apperrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/events"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
)

const (
	msgBookingSuccessful = "Booking successful"
	msgConflictsFound    = "%d Conflicts found! These are the available timeframes. Beyond these, there are no open reservations."
)

// BookingResult is the outcome of a booking attempt. A conflicted result is
// a normal outcome carrying the open timeframes, not an error.
type BookingResult struct {
	Message        string      `json:"message"`
	BookingID      string      `json:"booking_id,omitempty"`
	AvailableDates [][2]string `json:"available_dates,omitempty"`

	Conflicts int `json:"-"`
}

// Committed reports whether the attempt produced a persisted booking.
func (r *BookingResult) Committed() bool {
	return r.BookingID != ""
}

type BookingService interface {
	// Book evaluates the requested range against the resource's timeline
	// and commits a reservation for the given principal if it is clear.
	Book(ctx context.Context, userID string, req *model.BookingRequest) (*BookingResult, error)
	// ListForUser returns the principal's own bookings that have not yet
	// ended.
	ListForUser(ctx context.Context, userID string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Book(ctx context.Context, userID string, req *model.BookingRequest) (*BookingResult, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Booking requires an authenticated user")
	}
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	today := model.Today()
	candidate := availability.Window{Start: req.StartDate, End: req.EndDate}
	if err := availability.ValidateRange(candidate, today); err != nil {
		switch {
		case errors.Is(err, availability.ErrPastDate):
			return nil, apperrors.InvalidInput("You cannot book a past date")
		case errors.Is(err, availability.ErrInvertedRange):
			return nil, apperrors.InvalidInput("End date must not precede start date")
		default:
			return nil, apperrors.InvalidInput(err.Error())
		}
	}

	// Serialize bookings per resource across check and write. Without the
	// lock, two concurrent requests could each see a clear timeline and
	// both commit overlapping ranges.
	lockID, err := s.acquireResourceLock(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	var result *BookingResult
	booking := &model.Booking{
		ResourceID: req.ResourceID,
		UserID:     userID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		exists, err := s.repo.ExistsExactRange(sessCtx, req.ResourceID, req.StartDate, req.EndDate)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if exists {
			return apperrors.Conflict(fmt.Sprintf(
				"The resource is already booked from %s to %s", req.StartDate, req.EndDate,
			))
		}

		timeline, err := s.repo.FindFutureByResource(sessCtx, req.ResourceID, today)
		if err != nil {
			return apperrors.Internal("Failed to fetch resource timeline", err)
		}

		decision := availability.Evaluate(windowsOf(timeline), candidate)
		if !decision.Clear() {
			result = conflictedResult(decision)
			return nil
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		result = &BookingResult{
			Message:   msgBookingSuccessful,
			BookingID: booking.ID,
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Booking attempt failed",
			"resource", req.ResourceID,
			"user", userID,
			"error", err,
		)
		return nil, err
	}

	if result.Committed() {
		s.cfg.Log.Info("Booking created successfully",
			"id", booking.ID,
			"resource", booking.ResourceID,
			"user", booking.UserID,
			"start_date", booking.StartDate.String(),
			"end_date", booking.EndDate.String(),
		)
		s.publishCreated(ctx, booking)
	} else {
		s.cfg.Log.Info("Booking rejected with conflicts",
			"resource", req.ResourceID,
			"user", userID,
			"conflicts", result.Conflicts,
		)
	}

	return result, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Listing bookings requires an authenticated user")
	}

	bookings, err := s.repo.FindFutureByUser(ctx, userID, model.Today())
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "user", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// --- Helpers ---

func (s *bookingService) acquireResourceLock(ctx context.Context, resourceID string) (string, error) {
	// ExpiresAt backs a TTL index so a crashed holder cannot wedge the
	// resource forever.
	lock := &model.BookingLock{
		ID:        lockIDFor(resourceID),
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	if err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if errors.Is(err, bookingerrors.ErrLockHeld) {
			return "", apperrors.Conflict("This resource is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}
	return lock.ID, nil
}

func lockIDFor(resourceID string) string {
	return "booking_lock_" + resourceID
}

func windowsOf(bookings []*model.Booking) []availability.Window {
	windows := make([]availability.Window, len(bookings))
	for i, b := range bookings {
		windows[i] = availability.Window{Start: b.StartDate, End: b.EndDate}
	}
	return windows
}

func conflictedResult(decision availability.Decision) *BookingResult {
	dates := make([][2]string, len(decision.Gaps))
	for i, gap := range decision.Gaps {
		dates[i] = gap.Display()
	}
	return &BookingResult{
		Message:        fmt.Sprintf(msgConflictsFound, decision.Conflicts),
		AvailableDates: dates,
		Conflicts:      decision.Conflicts,
	}
}

func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg, err := events.NewMessage(events.TypeBookingCreated, booking.ResourceID, booking)
	if err != nil {
		s.cfg.Log.Warn("Failed to encode booking event", "id", booking.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, msg.WithSource("bookings")); err != nil {
		// Event emission is best-effort; the booking is already committed.
		s.cfg.Log.Warn("Failed to publish booking event", "id", booking.ID, "error", err)
	}
}
