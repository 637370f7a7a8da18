package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingerrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/internal/bookings/validator"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/config"
	apperrors "github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/errors"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/logger"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/model"
	"github.com/AfripulGroup/Basic-Booking-Reservation-System-Backend/pkg/mongotx"
)

const (
	testResourceID = "64b0c1f2a3d4e5f601234567"
	testUserID     = "64b0c1f2a3d4e5f689abcdef"
)

// Mock repositories for testing
type mockBookingRepository struct {
	createFunc               func(ctx context.Context, booking *model.Booking) error
	findByIDFunc             func(ctx context.Context, id string) (*model.Booking, error)
	findFutureByResourceFunc func(ctx context.Context, resourceID string, since model.Date) ([]*model.Booking, error)
	findFutureByUserFunc     func(ctx context.Context, userID string, since model.Date) ([]*model.Booking, error)
	existsExactRangeFunc     func(ctx context.Context, resourceID string, start, end model.Date) (bool, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "64b0c1f2a3d4e5f6ffffffff"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingerrors.ErrNotFound
}

func (m *mockBookingRepository) FindFutureByResource(ctx context.Context, resourceID string, since model.Date) ([]*model.Booking, error) {
	if m.findFutureByResourceFunc != nil {
		return m.findFutureByResourceFunc(ctx, resourceID, since)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindFutureByUser(ctx context.Context, userID string, since model.Date) ([]*model.Booking, error) {
	if m.findFutureByUserFunc != nil {
		return m.findFutureByUserFunc(ctx, userID, since)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) ExistsExactRange(ctx context.Context, resourceID string, start, end model.Date) (bool, error) {
	if m.existsExactRangeFunc != nil {
		return m.existsExactRangeFunc(ctx, resourceID, start, end)
	}
	return false, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	var sessCtx mongo.SessionContext
	return fn(sessCtx)
}

type mockLockRepository struct {
	acquireFunc func(ctx context.Context, lock *model.BookingLock) error
	releaseFunc func(ctx context.Context, lockID string) error

	acquired []string
	released []string
}

func (m *mockLockRepository) Acquire(ctx context.Context, lock *model.BookingLock) error {
	m.acquired = append(m.acquired, lock.ID)
	if m.acquireFunc != nil {
		return m.acquireFunc(ctx, lock)
	}
	return nil
}

func (m *mockLockRepository) Release(ctx context.Context, lockID string) error {
	m.released = append(m.released, lockID)
	if m.releaseFunc != nil {
		return m.releaseFunc(ctx, lockID)
	}
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:            log,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		BookingLockTTL: 10 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, locks *mockLockRepository) *bookingService {
	cfg := testConfig()
	return &bookingService{
		repo:      repo,
		lockRepo:  locks,
		validator: validator.NewBookingValidator(cfg.Log),
		cfg:       cfg,
	}
}

func futureRequest(startOffset, endOffset int) *model.BookingRequest {
	today := model.Today()
	return &model.BookingRequest{
		ResourceID: testResourceID,
		StartDate:  today.AddDays(startOffset),
		EndDate:    today.AddDays(endOffset),
	}
}

func TestBook_ClearTimelineCommits(t *testing.T) {
	today := model.Today()
	repo := &mockBookingRepository{
		findFutureByResourceFunc: func(ctx context.Context, resourceID string, since model.Date) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "a", ResourceID: resourceID, StartDate: today.AddDays(1), EndDate: today.AddDays(3)},
				{ID: "b", ResourceID: resourceID, StartDate: today.AddDays(20), EndDate: today.AddDays(25)},
			}, nil
		},
	}
	locks := &mockLockRepository{}
	svc := newTestService(repo, locks)

	result, err := svc.Book(context.Background(), testUserID, futureRequest(5, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Committed() {
		t.Fatalf("expected committed result, got %+v", result)
	}
	if result.Message != "Booking successful" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if result.BookingID == "" {
		t.Error("expected booking_id to be set")
	}
	if len(result.AvailableDates) != 0 {
		t.Errorf("committed result should carry no available_dates, got %v", result.AvailableDates)
	}

	wantLock := "booking_lock_" + testResourceID
	if len(locks.acquired) != 1 || locks.acquired[0] != wantLock {
		t.Errorf("expected lock %q acquired once, got %v", wantLock, locks.acquired)
	}
	if len(locks.released) != 1 || locks.released[0] != wantLock {
		t.Errorf("expected lock %q released once, got %v", wantLock, locks.released)
	}
}

func TestBook_ConflictsReportOpenTimeframes(t *testing.T) {
	today := model.Today()
	created := false
	repo := &mockBookingRepository{
		findFutureByResourceFunc: func(ctx context.Context, resourceID string, since model.Date) ([]*model.Booking, error) {
			return []*model.Booking{
				{StartDate: today.AddDays(5), EndDate: today.AddDays(8)},
				{StartDate: today.AddDays(12), EndDate: today.AddDays(15)},
			}, nil
		},
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			created = true
			return nil
		},
	}
	locks := &mockLockRepository{}
	svc := newTestService(repo, locks)

	// Overlaps both existing reservations.
	result, err := svc.Book(context.Background(), testUserID, futureRequest(6, 13))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Committed() {
		t.Fatal("conflicted attempt must not commit")
	}
	if created {
		t.Error("conflicted attempt must not insert a booking")
	}
	if result.Conflicts != 2 {
		t.Errorf("expected 2 conflicts, got %d", result.Conflicts)
	}
	if !strings.HasPrefix(result.Message, "2 Conflicts found!") {
		t.Errorf("unexpected message: %q", result.Message)
	}

	// One gap between the two reservations, reported in display form.
	if len(result.AvailableDates) != 1 {
		t.Fatalf("expected 1 open timeframe, got %v", result.AvailableDates)
	}
	want := [2]string{today.AddDays(8).Display(), today.AddDays(12).Display()}
	if result.AvailableDates[0] != want {
		t.Errorf("expected timeframe %v, got %v", want, result.AvailableDates[0])
	}

	if len(locks.released) != 1 {
		t.Errorf("lock must be released after a conflicted attempt, got %v", locks.released)
	}
}

func TestBook_DuplicateRangeRejected(t *testing.T) {
	repo := &mockBookingRepository{
		existsExactRangeFunc: func(ctx context.Context, resourceID string, start, end model.Date) (bool, error) {
			return true, nil
		},
	}
	locks := &mockLockRepository{}
	svc := newTestService(repo, locks)

	req := futureRequest(5, 10)
	_, err := svc.Book(context.Background(), testUserID, req)
	if err == nil {
		t.Fatal("expected error for duplicate range")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", appErr.HTTPStatus)
	}
	wantMsg := "The resource is already booked from " + req.StartDate.String() + " to " + req.EndDate.String()
	if appErr.Message != wantMsg {
		t.Errorf("expected message %q, got %q", wantMsg, appErr.Message)
	}

	if len(locks.released) != 1 {
		t.Errorf("lock must be released even when the attempt fails, got %v", locks.released)
	}
}

func TestBook_RangeValidation(t *testing.T) {
	tests := []struct {
		name        string
		startOffset int
		endOffset   int
		wantMessage string
	}{
		{
			name:        "past start date",
			startOffset: -3,
			endOffset:   2,
			wantMessage: "You cannot book a past date",
		},
		{
			name:        "end before start",
			startOffset: 10,
			endOffset:   5,
			wantMessage: "End date must not precede start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locks := &mockLockRepository{}
			svc := newTestService(&mockBookingRepository{}, locks)

			_, err := svc.Book(context.Background(), testUserID, futureRequest(tt.startOffset, tt.endOffset))
			if err == nil {
				t.Fatal("expected error")
			}

			appErr := apperrors.AsAppError(err)
			if appErr.HTTPStatus != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", appErr.HTTPStatus)
			}
			if appErr.Message != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, appErr.Message)
			}
			if len(locks.acquired) != 0 {
				t.Error("invalid range must be rejected before taking the lock")
			}
		})
	}
}

func TestBook_InvalidInputRejected(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{})

	_, err := svc.Book(context.Background(), testUserID, &model.BookingRequest{
		ResourceID: "not-an-object-id",
		StartDate:  model.Today().AddDays(1),
		EndDate:    model.Today().AddDays(2),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", appErr.HTTPStatus)
	}
}

func TestBook_LockContention(t *testing.T) {
	transactionRan := false
	repo := &mockBookingRepository{
		findFutureByResourceFunc: func(ctx context.Context, resourceID string, since model.Date) ([]*model.Booking, error) {
			transactionRan = true
			return nil, nil
		},
	}
	locks := &mockLockRepository{
		acquireFunc: func(ctx context.Context, lock *model.BookingLock) error {
			return bookingerrors.ErrLockHeld
		},
	}
	svc := newTestService(repo, locks)

	_, err := svc.Book(context.Background(), testUserID, futureRequest(5, 10))
	if err == nil {
		t.Fatal("expected error when the lock is held")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", appErr.HTTPStatus)
	}
	if !strings.Contains(appErr.Message, "being booked by another request") {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
	if transactionRan {
		t.Error("timeline must not be evaluated without the lock")
	}
}

func TestBook_RequiresAuthenticatedUser(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{})

	_, err := svc.Book(context.Background(), "", futureRequest(5, 10))
	if err == nil {
		t.Fatal("expected error for missing user")
	}
	if appErr := apperrors.AsAppError(err); appErr.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", appErr.HTTPStatus)
	}
}

func TestListForUser(t *testing.T) {
	today := model.Today()
	repo := &mockBookingRepository{
		findFutureByUserFunc: func(ctx context.Context, userID string, since model.Date) ([]*model.Booking, error) {
			if userID != testUserID {
				t.Errorf("unexpected user id: %s", userID)
			}
			if !since.Equal(today) {
				t.Errorf("expected listing from today, got %s", since)
			}
			return []*model.Booking{
				{ID: "a", UserID: userID, StartDate: today.AddDays(1), EndDate: today.AddDays(2)},
			}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{})

	bookings, err := svc.ListForUser(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}

	if _, err := svc.ListForUser(context.Background(), ""); err == nil {
		t.Error("expected error for missing user")
	}
}
