package model

import "time"

// Booking is one committed reservation of a resource for a range of calendar
// dates. Bookings are created once and never mutated.
type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID string    `json:"resource" bson:"resource" validate:"required,mongodb"`
	UserID     string    `json:"user" bson:"user" validate:"required,mongodb"`
	StartDate  Date      `json:"start_date" bson:"start_date" validate:"required"`
	EndDate    Date      `json:"end_date" bson:"end_date" validate:"required"`
	CreatedAt  time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the inbound payload for booking a resource.
type BookingRequest struct {
	ResourceID string `json:"resource" validate:"required,mongodb"`
	StartDate  Date   `json:"start_date" validate:"required"`
	EndDate    Date   `json:"end_date" validate:"required"`
}

// BookingLock is an advisory lock serializing booking creation per resource.
// The availability check and the insert are separate storage operations;
// holding the lock across both closes the window where two requests could
// each observe a clear timeline and both commit.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
