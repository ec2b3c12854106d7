package booking

import (
	"context"

	"jenga/models"
)

// BookingService is the booking lifecycle engine: it creates bookings against
// the service catalog and enforces the status state machine with role-based
// transition authorization.
type BookingService interface {
	// Create books an active service for the client. The duplicate-active-slot
	// check and the insert are atomic with respect to concurrent identical
	// requests.
	Create(ctx context.Context, clientID, clientName string, in models.BookingInput) (*models.Booking, error)
	// GetByID returns the booking. Only the booking's client, its provider or
	// an admin may read it.
	GetByID(ctx context.Context, id string, actingUser models.AuthUser) (*models.Booking, error)
	// GetForUser lists the acting user's bookings: clients see bookings they
	// made, providers see bookings addressed to them.
	GetForUser(ctx context.Context, actingUser models.AuthUser, page models.PageOptions) ([]models.Booking, models.Pagination, error)
	// UpdateStatus applies one transition of the state machine on behalf of
	// the acting user.
	UpdateStatus(ctx context.Context, bookingID string, actingUser models.AuthUser, newStatus models.BookingStatus) (*models.Booking, error)
	// UpdateProviderLocation persists the provider's live location for a
	// booking. No status check: this is a tracking side channel independent
	// of the state machine.
	UpdateProviderLocation(ctx context.Context, bookingID string, actingUser models.AuthUser, loc models.GeoPoint) error
}
