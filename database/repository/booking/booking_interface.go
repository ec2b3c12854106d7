package bookingRepo

import (
	"context"
	"errors"

	"jenga/models"
)

// ErrDuplicateSlot signals that an active booking already holds the same
// (serviceId, scheduledDate) slot.
var ErrDuplicateSlot = errors.New("an active booking already exists for that service at the requested time")

// BookingRepository defines methods for booking data access. Bookings are
// append-only history: there is no delete.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID. Returns (nil, nil) when
	// the document does not exist.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// CreateExclusive inserts a new booking. When preventDuplicate is set the
	// duplicate-active-slot check and the insert run inside one transaction,
	// so of two concurrent identical requests at most one succeeds and the
	// other fails with ErrDuplicateSlot.
	CreateExclusive(ctx context.Context, booking *models.Booking, preventDuplicate bool) error
	// ListByClient retrieves bookings made by the given client, newest first.
	ListByClient(ctx context.Context, clientID string, page models.PageOptions) ([]models.Booking, bool, error)
	// ListByProvider retrieves bookings addressed to the given provider,
	// newest first.
	ListByProvider(ctx context.Context, providerID string, page models.PageOptions) ([]models.Booking, bool, error)
	// UpdateStatus persists a new status and refreshes updated_at, returning
	// the updated booking. The write is a compare-and-set on the expected
	// current status, so two racing transitions cannot both apply; ErrNotFound
	// means the booking is missing or its status moved concurrently.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	// SetProviderLocation persists the provider's live location without any
	// status check.
	SetProviderLocation(ctx context.Context, id string, loc models.GeoPoint) error
	// ExistsForService reports whether any booking, in any status, references
	// the given service.
	ExistsForService(ctx context.Context, serviceID string) (bool, error)
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes(ctx context.Context) error
}
