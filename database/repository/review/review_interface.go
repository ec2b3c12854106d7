package reviewRepo

import (
	"context"
	"errors"

	"jenga/models"
)

// Sentinel errors for the preconditions checked inside the review creation
// transaction. Each one aborts the transaction before any write happens.
var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNotBookingClient    = errors.New("review client does not match booking client")
	ErrBookingNotCompleted = errors.New("reviews allowed only for COMPLETED bookings")
	ErrDuplicateReview     = errors.New("review already exists for this booking")
	ErrServiceNotFound     = errors.New("service not found")
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// CreateWithAggregation creates the review and recomputes the owning
	// service's rating aggregate in one transaction. The booking lookup, the
	// ownership and COMPLETED checks, the duplicate-review lookup, the
	// service read and both writes all happen inside the same transaction,
	// so no two concurrent creations on one service observe the same old
	// count. The review's ServiceID/ProviderID fields are filled from the
	// booking; the returned value carries the new service rating average.
	CreateWithAggregation(ctx context.Context, review *models.Review) (*models.CreatedReview, error)
	// ListByService retrieves reviews for a service, newest first,
	// cursor-paginated.
	ListByService(ctx context.Context, serviceID string, page models.PageOptions) ([]models.Review, bool, error)
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes(ctx context.Context) error
}
