package serviceRepo

import (
	"context"

	"jenga/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ServiceRepository defines methods for service catalog data access.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID regardless of its active
	// flag. Returns (nil, nil) when the document does not exist; visibility
	// rules for inactive services belong to the caller.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// List retrieves active services matching the filter, ordered descending
	// by the filter's orderBy field, cursor-paginated. The returned bool
	// reports whether more pages exist.
	List(ctx context.Context, filter models.ServiceListFilter, page models.PageOptions) ([]models.Service, bool, error)
	// ListByProvider retrieves a provider's services, optionally including
	// inactive ones.
	ListByProvider(ctx context.Context, providerID string, includeInactive bool, page models.PageOptions) ([]models.Service, bool, error)
	// Create inserts a new service record.
	Create(ctx context.Context, service *models.Service) error
	// UpdateFields patches a service document with the given set document and
	// refreshes updated_at.
	UpdateFields(ctx context.Context, id string, set bson.M) error
	// Delete removes a service record by its ID.
	Delete(ctx context.Context, id string) error
	// UpdateRating overwrites the rating aggregate pair. Internal-only; the
	// review aggregator is the sole caller outside its own transaction path.
	UpdateRating(ctx context.Context, id string, ratingAverage float64, reviewsCount int) error
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes(ctx context.Context) error
}
