package catalog

import (
	"context"

	"jenga/models"
)

// ServiceCatalog owns service records and the provider-facing CRUD around
// them. The rating fields are mutated only through UpdateRating, which is
// reserved for the review aggregator.
type ServiceCatalog interface {
	// Create validates and persists a new service owned by the provider.
	Create(ctx context.Context, providerID, providerName string, in models.ServiceInput) (*models.Service, error)
	// GetByID returns the service, or a not-found error when it is missing or
	// inactive. Inactive services are invisible to generic lookup.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// List returns active services matching the filter, cursor-paginated.
	List(ctx context.Context, filter models.ServiceListFilter, page models.PageOptions) ([]models.Service, models.Pagination, error)
	// ListByProvider returns a provider's services. includeInactive is for
	// the owner's own dashboard view.
	ListByProvider(ctx context.Context, providerID string, includeInactive bool, page models.PageOptions) ([]models.Service, models.Pagination, error)
	// Update applies a partial update on behalf of the owning provider.
	// fields is the raw key set from the request so unknown and protected
	// keys are rejected rather than silently dropped.
	Update(ctx context.Context, id, actingProviderID string, fields map[string]interface{}) (*models.Service, error)
	// Delete removes a service on behalf of the owning provider: soft delete
	// when bookings reference it, hard delete otherwise.
	Delete(ctx context.Context, id, actingProviderID string) (*models.DeleteResult, error)
	// UpdateRating overwrites the rating aggregate. Internal-only mutator
	// invoked exclusively by the review aggregator.
	UpdateRating(ctx context.Context, serviceID string, ratingAverage float64, reviewsCount int) error
}
