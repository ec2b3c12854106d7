package review

import (
	"context"

	"jenga/models"
)

// ReviewService is the review aggregator: it creates reviews for completed
// bookings and keeps each service's rating aggregate the exact mean of its
// reviews.
type ReviewService interface {
	// Create writes the review and the owning service's recomputed rating
	// pair in one atomic transaction. Returns the created review including
	// the new service average.
	Create(ctx context.Context, clientID, clientName string, in models.ReviewInput) (*models.CreatedReview, error)
	// GetForService lists a service's reviews, newest first. Public, no
	// authorization.
	GetForService(ctx context.Context, serviceID string, page models.PageOptions) ([]models.Review, models.Pagination, error)
}
