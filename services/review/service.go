package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"jenga/database/repository"
	reviewRepo "jenga/database/repository/review"
	"jenga/models"
	"jenga/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReviewService is the production ReviewService implementation.
type DefaultReviewService struct {
	Repo reviewRepo.ReviewRepository
}

func (s *DefaultReviewService) Create(ctx context.Context, clientID, clientName string, in models.ReviewInput) (*models.CreatedReview, error) {
	if clientID == "" {
		return nil, utils.ValidationError("clientId is required")
	}
	if in.BookingID == "" {
		return nil, utils.ValidationError("bookingId is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, utils.ValidationError("rating must be an integer between 1 and 5")
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  in.BookingID,
		ClientID:   clientID,
		ClientName: clientName,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.Repo.CreateWithAggregation(ctx, review)
	if err != nil {
		switch {
		case errors.Is(err, reviewRepo.ErrBookingNotFound):
			return nil, utils.NotFoundError("booking not found")
		case errors.Is(err, reviewRepo.ErrNotBookingClient):
			return nil, utils.AuthorizationError("you can only review your own bookings")
		case errors.Is(err, reviewRepo.ErrBookingNotCompleted):
			return nil, utils.ValidationError("reviews allowed only for COMPLETED bookings")
		case errors.Is(err, reviewRepo.ErrDuplicateReview):
			return nil, utils.ConflictError("review already exists for this booking")
		case errors.Is(err, reviewRepo.ErrServiceNotFound):
			return nil, utils.NotFoundError("service not found")
		}
		return nil, utils.WrapInternal("failed to create review", err)
	}

	utils.GetLogger().Info("review created",
		zap.String("reviewId", created.ID),
		zap.String("bookingId", created.BookingID),
		zap.String("serviceId", created.ServiceID),
		zap.Int("rating", created.Rating),
		zap.Float64("newAverage", created.RatingAverage))
	return created, nil
}

func (s *DefaultReviewService) GetForService(ctx context.Context, serviceID string, page models.PageOptions) ([]models.Review, models.Pagination, error) {
	if serviceID == "" {
		return nil, models.Pagination{}, utils.ValidationError("serviceId is required")
	}
	page, ok := page.Normalized()
	if !ok {
		return nil, models.Pagination{}, utils.ValidationError("limit must be between 1 and 100")
	}

	reviews, hasMore, err := s.Repo.ListByService(ctx, serviceID, page)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			return nil, models.Pagination{}, utils.ValidationError("invalid startAfter parameter")
		}
		return nil, models.Pagination{}, utils.WrapInternal("failed to list reviews", err)
	}

	p := models.Pagination{Limit: page.Limit, HasMore: hasMore}
	if hasMore && len(reviews) > 0 {
		p.NextPageStartAfter = reviews[len(reviews)-1].ID
	}
	return reviews, p, nil
}
