package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"jenga/database/repository"
	bookingRepo "jenga/database/repository/booking"
	serviceRepo "jenga/database/repository/service"
	"jenga/models"
	"jenga/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Fields a provider may set on create or update. Everything else on the
// document is protected.
var allowedFields = map[string]bool{
	"title":       true,
	"description": true,
	"category":    true,
	"price":       true,
}

var protectedFields = map[string]bool{
	"providerId":    true,
	"ratingAverage": true,
	"reviewsCount":  true,
	"createdAt":     true,
}

// DefaultCatalogService is the production ServiceCatalog implementation.
type DefaultCatalogService struct {
	Repo     serviceRepo.ServiceRepository
	Bookings bookingRepo.BookingRepository
	Cache    *serviceCache // optional read-through cache for GetByID
}

// NewDefaultCatalogService wires the catalog with its repositories and an
// optional cache.
func NewDefaultCatalogService(repo serviceRepo.ServiceRepository, bookings bookingRepo.BookingRepository, cache *serviceCache) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, Bookings: bookings, Cache: cache}
}

func (s *DefaultCatalogService) Create(ctx context.Context, providerID, providerName string, in models.ServiceInput) (*models.Service, error) {
	if providerID == "" {
		return nil, utils.ValidationError("providerId is required")
	}
	if providerName == "" {
		return nil, utils.ValidationError("providerName is required")
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	if in.Title == "" {
		return nil, utils.ValidationError("title is required and cannot be empty")
	}
	if in.Description == "" {
		return nil, utils.ValidationError("description is required and cannot be empty")
	}
	if !models.IsValidCategory(in.Category) {
		return nil, utils.ValidationError("invalid category, must be one of: %s", strings.Join(models.ServiceCategories, ", "))
	}
	if in.Price < 0 {
		return nil, utils.ValidationError("price must be greater than or equal to 0")
	}

	now := time.Now().UTC()
	svc := &models.Service{
		ID:            uuid.New().String(),
		ProviderID:    providerID,
		ProviderName:  providerName,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		RatingAverage: 0,
		ReviewsCount:  0,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, utils.WrapInternal("failed to create service", err)
	}
	utils.GetLogger().Info("service created",
		zap.String("serviceId", svc.ID),
		zap.String("providerId", providerID),
		zap.String("category", svc.Category))
	return svc, nil
}

func (s *DefaultCatalogService) GetByID(ctx context.Context, id string) (*models.Service, error) {
	if id == "" {
		return nil, utils.ValidationError("service ID is required")
	}
	if cached := s.Cache.get(ctx, id); cached != nil {
		if !cached.IsActive {
			return nil, utils.NotFoundError("service not found")
		}
		return cached, nil
	}

	svc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.WrapInternal("failed to fetch service", err)
	}
	if svc == nil || !svc.IsActive {
		return nil, utils.NotFoundError("service not found")
	}
	s.Cache.set(ctx, svc)
	return svc, nil
}

func (s *DefaultCatalogService) List(ctx context.Context, filter models.ServiceListFilter, page models.PageOptions) ([]models.Service, models.Pagination, error) {
	page, ok := page.Normalized()
	if !ok {
		return nil, models.Pagination{}, utils.ValidationError("limit must be between 1 and 100")
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "createdAt"
	}
	if filter.OrderBy != "createdAt" && filter.OrderBy != "ratingAverage" {
		return nil, models.Pagination{}, utils.ValidationError("orderBy must be one of: createdAt, ratingAverage")
	}
	if filter.Category != "" && !models.IsValidCategory(filter.Category) {
		return nil, models.Pagination{}, utils.ValidationError("invalid category, must be one of: %s", strings.Join(models.ServiceCategories, ", "))
	}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, models.Pagination{}, utils.ValidationError("minPrice must be a non-negative number")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, models.Pagination{}, utils.ValidationError("maxPrice must be a non-negative number")
	}

	services, hasMore, err := s.Repo.List(ctx, filter, page)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			return nil, models.Pagination{}, utils.ValidationError("invalid startAfter parameter")
		}
		return nil, models.Pagination{}, utils.WrapInternal("failed to list services", err)
	}
	return services, paginationFor(services, hasMore, page), nil
}

func (s *DefaultCatalogService) ListByProvider(ctx context.Context, providerID string, includeInactive bool, page models.PageOptions) ([]models.Service, models.Pagination, error) {
	if providerID == "" {
		return nil, models.Pagination{}, utils.ValidationError("providerId is required")
	}
	page, ok := page.Normalized()
	if !ok {
		return nil, models.Pagination{}, utils.ValidationError("limit must be between 1 and 100")
	}

	services, hasMore, err := s.Repo.ListByProvider(ctx, providerID, includeInactive, page)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			return nil, models.Pagination{}, utils.ValidationError("invalid startAfter parameter")
		}
		return nil, models.Pagination{}, utils.WrapInternal("failed to list provider services", err)
	}
	return services, paginationFor(services, hasMore, page), nil
}

func (s *DefaultCatalogService) Update(ctx context.Context, id, actingProviderID string, fields map[string]interface{}) (*models.Service, error) {
	if id == "" {
		return nil, utils.ValidationError("service ID is required")
	}
	if actingProviderID == "" {
		return nil, utils.ValidationError("providerId is required")
	}

	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.WrapInternal("failed to fetch service", err)
	}
	if current == nil {
		return nil, utils.NotFoundError("service not found")
	}
	if current.ProviderID != actingProviderID {
		return nil, utils.AuthorizationError("you can only update your own services")
	}

	set, err := buildUpdateDocument(fields)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, utils.ValidationError("no updatable fields provided")
	}

	if err := s.Repo.UpdateFields(ctx, id, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError("service not found")
		}
		return nil, utils.WrapInternal("failed to update service", err)
	}
	s.Cache.invalidate(ctx, id)

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return nil, utils.WrapInternal("failed to fetch updated service", err)
	}
	return updated, nil
}

// buildUpdateDocument validates the raw field set against the allowlist and
// converts it into a bson set document. Protected fields fail loudly, and so
// does anything not on the allowlist.
func buildUpdateDocument(fields map[string]interface{}) (bson.M, error) {
	var protected, unknown []string
	for key := range fields {
		switch {
		case allowedFields[key]:
		case protectedFields[key]:
			protected = append(protected, key)
		default:
			unknown = append(unknown, key)
		}
	}
	if len(protected) > 0 {
		return nil, utils.ValidationError("cannot update protected fields: %s", strings.Join(protected, ", "))
	}
	if len(unknown) > 0 {
		return nil, utils.ValidationError("unknown fields: %s", strings.Join(unknown, ", "))
	}

	set := bson.M{}
	if raw, ok := fields["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			return nil, utils.ValidationError("title must be a string")
		}
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, utils.ValidationError("title cannot be empty")
		}
		set["title"] = title
	}
	if raw, ok := fields["description"]; ok {
		description, ok := raw.(string)
		if !ok {
			return nil, utils.ValidationError("description must be a string")
		}
		description = strings.TrimSpace(description)
		if description == "" {
			return nil, utils.ValidationError("description cannot be empty")
		}
		set["description"] = description
	}
	if raw, ok := fields["category"]; ok {
		category, ok := raw.(string)
		if !ok {
			return nil, utils.ValidationError("category must be a string")
		}
		if !models.IsValidCategory(category) {
			return nil, utils.ValidationError("invalid category, must be one of: %s", strings.Join(models.ServiceCategories, ", "))
		}
		set["category"] = category
	}
	if raw, ok := fields["price"]; ok {
		price, ok := toFloat(raw)
		if !ok {
			return nil, utils.ValidationError("price must be a number")
		}
		if price < 0 {
			return nil, utils.ValidationError("price must be greater than or equal to 0")
		}
		set["price"] = price
	}
	return set, nil
}

// toFloat accepts the numeric types JSON decoding may produce.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (s *DefaultCatalogService) Delete(ctx context.Context, id, actingProviderID string) (*models.DeleteResult, error) {
	if id == "" {
		return nil, utils.ValidationError("service ID is required")
	}
	if actingProviderID == "" {
		return nil, utils.ValidationError("providerId is required")
	}

	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.WrapInternal("failed to fetch service", err)
	}
	if current == nil {
		return nil, utils.NotFoundError("service not found")
	}
	if current.ProviderID != actingProviderID {
		return nil, utils.AuthorizationError("you can only delete your own services")
	}

	hasBookings, err := s.Bookings.ExistsForService(ctx, id)
	if err != nil {
		return nil, utils.WrapInternal("failed to check bookings for service", err)
	}

	logger := utils.GetLogger()
	if hasBookings {
		// Bookings reference the snapshot; keep the document but hide it.
		if err := s.Repo.UpdateFields(ctx, id, bson.M{"is_active": false}); err != nil {
			return nil, utils.WrapInternal("failed to soft delete service", err)
		}
		s.Cache.invalidate(ctx, id)
		logger.Info("service soft deleted", zap.String("serviceId", id))
		return &models.DeleteResult{SoftDeleted: true, Message: "Service soft deleted (bookings exist)"}, nil
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError("service not found")
		}
		return nil, utils.WrapInternal("failed to delete service", err)
	}
	s.Cache.invalidate(ctx, id)
	logger.Info("service hard deleted", zap.String("serviceId", id))
	return &models.DeleteResult{Deleted: true, Message: "Service hard deleted"}, nil
}

func (s *DefaultCatalogService) UpdateRating(ctx context.Context, serviceID string, ratingAverage float64, reviewsCount int) error {
	if serviceID == "" {
		return utils.ValidationError("service ID is required")
	}
	if ratingAverage < 0 || ratingAverage > 5 {
		return utils.ValidationError("ratingAverage must be between 0 and 5")
	}
	if reviewsCount < 0 {
		return utils.ValidationError("reviewsCount must be a non-negative number")
	}

	if err := s.Repo.UpdateRating(ctx, serviceID, ratingAverage, reviewsCount); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFoundError("service not found")
		}
		return utils.WrapInternal("failed to update service rating", err)
	}
	s.Cache.invalidate(ctx, serviceID)
	return nil
}

func paginationFor(items []models.Service, hasMore bool, page models.PageOptions) models.Pagination {
	p := models.Pagination{Limit: page.Limit, HasMore: hasMore}
	if hasMore && len(items) > 0 {
		p.NextPageStartAfter = items[len(items)-1].ID
	}
	return p
}
