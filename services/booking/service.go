package booking

import (
	"context"
	"errors"
	"time"

	"jenga/database/repository"
	bookingRepo "jenga/database/repository/booking"
	"jenga/models"
	"jenga/services/catalog"
	"jenga/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production BookingService implementation.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Catalog catalog.ServiceCatalog

	// AllowDuplicateSlots relaxes the duplicate-active-booking invariant to
	// an advisory policy. Off by default; flipping it is a deployment
	// decision, not a per-request one.
	AllowDuplicateSlots bool

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) Create(ctx context.Context, clientID, clientName string, in models.BookingInput) (*models.Booking, error) {
	if clientID == "" {
		return nil, utils.ValidationError("clientId is required")
	}
	if clientName == "" {
		return nil, utils.ValidationError("clientName is required")
	}
	if in.ServiceID == "" {
		return nil, utils.ValidationError("serviceId is required")
	}
	if in.ScheduledDate == "" {
		return nil, utils.ValidationError("scheduledDate is required")
	}

	scheduled, err := time.Parse(time.RFC3339, in.ScheduledDate)
	if err != nil {
		return nil, utils.ValidationError("scheduledDate must be a valid RFC 3339 date")
	}
	if !scheduled.After(s.now()) {
		return nil, utils.ValidationError("scheduledDate must be in the future")
	}

	urgency := in.Urgency
	if urgency == "" {
		urgency = models.UrgencyStandard
	}
	if !models.IsValidUrgency(urgency) {
		return nil, utils.ValidationError("urgency must be one of: LOW, STANDARD, HIGH, EMERGENCY")
	}

	// Resolve the service; inactive services are not bookable.
	svc, err := s.Catalog.GetByID(ctx, in.ServiceID)
	if err != nil {
		if utils.KindOf(err) == utils.KindNotFound {
			return nil, utils.NotFoundError("service not found or inactive")
		}
		return nil, err
	}
	if svc.ProviderID == clientID {
		return nil, utils.ValidationError("providers cannot book their own services")
	}

	now := s.now().UTC()
	booking := &models.Booking{
		ID:             uuid.New().String(),
		ClientID:       clientID,
		ClientName:     clientName,
		ProviderID:     svc.ProviderID,
		ServiceID:      svc.ID,
		ServiceTitle:   svc.Title,
		ServicePrice:   svc.Price,
		Status:         models.StatusPending,
		ScheduledDate:  scheduled.UTC(),
		ClientLocation: in.ClientLocation,
		Urgency:        urgency,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.CreateExclusive(ctx, booking, !s.AllowDuplicateSlots); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
			return nil, utils.ConflictError("an active booking already exists for that service at the requested time")
		}
		return nil, utils.WrapInternal("failed to create booking", err)
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("serviceId", booking.ServiceID),
		zap.String("clientId", clientID),
		zap.Time("scheduledDate", booking.ScheduledDate))
	return booking, nil
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string, actingUser models.AuthUser) (*models.Booking, error) {
	if id == "" {
		return nil, utils.ValidationError("booking ID is required")
	}
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.WrapInternal("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("booking not found")
	}
	if booking.ClientID != actingUser.ID && booking.ProviderID != actingUser.ID && actingUser.Role != models.RoleAdmin {
		return nil, utils.AuthorizationError("unauthorized access to this booking")
	}
	return booking, nil
}

func (s *DefaultBookingService) GetForUser(ctx context.Context, actingUser models.AuthUser, page models.PageOptions) ([]models.Booking, models.Pagination, error) {
	page, ok := page.Normalized()
	if !ok {
		return nil, models.Pagination{}, utils.ValidationError("limit must be between 1 and 100")
	}

	var (
		bookings []models.Booking
		hasMore  bool
		err      error
	)
	switch actingUser.Role {
	case models.RoleClient:
		bookings, hasMore, err = s.Repo.ListByClient(ctx, actingUser.ID, page)
	case models.RoleProvider:
		bookings, hasMore, err = s.Repo.ListByProvider(ctx, actingUser.ID, page)
	default:
		return nil, models.Pagination{}, utils.AuthorizationError("unauthorized role for retrieving bookings")
	}
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			return nil, models.Pagination{}, utils.ValidationError("invalid startAfter parameter")
		}
		return nil, models.Pagination{}, utils.WrapInternal("failed to list bookings", err)
	}

	p := models.Pagination{Limit: page.Limit, HasMore: hasMore}
	if hasMore && len(bookings) > 0 {
		p.NextPageStartAfter = bookings[len(bookings)-1].ID
	}
	return bookings, p, nil
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, actingUser models.AuthUser, newStatus models.BookingStatus) (*models.Booking, error) {
	if bookingID == "" {
		return nil, utils.ValidationError("booking ID is required")
	}
	if !newStatus.IsValid() {
		return nil, utils.ValidationError("invalid status %q", string(newStatus))
	}

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.WrapInternal("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("booking not found")
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, utils.InvalidTransitionError(string(booking.Status), string(newStatus))
	}

	// Providers accept, decline and complete; clients cancel.
	switch newStatus {
	case models.StatusAccepted, models.StatusCompleted, models.StatusDeclined:
		if actingUser.ID != booking.ProviderID {
			return nil, utils.AuthorizationError("only the service provider can perform this action")
		}
	case models.StatusCancelled:
		if actingUser.ID != booking.ClientID {
			return nil, utils.AuthorizationError("only the booking client can cancel this booking")
		}
	}

	updated, err := s.Repo.UpdateStatus(ctx, bookingID, booking.Status, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Compare-and-set miss: the booking vanished or another writer
			// moved the status first. Re-read to report which.
			current, ferr := s.Repo.GetByID(ctx, bookingID)
			if ferr == nil && current != nil {
				return nil, utils.InvalidTransitionError(string(current.Status), string(newStatus))
			}
			return nil, utils.NotFoundError("booking not found")
		}
		return nil, utils.WrapInternal("failed to update booking status", err)
	}

	utils.GetLogger().Info("booking status updated",
		zap.String("bookingId", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(newStatus)),
		zap.String("actorId", actingUser.ID))
	return updated, nil
}

func (s *DefaultBookingService) UpdateProviderLocation(ctx context.Context, bookingID string, actingUser models.AuthUser, loc models.GeoPoint) error {
	if bookingID == "" {
		return utils.ValidationError("booking ID is required")
	}

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return utils.WrapInternal("failed to fetch booking", err)
	}
	if booking == nil {
		return utils.NotFoundError("booking not found")
	}
	if booking.ProviderID != actingUser.ID {
		return utils.AuthorizationError("only the booking provider can update the location")
	}

	if err := s.Repo.SetProviderLocation(ctx, bookingID, loc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFoundError("booking not found")
		}
		return utils.WrapInternal("failed to update provider location", err)
	}
	return nil
}
