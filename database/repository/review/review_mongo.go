package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jenga/database"
	"jenga/database/repository"
	"jenga/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll        *mongo.Collection
	bookingColl *mongo.Collection
	serviceColl *mongo.Collection
}

// NewMongoReviewRepo creates a new ReviewRepository backed by the "reviews"
// collection. The booking and service collections participate in the
// creation transaction.
func NewMongoReviewRepo() ReviewRepository {
	return &MongoReviewRepo{
		coll:        database.Collection("reviews"),
		bookingColl: database.Collection("bookings"),
		serviceColl: database.Collection("services"),
	}
}

func (r *MongoReviewRepo) CreateWithAggregation(ctx context.Context, review *models.Review) (*models.CreatedReview, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var created *models.CreatedReview
	client := r.coll.Database().Client()

	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		var booking models.Booking
		err := r.bookingColl.FindOne(sc, bson.M{"id": review.BookingID}).Decode(&booking)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to fetch booking %s: %w", review.BookingID, err)
		}

		if booking.ClientID != review.ClientID {
			return ErrNotBookingClient
		}
		if booking.Status != models.StatusCompleted {
			return ErrBookingNotCompleted
		}

		count, err := r.coll.CountDocuments(sc, bson.M{"booking_id": review.BookingID}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("duplicate review check failed: %w", err)
		}
		if count > 0 {
			return ErrDuplicateReview
		}

		var service models.Service
		err = r.serviceColl.FindOne(sc, bson.M{"id": booking.ServiceID}).Decode(&service)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Possible when the service was hard deleted after the booking.
			return ErrServiceNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to fetch service %s: %w", booking.ServiceID, err)
		}

		newCount := service.ReviewsCount + 1
		newAverage := models.NewRatingAverage(service.RatingAverage, service.ReviewsCount, review.Rating)

		review.ServiceID = booking.ServiceID
		review.ProviderID = booking.ProviderID
		if review.ClientName == "" {
			review.ClientName = booking.ClientName
		}

		if _, err := r.coll.InsertOne(sc, review); err != nil {
			return fmt.Errorf("insert review failed: %w", err)
		}

		update := bson.M{"$set": bson.M{
			"rating_average": newAverage,
			"reviews_count":  newCount,
			"updated_at":     time.Now().UTC(),
		}}
		if _, err := r.serviceColl.UpdateOne(sc, bson.M{"id": service.ID}, update); err != nil {
			return fmt.Errorf("update service rating failed: %w", err)
		}

		created = &models.CreatedReview{Review: *review, RatingAverage: newAverage}
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Unique booking_id index backstop for concurrent writers.
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return created, nil
}

func (r *MongoReviewRepo) ListByService(ctx context.Context, serviceID string, page models.PageOptions) ([]models.Review, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{"service_id": serviceID}
	if page.StartAfter != "" {
		var cursorDoc models.Review
		err := r.coll.FindOne(ctx, bson.M{"id": page.StartAfter}).Decode(&cursorDoc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, repository.ErrInvalidCursor
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve cursor %s: %w", page.StartAfter, err)
		}
		query = bson.M{"$and": bson.A{query, repository.CursorFilter("created_at", cursorDoc.CreatedAt, cursorDoc.ID)}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}}).
		SetLimit(int64(page.Limit) + 1)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, false, fmt.Errorf("review list query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, false, fmt.Errorf("failed to decode reviews: %w", err)
	}

	hasMore := len(reviews) > page.Limit
	if hasMore {
		reviews = reviews[:page.Limit]
	}
	return reviews, hasMore, nil
}

// EnsureIndexes creates the collection's indexes. booking_id is unique: one
// review per booking, enforced at the store level as well.
func (r *MongoReviewRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
