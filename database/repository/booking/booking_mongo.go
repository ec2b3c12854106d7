package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by the
// "bookings" collection.
func NewMongoBookingRepo() BookingRepository {
	return &MongoBookingRepo{coll: database.Collection("bookings")}
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// CreateExclusive inserts the booking after a duplicate check in the same
// transaction. The snapshot read alone cannot stop two transactions from both
// inserting distinct documents, so the rejection of the second concurrent
// writer rests on the partial unique index over active (service_id,
// scheduled_date) slots; that loser surfaces as a duplicate key error. The
// $in partial filter form requires MongoDB 6.0 or newer.
func (r *MongoBookingRepo) CreateExclusive(ctx context.Context, booking *models.Booking, preventDuplicate bool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if !preventDuplicate {
		if _, err := r.coll.InsertOne(ctx, booking); err != nil {
			return fmt.Errorf("error creating booking: %w", err)
		}
		return nil
	}

	client := r.coll.Database().Client()
	err := database.WithTransaction(ctx, client, func(sc mongo.SessionContext) error {
		filter := bson.M{
			"service_id":     booking.ServiceID,
			"scheduled_date": booking.ScheduledDate,
			"status":         bson.M{"$in": models.ActiveStatuses()},
		}
		count, err := r.coll.CountDocuments(sc, filter, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("duplicate booking check failed: %w", err)
		}
		if count > 0 {
			return ErrDuplicateSlot
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateSlot) {
			return ErrDuplicateSlot
		}
		if mongo.IsDuplicateKeyError(err) {
			// Second concurrent writer, rejected by the active-slot index.
			return ErrDuplicateSlot
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) ListByClient(ctx context.Context, clientID string, page models.PageOptions) ([]models.Booking, bool, error) {
	return r.findPage(ctx, bson.M{"client_id": clientID}, page)
}

func (r *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string, page models.PageOptions) ([]models.Booking, bool, error) {
	return r.findPage(ctx, bson.M{"provider_id": providerID}, page)
}

func (r *MongoBookingRepo) findPage(ctx context.Context, query bson.M, page models.PageOptions) ([]models.Booking, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if page.StartAfter != "" {
		var cursorDoc models.Booking
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
		return nil, false, fmt.Errorf("booking list query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, false, fmt.Errorf("failed to decode bookings: %w", err)
	}

	hasMore := len(bookings) > page.Limit
	if hasMore {
		bookings = bookings[:page.Limit]
	}
	return bookings, hasMore, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "status": from}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking %s: %w", id, err)
	}
	return &updated, nil
}

func (r *MongoBookingRepo) SetProviderLocation(ctx context.Context, id string, loc models.GeoPoint) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"provider_location": loc, "updated_at": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking location %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) ExistsForService(ctx context.Context, serviceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"service_id": serviceID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check bookings for service %s: %w", serviceID, err)
	}
	return count > 0, nil
}

// EnsureIndexes creates the collection's indexes, including the partial
// unique index over active bookings that backstops CreateExclusive.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	activeSlotOpts := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{
			"status": bson.M{"$in": models.ActiveStatuses()},
		})

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "service_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "scheduled_date", Value: 1}},
			Options: activeSlotOpts,
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
