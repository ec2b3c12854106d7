package serviceRepo

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

// Field names the list operation may order by, mapped to their bson keys.
var orderFields = map[string]string{
	"createdAt":     "created_at",
	"ratingAverage": "rating_average",
}

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new ServiceRepository backed by the
// "services" collection.
func NewMongoServiceRepo() ServiceRepository {
	return &MongoServiceRepo{coll: database.Collection("services")}
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoServiceRepo) List(ctx context.Context, filter models.ServiceListFilter, page models.PageOptions) ([]models.Service, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	orderField, ok := orderFields[filter.OrderBy]
	if !ok {
		orderField = "created_at"
	}

	query := bson.M{"is_active": true}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	return r.findPage(ctx, query, orderField, page)
}

func (r *MongoServiceRepo) ListByProvider(ctx context.Context, providerID string, includeInactive bool, page models.PageOptions) ([]models.Service, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{"provider_id": providerID}
	if !includeInactive {
		query["is_active"] = true
	}
	return r.findPage(ctx, query, "created_at", page)
}

// findPage runs a descending cursor-paginated query. It fetches one extra
// document to learn whether another page exists.
func (r *MongoServiceRepo) findPage(ctx context.Context, query bson.M, orderField string, page models.PageOptions) ([]models.Service, bool, error) {
	if page.StartAfter != "" {
		var cursorDoc models.Service
		err := r.coll.FindOne(ctx, bson.M{"id": page.StartAfter}).Decode(&cursorDoc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, repository.ErrInvalidCursor
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve cursor %s: %w", page.StartAfter, err)
		}
		sortValue := interface{}(cursorDoc.CreatedAt)
		if orderField == "rating_average" {
			sortValue = cursorDoc.RatingAverage
		}
		query = bson.M{"$and": bson.A{query, repository.CursorFilter(orderField, sortValue, cursorDoc.ID)}}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: orderField, Value: -1}, {Key: "id", Value: -1}}).
		SetLimit(int64(page.Limit) + 1)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, false, fmt.Errorf("service list query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, false, fmt.Errorf("failed to decode services: %w", err)
	}

	hasMore := len(services) > page.Limit
	if hasMore {
		services = services[:page.Limit]
	}
	return services, hasMore, nil
}

func (r *MongoServiceRepo) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) UpdateFields(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updated_at"] = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoServiceRepo) UpdateRating(ctx context.Context, id string, ratingAverage float64, reviewsCount int) error {
	return r.UpdateFields(ctx, id, bson.M{
		"rating_average": ratingAverage,
		"reviews_count":  reviewsCount,
	})
}

// EnsureIndexes creates indexes for the fields the catalog queries on.
func (r *MongoServiceRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "rating_average", Value: -1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "price", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	return nil
}
