package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new UserRepository backed by the "users"
// collection.
func NewMongoUserRepo() UserRepository {
	return &MongoUserRepo{coll: database.Collection("users")}
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return &user, nil
}

func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) UpdateName(ctx context.Context, id, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) List(ctx context.Context, page models.PageOptions) ([]models.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if page.StartAfter != "" {
		var cursorDoc models.User
		err := r.coll.FindOne(ctx, bson.M{"id": page.StartAfter}).Decode(&cursorDoc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, repository.ErrInvalidCursor
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve cursor %s: %w", page.StartAfter, err)
		}
		query = repository.CursorFilter("created_at", cursorDoc.CreatedAt, cursorDoc.ID)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: -1}}).
		SetLimit(int64(page.Limit) + 1)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, false, fmt.Errorf("user list query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, false, fmt.Errorf("failed to decode users: %w", err)
	}

	hasMore := len(users) > page.Limit
	if hasMore {
		users = users[:page.Limit]
	}
	return users, hasMore, nil
}

func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
