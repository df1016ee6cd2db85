package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pourpal/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userRepository implements UserRepository against the users collection.
type userRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewUserRepository creates a MongoDB-backed user repository.
func NewUserRepository(db *mongo.Database, logger zerolog.Logger) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
		logger:     logger.With().Str("repository", "user").Logger(),
	}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, user *model.User) error {
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		r.logger.Error().Err(err).Str("user_id", user.UserID).Msg("failed to insert user")
		return fmt.Errorf("failed to insert user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.UserID).Str("role", user.Role).Msg("user created")
	return nil
}

// RecordLogin appends a login record to the user's authorization history.
func (r *userRepository) RecordLogin(ctx context.Context, userID string, rec model.LoginRecord) error {
	update := bson.M{
		"$push": bson.M{"authorizations": rec},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to record login")
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// EnsureUserIndexes creates the user collection indexes.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := db.Collection("users").Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
