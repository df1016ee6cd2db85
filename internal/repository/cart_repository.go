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

// cartRepository implements CartRepository against the carts collection.
type cartRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewCartRepository creates a MongoDB-backed cart repository.
func NewCartRepository(db *mongo.Database, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		collection: db.Collection("carts"),
		logger:     logger.With().Str("repository", "cart").Logger(),
	}
}

// FindByID retrieves a cart by its identifier, or nil when absent.
func (r *cartRepository) FindByID(ctx context.Context, cartID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.collection.FindOne(ctx, bson.M{"cart_id": cartID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("cart_id", cartID).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	return &cart, nil
}

// Insert persists a freshly created cart.
func (r *cartRepository) Insert(ctx context.Context, cart *model.Cart) error {
	if _, err := r.collection.InsertOne(ctx, cart); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.CartID).Msg("failed to insert cart")
		return fmt.Errorf("failed to insert cart: %w", err)
	}

	r.logger.Debug().Str("cart_id", cart.CartID).Msg("cart created")
	return nil
}

// UpdateItems replaces the cart's line items and refreshes its expiration and
// updated_at timestamps.
func (r *cartRepository) UpdateItems(ctx context.Context, cartID string, items []model.CartItem, expiration time.Time) error {
	update := bson.M{"$set": bson.M{
		"cart_items":      items,
		"updated_at":      time.Now().UTC(),
		"expiration_time": expiration,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"cart_id": cartID}, update)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to update cart items")
		return fmt.Errorf("failed to update cart items: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrCartNotFound
	}
	return nil
}

// UpdateExpiration slides the cart's expiration forward.
func (r *cartRepository) UpdateExpiration(ctx context.Context, cartID string, expiration time.Time) error {
	update := bson.M{"$set": bson.M{
		"updated_at":      time.Now().UTC(),
		"expiration_time": expiration,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"cart_id": cartID}, update)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to refresh cart expiration")
		return fmt.Errorf("failed to refresh cart expiration: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrCartNotFound
	}
	return nil
}

// Delete removes a cart. Deleting an absent cart is not an error.
func (r *cartRepository) Delete(ctx context.Context, cartID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"cart_id": cartID}); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// EnsureCartIndexes creates the cart collection indexes: a unique identifier
// index and a TTL index so MongoDB eventually sweeps expired documents. The
// service layer still checks expiration_time on read, because the TTL sweep
// is lazy.
func EnsureCartIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cart_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiration_time", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	if _, err := db.Collection("carts").Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
