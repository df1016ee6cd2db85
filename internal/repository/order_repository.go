package repository

import (
	"context"
	"fmt"

	"pourpal/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// orderNumberWidth is the zero-padded width of human-readable order numbers.
const orderNumberWidth = 9

// orderRepository implements OrderRepository against the orders and counters
// collections.
type orderRepository struct {
	orders   *mongo.Collection
	counters *mongo.Collection
	logger   zerolog.Logger
}

// NewOrderRepository creates a MongoDB-backed order repository.
func NewOrderRepository(db *mongo.Database, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		orders:   db.Collection("orders"),
		counters: db.Collection("counters"),
		logger:   logger.With().Str("repository", "order").Logger(),
	}
}

// NextOrderNumber allocates the next sequential order number from a counter
// document in a single atomic increment-and-return, so concurrent checkouts
// cannot observe the same value.
func (r *orderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	filter := bson.M{"_id": "order_number"}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		r.logger.Error().Err(err).Msg("failed to allocate order number")
		return "", fmt.Errorf("failed to allocate order number: %w", err)
	}

	return fmt.Sprintf("%0*d", orderNumberWidth, counter.Seq), nil
}

// Insert persists a new order.
func (r *orderRepository) Insert(ctx context.Context, order *model.Order) error {
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.OrderID).
		Str("order_number", order.OrderNumber).
		Msg("order created")

	return nil
}

// List retrieves one page of orders sorted by creation time descending. A
// non-nil userID restricts to that user's orders.
func (r *orderRepository) List(ctx context.Context, userID *string, page model.PageRequest) ([]model.Order, int64, error) {
	query := bson.M{}
	if userID != nil {
		query["user_id"] = *userID
	}

	total, err := r.orders.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.PageSize))

	cursor, err := r.orders.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []model.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode orders")
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, total, nil
}

// EnsureOrderIndexes creates the order collection indexes.
func EnsureOrderIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "order_number", Value: -1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}

	if _, err := db.Collection("orders").Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}
