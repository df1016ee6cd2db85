package repository

import (
	"context"
	"errors"
	"fmt"

	"pourpal/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// itemRepository implements ItemRepository against the items collection.
type itemRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewItemRepository creates a MongoDB-backed catalog item repository.
func NewItemRepository(db *mongo.Database, logger zerolog.Logger) ItemRepository {
	return &itemRepository{
		collection: db.Collection("items"),
		logger:     logger.With().Str("repository", "item").Logger(),
	}
}

// sortFields maps listing sort keys to document fields.
var sortFields = map[string]string{
	"sku":      "sku",
	"title":    "title",
	"type":     "type_name",
	"brand":    "brand_name",
	"country":  "origin_country_name",
	"quantity": "quantity",
	"price":    "price.amount",
}

// buildListQuery translates an ItemFilter into a MongoDB filter document.
func buildListQuery(filter model.ItemFilter) (bson.M, error) {
	query := bson.M{}

	if filter.Search != "" {
		query["title"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}
	if len(filter.TypeIDs) > 0 {
		query["type_id"] = bson.M{"$in": filter.TypeIDs}
	}
	if len(filter.CountryCodes) > 0 {
		query["origin_country_code"] = bson.M{"$in": filter.CountryCodes}
	}
	if len(filter.BrandIDs) > 0 {
		query["brand_id"] = bson.M{"$in": filter.BrandIDs}
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		priceQuery := bson.M{}
		if filter.MinPrice != nil {
			min, err := primitive.ParseDecimal128(filter.MinPrice.String())
			if err != nil {
				return nil, fmt.Errorf("invalid min price: %w", err)
			}
			priceQuery["$gte"] = min
		}
		if filter.MaxPrice != nil {
			max, err := primitive.ParseDecimal128(filter.MaxPrice.String())
			if err != nil {
				return nil, fmt.Errorf("invalid max price: %w", err)
			}
			priceQuery["$lte"] = max
		}
		query["price.amount"] = priceQuery
	}

	return query, nil
}

// List retrieves one page of items matching the filter, plus the total match
// count.
func (r *itemRepository) List(ctx context.Context, filter model.ItemFilter, page model.PageRequest) ([]model.Item, int64, error) {
	query, err := buildListQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count items")
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Skip()).
		SetLimit(int64(page.PageSize))

	if field, ok := sortFields[filter.SortBy]; ok {
		direction := 1
		if filter.SortOrder == "desc" {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: field, Value: direction}})
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query items")
		return nil, 0, fmt.Errorf("failed to query items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []model.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode items")
		return nil, 0, fmt.Errorf("failed to decode items: %w", err)
	}

	return items, total, nil
}

// FindByID retrieves a single item, or nil when absent.
func (r *itemRepository) FindByID(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	err := r.collection.FindOne(ctx, bson.M{"item_id": itemID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("item_id", itemID).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}
	return &item, nil
}

// Insert persists a new catalog item.
func (r *itemRepository) Insert(ctx context.Context, item *model.Item) error {
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ItemID).Msg("failed to insert item")
		return fmt.Errorf("failed to insert item: %w", err)
	}

	r.logger.Debug().Str("item_id", item.ItemID).Str("sku", item.SKU).Msg("item created")
	return nil
}

// Update replaces an existing item's fields, keyed by item_id.
func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	update := bson.M{"$set": bson.M{
		"sku":                 item.SKU,
		"title":               item.Title,
		"image_url":           item.ImageURL,
		"description":         item.Description,
		"type_id":             item.TypeID,
		"type_name":           item.TypeName,
		"price":               item.Price,
		"volume":              item.Volume,
		"alcohol_volume":      item.AlcoholVolume,
		"quantity":            item.Quantity,
		"origin_country_code": item.OriginCountryCode,
		"origin_country_name": item.OriginCountryName,
		"brand_id":            item.BrandID,
		"brand_name":          item.BrandName,
		"updated_at":          item.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"item_id": item.ItemID}, update)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ItemID).Msg("failed to update item")
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

// Delete removes an item.
func (r *itemRepository) Delete(ctx context.Context, itemID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"item_id": itemID})
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

// DecrementStock atomically subtracts n from the item's stock. The filter
// requires quantity >= n, so a concurrent checkout cannot drive stock
// negative.
func (r *itemRepository) DecrementStock(ctx context.Context, itemID string, n int) error {
	filter := bson.M{
		"item_id":  itemID,
		"quantity": bson.M{"$gte": n},
	}
	update := bson.M{"$inc": bson.M{"quantity": -n}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID).Int("n", n).Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.MatchedCount == 0 {
		r.logger.Warn().Str("item_id", itemID).Int("n", n).Msg("stock decrement rejected")
		return ErrStockConflict
	}
	return nil
}

// IncrementStock adds n back to the item's stock.
func (r *itemRepository) IncrementStock(ctx context.Context, itemID string, n int) error {
	update := bson.M{"$inc": bson.M{"quantity": n}}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"item_id": itemID}, update); err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID).Int("n", n).Msg("failed to increment stock")
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	return nil
}

// EnsureItemIndexes creates the item collection indexes.
func EnsureItemIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "item_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "title", Value: 1}},
		},
	}

	if _, err := db.Collection("items").Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create item indexes: %w", err)
	}
	return nil
}
