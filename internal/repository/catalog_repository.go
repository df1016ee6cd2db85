package repository

import (
	"context"
	"errors"
	"fmt"

	"pourpal/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// brandRepository implements BrandRepository against the beverage_brands
// collection.
type brandRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewBrandRepository creates a MongoDB-backed brand repository.
func NewBrandRepository(db *mongo.Database, logger zerolog.Logger) BrandRepository {
	return &brandRepository{
		collection: db.Collection("beverage_brands"),
		logger:     logger.With().Str("repository", "brand").Logger(),
	}
}

func (r *brandRepository) List(ctx context.Context) ([]model.Brand, error) {
	opts := options.Find().SetSort(bson.D{{Key: "brand", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query brands")
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer cursor.Close(ctx)

	brands := []model.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, fmt.Errorf("failed to decode brands: %w", err)
	}
	return brands, nil
}

func (r *brandRepository) FindByName(ctx context.Context, name, excludeID string) (*model.Brand, error) {
	filter := bson.M{"brand": name}
	if excludeID != "" {
		filter["brand_id"] = bson.M{"$ne": excludeID}
	}

	var brand model.Brand
	err := r.collection.FindOne(ctx, filter).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query brand by name: %w", err)
	}
	return &brand, nil
}

func (r *brandRepository) FindByID(ctx context.Context, brandID string) (*model.Brand, error) {
	var brand model.Brand
	err := r.collection.FindOne(ctx, bson.M{"brand_id": brandID}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}
	return &brand, nil
}

func (r *brandRepository) Insert(ctx context.Context, brand *model.Brand) error {
	if _, err := r.collection.InsertOne(ctx, brand); err != nil {
		r.logger.Error().Err(err).Str("brand_id", brand.BrandID).Msg("failed to insert brand")
		return fmt.Errorf("failed to insert brand: %w", err)
	}
	return nil
}

func (r *brandRepository) UpdateName(ctx context.Context, brandID, name string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"brand_id": brandID},
		bson.M{"$set": bson.M{"brand": name}},
	)
	if err != nil {
		r.logger.Error().Err(err).Str("brand_id", brandID).Msg("failed to update brand")
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrBrandNotFound
	}
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, brandID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"brand_id": brandID})
	if err != nil {
		r.logger.Error().Err(err).Str("brand_id", brandID).Msg("failed to delete brand")
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrBrandNotFound
	}
	return nil
}

// typeRepository implements TypeRepository against the beverage_types
// collection.
type typeRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewTypeRepository creates a MongoDB-backed beverage type repository.
func NewTypeRepository(db *mongo.Database, logger zerolog.Logger) TypeRepository {
	return &typeRepository{
		collection: db.Collection("beverage_types"),
		logger:     logger.With().Str("repository", "type").Logger(),
	}
}

func (r *typeRepository) List(ctx context.Context) ([]model.BeverageType, error) {
	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query types")
		return nil, fmt.Errorf("failed to query types: %w", err)
	}
	defer cursor.Close(ctx)

	types := []model.BeverageType{}
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode types: %w", err)
	}
	return types, nil
}

func (r *typeRepository) FindByName(ctx context.Context, name, excludeID string) (*model.BeverageType, error) {
	filter := bson.M{"type": name}
	if excludeID != "" {
		filter["type_id"] = bson.M{"$ne": excludeID}
	}

	var bt model.BeverageType
	err := r.collection.FindOne(ctx, filter).Decode(&bt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query type by name: %w", err)
	}
	return &bt, nil
}

func (r *typeRepository) FindByID(ctx context.Context, typeID string) (*model.BeverageType, error) {
	var bt model.BeverageType
	err := r.collection.FindOne(ctx, bson.M{"type_id": typeID}).Decode(&bt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query type: %w", err)
	}
	return &bt, nil
}

func (r *typeRepository) Insert(ctx context.Context, bt *model.BeverageType) error {
	if _, err := r.collection.InsertOne(ctx, bt); err != nil {
		r.logger.Error().Err(err).Str("type_id", bt.TypeID).Msg("failed to insert type")
		return fmt.Errorf("failed to insert type: %w", err)
	}
	return nil
}

func (r *typeRepository) UpdateName(ctx context.Context, typeID, name string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"type_id": typeID},
		bson.M{"$set": bson.M{"type": name}},
	)
	if err != nil {
		r.logger.Error().Err(err).Str("type_id", typeID).Msg("failed to update type")
		return fmt.Errorf("failed to update type: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrTypeNotFound
	}
	return nil
}

func (r *typeRepository) Delete(ctx context.Context, typeID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"type_id": typeID})
	if err != nil {
		r.logger.Error().Err(err).Str("type_id", typeID).Msg("failed to delete type")
		return fmt.Errorf("failed to delete type: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrTypeNotFound
	}
	return nil
}

// countryRepository implements CountryRepository against the countries
// collection.
type countryRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

// NewCountryRepository creates a MongoDB-backed country repository.
func NewCountryRepository(db *mongo.Database, logger zerolog.Logger) CountryRepository {
	return &countryRepository{
		collection: db.Collection("countries"),
		logger:     logger.With().Str("repository", "country").Logger(),
	}
}

func (r *countryRepository) List(ctx context.Context) ([]model.Country, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query countries")
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer cursor.Close(ctx)

	countries := []model.Country{}
	if err := cursor.All(ctx, &countries); err != nil {
		return nil, fmt.Errorf("failed to decode countries: %w", err)
	}
	return countries, nil
}

func (r *countryRepository) FindByCode(ctx context.Context, code string) (*model.Country, error) {
	var country model.Country
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&country)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query country: %w", err)
	}
	return &country, nil
}

func (r *countryRepository) Upsert(ctx context.Context, country *model.Country) error {
	filter := bson.M{"code": country.Code}
	update := bson.M{"$set": country}
	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		r.logger.Error().Err(err).Str("code", country.Code).Msg("failed to upsert country")
		return fmt.Errorf("failed to upsert country: %w", err)
	}
	return nil
}
