package service

import (
	"context"
	"fmt"

	"pourpal/internal/model"
	"pourpal/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService for brands, types and countries.
type catalogService struct {
	brandRepo   repository.BrandRepository
	typeRepo    repository.TypeRepository
	countryRepo repository.CountryRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a reference-data service.
func NewCatalogService(
	brandRepo repository.BrandRepository,
	typeRepo repository.TypeRepository,
	countryRepo repository.CountryRepository,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		brandRepo:   brandRepo,
		typeRepo:    typeRepo,
		countryRepo: countryRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) ListBrands(ctx context.Context) ([]model.Brand, error) {
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, name string) (*model.Brand, error) {
	if name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Brand name is required")
	}

	existing, err := s.brandRepo.FindByName(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	if existing != nil {
		return nil, model.ErrBrandExists
	}

	brand := model.NewBrand(name)
	if err := s.brandRepo.Insert(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.logger.Info().Str("brand_id", brand.BrandID).Str("brand", name).Msg("brand created")
	return brand, nil
}

func (s *catalogService) RenameBrand(ctx context.Context, brandID, name string) error {
	if name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Brand name is required")
	}

	existing, err := s.brandRepo.FindByName(ctx, name, brandID)
	if err != nil {
		return fmt.Errorf("failed to rename brand: %w", err)
	}
	if existing != nil {
		return model.ErrBrandExists
	}

	return s.brandRepo.UpdateName(ctx, brandID, name)
}

func (s *catalogService) DeleteBrand(ctx context.Context, brandID string) error {
	return s.brandRepo.Delete(ctx, brandID)
}

func (s *catalogService) ListTypes(ctx context.Context) ([]model.BeverageType, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list types: %w", err)
	}
	return types, nil
}

func (s *catalogService) CreateType(ctx context.Context, name string) (*model.BeverageType, error) {
	if name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Type name is required")
	}

	existing, err := s.typeRepo.FindByName(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create type: %w", err)
	}
	if existing != nil {
		return nil, model.ErrTypeExists
	}

	bt := model.NewBeverageType(name)
	if err := s.typeRepo.Insert(ctx, bt); err != nil {
		return nil, fmt.Errorf("failed to create type: %w", err)
	}

	s.logger.Info().Str("type_id", bt.TypeID).Str("type", name).Msg("beverage type created")
	return bt, nil
}

func (s *catalogService) RenameType(ctx context.Context, typeID, name string) error {
	if name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Type name is required")
	}

	existing, err := s.typeRepo.FindByName(ctx, name, typeID)
	if err != nil {
		return fmt.Errorf("failed to rename type: %w", err)
	}
	if existing != nil {
		return model.ErrTypeExists
	}

	return s.typeRepo.UpdateName(ctx, typeID, name)
}

func (s *catalogService) DeleteType(ctx context.Context, typeID string) error {
	return s.typeRepo.Delete(ctx, typeID)
}

func (s *catalogService) ListCountries(ctx context.Context) ([]model.Country, error) {
	countries, err := s.countryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}
