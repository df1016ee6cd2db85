package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pourpal/internal/model"
	"pourpal/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// itemService implements ItemService.
type itemService struct {
	itemRepo    repository.ItemRepository
	brandRepo   repository.BrandRepository
	typeRepo    repository.TypeRepository
	countryRepo repository.CountryRepository
	logger      zerolog.Logger
}

// NewItemService creates a catalog item service.
func NewItemService(
	itemRepo repository.ItemRepository,
	brandRepo repository.BrandRepository,
	typeRepo repository.TypeRepository,
	countryRepo repository.CountryRepository,
	logger zerolog.Logger,
) ItemService {
	return &itemService{
		itemRepo:    itemRepo,
		brandRepo:   brandRepo,
		typeRepo:    typeRepo,
		countryRepo: countryRepo,
		logger:      logger.With().Str("service", "item").Logger(),
	}
}

// List retrieves one page of catalog items.
func (s *itemService) List(ctx context.Context, filter model.ItemFilter, page model.PageRequest) (*model.ItemPage, error) {
	page = page.Normalize()

	items, total, err := s.itemRepo.List(ctx, filter, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list items")
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return &model.ItemPage{
		Items:  items,
		Paging: model.NewPaging(len(items), page, total),
	}, nil
}

// Get retrieves a single item, or nil when absent.
func (s *itemService) Get(ctx context.Context, itemID string) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Create validates the item's brand/type/country references, generates its
// SKU and persists it.
func (s *itemService) Create(ctx context.Context, req *model.ItemRequest) (*model.Item, error) {
	refs, err := s.validateRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	item, err := buildItem(model.NewItemID(), req, refs)
	if err != nil {
		return nil, err
	}
	item.SKU = generateSKU(refs.bt.Type)

	if err := s.itemRepo.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info().Str("item_id", item.ItemID).Str("title", item.Title).Msg("item created")
	return item, nil
}

// Update replaces an item's mutable fields, preserving its SKU and added_at.
func (s *itemService) Update(ctx context.Context, itemID string, req *model.ItemRequest) error {
	existing, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if existing == nil {
		return model.ErrItemNotFound
	}

	refs, err := s.validateRefs(ctx, req)
	if err != nil {
		return err
	}

	item, err := buildItem(itemID, req, refs)
	if err != nil {
		return err
	}
	item.SKU = existing.SKU
	item.AddedAt = existing.AddedAt

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return err
	}

	s.logger.Info().Str("item_id", itemID).Msg("item updated")
	return nil
}

// Delete removes an item from the catalog.
func (s *itemService) Delete(ctx context.Context, itemID string) error {
	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.logger.Info().Str("item_id", itemID).Msg("item deleted")
	return nil
}

// itemRefs holds the resolved reference documents an item points at.
type itemRefs struct {
	bt      *model.BeverageType
	brand   *model.Brand
	country *model.Country
}

// validateRefs resolves the type, brand and country an item request names.
func (s *itemService) validateRefs(ctx context.Context, req *model.ItemRequest) (*itemRefs, error) {
	if req.Title == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Item title is required")
	}
	if req.Quantity < 0 {
		return nil, model.NewDomainError(model.ErrCodeInvalidQuantity, "Quantity cannot be negative")
	}

	bt, err := s.typeRepo.FindByID(ctx, req.TypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate type: %w", err)
	}
	if bt == nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidReference, "Unknown beverage type")
	}

	brand, err := s.brandRepo.FindByID(ctx, req.BrandID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate brand: %w", err)
	}
	if brand == nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidReference, "Unknown brand")
	}

	country, err := s.countryRepo.FindByCode(ctx, req.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to validate country: %w", err)
	}
	if country == nil {
		return nil, model.NewDomainError(model.ErrCodeInvalidReference, "Unknown country of origin")
	}

	return &itemRefs{bt: bt, brand: brand, country: country}, nil
}

// buildItem assembles an item document from a validated request.
func buildItem(itemID string, req *model.ItemRequest, refs *itemRefs) (*model.Item, error) {
	price, err := model.NewMoney(req.Price.Amount, req.Price.Currency)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("Invalid price: %v", err))
	}

	volume, err := parseVolume(req.Volume)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("Invalid volume: %v", err))
	}

	abv, err := parseVolume(req.AlcoholVolume)
	if err != nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("Invalid alcohol volume: %v", err))
	}

	now := time.Now().UTC()
	return &model.Item{
		ItemID:            itemID,
		Title:             req.Title,
		ImageURL:          req.ImageURL,
		Description:       req.Description,
		TypeID:            refs.bt.TypeID,
		TypeName:          refs.bt.Type,
		Price:             price,
		Volume:            volume,
		AlcoholVolume:     abv,
		Quantity:          req.Quantity,
		OriginCountryCode: refs.country.Code,
		OriginCountryName: refs.country.Name,
		BrandID:           refs.brand.BrandID,
		BrandName:         refs.brand.Brand,
		UpdatedAt:         now,
		AddedAt:           now,
	}, nil
}

func parseVolume(in model.VolumeInput) (model.Volume, error) {
	if !model.ValidVolumeUnit(in.Unit) {
		return model.Volume{}, fmt.Errorf("unsupported unit %q", in.Unit)
	}
	amount, err := model.ParseDecimal(in.Amount)
	if err != nil {
		return model.Volume{}, err
	}
	return model.Volume{Amount: amount, Unit: in.Unit}, nil
}

// generateSKU derives a human-scannable stock keeping unit from the beverage
// type, e.g. "WHI-3F2A9C1B".
func generateSKU(typeName string) string {
	prefix := strings.ToUpper(strings.ReplaceAll(typeName, " ", ""))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return prefix + "-" + suffix
}
