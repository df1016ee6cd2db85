package service

import (
	"context"
	"strings"
	"testing"

	"pourpal/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func itemRequest() *model.ItemRequest {
	return &model.ItemRequest{
		Title:         "Lagavulin 16",
		Description:   "Islay single malt",
		TypeID:        "type-1",
		Price:         model.MoneyInput{Amount: "89.90", Currency: "€"},
		Volume:        model.VolumeInput{Amount: "0.7", Unit: "l"},
		AlcoholVolume: model.VolumeInput{Amount: "43", Unit: "%"},
		Quantity:      24,
		CountryCode:   "GB",
		BrandID:       "brand-1",
	}
}

func itemServiceMocks(t *testing.T) (*MockItemRepository, *MockBrandRepository, *MockTypeRepository, *MockCountryRepository, ItemService) {
	t.Helper()
	mockItems := new(MockItemRepository)
	mockBrands := new(MockBrandRepository)
	mockTypes := new(MockTypeRepository)
	mockCountries := new(MockCountryRepository)
	service := NewItemService(mockItems, mockBrands, mockTypes, mockCountries, zerolog.Nop())
	return mockItems, mockBrands, mockTypes, mockCountries, service
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	mockItems, mockBrands, mockTypes, mockCountries, service := itemServiceMocks(t)
	mockTypes.On("FindByID", ctx, "type-1").Return(&model.BeverageType{TypeID: "type-1", Type: "Whisky"}, nil)
	mockBrands.On("FindByID", ctx, "brand-1").Return(&model.Brand{BrandID: "brand-1", Brand: "Lagavulin"}, nil)
	mockCountries.On("FindByCode", ctx, "GB").Return(&model.Country{Code: "GB", Name: "United Kingdom"}, nil)
	mockItems.On("Insert", ctx, mock.AnythingOfType("*model.Item")).Return(nil)

	item, err := service.Create(ctx, itemRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, item.ItemID)
	assert.Equal(t, "Whisky", item.TypeName)
	assert.Equal(t, "Lagavulin", item.BrandName)
	assert.Equal(t, "United Kingdom", item.OriginCountryName)
	assert.Equal(t, "89.90", item.Price.Amount.StringFixed(2))
	assert.True(t, strings.HasPrefix(item.SKU, "WHI-"))

	mockItems.AssertExpectations(t)
}

func TestItemService_Create_UnknownType(t *testing.T) {
	ctx := context.Background()

	mockItems, _, mockTypes, _, service := itemServiceMocks(t)
	mockTypes.On("FindByID", ctx, "type-1").Return(nil, nil)

	item, err := service.Create(ctx, itemRequest())

	require.Error(t, err)
	assert.Nil(t, item)
	assert.EqualError(t, err, "Unknown beverage type")

	mockItems.AssertNotCalled(t, "Insert")
}

func TestItemService_Create_MissingTitle(t *testing.T) {
	ctx := context.Background()

	mockItems, _, mockTypes, _, service := itemServiceMocks(t)

	req := itemRequest()
	req.Title = ""

	item, err := service.Create(ctx, req)

	require.Error(t, err)
	assert.Nil(t, item)

	mockTypes.AssertNotCalled(t, "FindByID")
	mockItems.AssertNotCalled(t, "Insert")
}

func TestItemService_Create_InvalidVolumeUnit(t *testing.T) {
	ctx := context.Background()

	mockItems, mockBrands, mockTypes, mockCountries, service := itemServiceMocks(t)
	mockTypes.On("FindByID", ctx, "type-1").Return(&model.BeverageType{TypeID: "type-1", Type: "Whisky"}, nil)
	mockBrands.On("FindByID", ctx, "brand-1").Return(&model.Brand{BrandID: "brand-1", Brand: "Lagavulin"}, nil)
	mockCountries.On("FindByCode", ctx, "GB").Return(&model.Country{Code: "GB", Name: "United Kingdom"}, nil)

	req := itemRequest()
	req.Volume.Unit = "gal"

	item, err := service.Create(ctx, req)

	require.Error(t, err)
	assert.Nil(t, item)

	mockItems.AssertNotCalled(t, "Insert")
}

func TestItemService_Update_PreservesSKUAndAddedAt(t *testing.T) {
	ctx := context.Background()

	existing := &model.Item{ItemID: "item-1", SKU: "WHI-AAAA1111", Title: "Lagavulin 16"}

	mockItems, mockBrands, mockTypes, mockCountries, service := itemServiceMocks(t)
	mockItems.On("FindByID", ctx, "item-1").Return(existing, nil)
	mockTypes.On("FindByID", ctx, "type-1").Return(&model.BeverageType{TypeID: "type-1", Type: "Whisky"}, nil)
	mockBrands.On("FindByID", ctx, "brand-1").Return(&model.Brand{BrandID: "brand-1", Brand: "Lagavulin"}, nil)
	mockCountries.On("FindByCode", ctx, "GB").Return(&model.Country{Code: "GB", Name: "United Kingdom"}, nil)

	var updated *model.Item
	mockItems.On("Update", ctx, mock.AnythingOfType("*model.Item")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*model.Item)
		}).
		Return(nil)

	err := service.Update(ctx, "item-1", itemRequest())

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "WHI-AAAA1111", updated.SKU)
	assert.Equal(t, existing.AddedAt, updated.AddedAt)

	mockItems.AssertExpectations(t)
}

func TestItemService_Update_UnknownItem(t *testing.T) {
	ctx := context.Background()

	mockItems, _, _, _, service := itemServiceMocks(t)
	mockItems.On("FindByID", ctx, "item-404").Return(nil, nil)

	err := service.Update(ctx, "item-404", itemRequest())

	require.Error(t, err)
	assert.Equal(t, model.ErrItemNotFound, err)

	mockItems.AssertNotCalled(t, "Update")
}

func TestItemService_List_NormalizesPaging(t *testing.T) {
	ctx := context.Background()

	mockItems, _, _, _, service := itemServiceMocks(t)
	mockItems.On("List", ctx, model.ItemFilter{}, model.PageRequest{PageSize: 25, PageNumber: 1}).
		Return([]model.Item{{ItemID: "item-1"}}, int64(1), nil)

	page, err := service.List(ctx, model.ItemFilter{}, model.PageRequest{PageSize: -3, PageNumber: 0})

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 25, page.Paging.PageSize)
	assert.Equal(t, 1, page.Paging.PageNumber)

	mockItems.AssertExpectations(t)
}
