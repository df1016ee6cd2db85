package integration

import (
	"context"
	"testing"
	"time"

	"pourpal/internal/model"
	"pourpal/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func euros(amount string) model.Money {
	return model.Money{Amount: model.MustDecimal(amount), Currency: model.CurrencyEUR}
}

func seedItem(t *testing.T, repo repository.ItemRepository, title, price string, quantity int) *model.Item {
	t.Helper()
	now := time.Now().UTC()
	item := &model.Item{
		ItemID:            model.NewItemID(),
		SKU:               "WHI-TEST0001",
		Title:             title,
		TypeID:            "type-1",
		TypeName:          "Whisky",
		Price:             euros(price),
		Volume:            model.Volume{Amount: model.MustDecimal("0.7"), Unit: "l"},
		AlcoholVolume:     model.Volume{Amount: model.MustDecimal("43"), Unit: "%"},
		Quantity:          quantity,
		OriginCountryCode: "GB",
		OriginCountryName: "United Kingdom",
		BrandID:           "brand-1",
		BrandName:         "Lagavulin",
		UpdatedAt:         now,
		AddedAt:           now,
	}
	require.NoError(t, repo.Insert(context.Background(), item))
	return item
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewCartRepository(db.Database, zerolog.Nop())

	now := time.Now().UTC().Truncate(time.Millisecond)
	cart := model.NewCart(now, 7*24*time.Hour)
	require.NoError(t, repo.Insert(ctx, cart))

	// Round trip
	found, err := repo.FindByID(ctx, cart.CartID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, cart.CartID, found.CartID)
	assert.Empty(t, found.CartItems)

	// Absent id yields nil, not an error
	missing, err := repo.FindByID(ctx, "no-such-cart")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Item list replacement with a decimal price survives the round trip
	items := []model.CartItem{model.NewCartItem("item-1", 2, euros("29.99"))}
	expiration := now.Add(7 * 24 * time.Hour)
	require.NoError(t, repo.UpdateItems(ctx, cart.CartID, items, expiration))

	found, err = repo.FindByID(ctx, cart.CartID)
	require.NoError(t, err)
	require.Len(t, found.CartItems, 1)
	assert.Equal(t, 2, found.CartItems[0].Quantity)
	assert.Equal(t, "59.98", found.CartItems[0].TotalPrice.Amount.StringFixed(2))

	// Updating an absent cart reports not found
	err = repo.UpdateItems(ctx, "no-such-cart", items, expiration)
	assert.Equal(t, model.ErrCartNotFound, err)

	// Delete is idempotent
	require.NoError(t, repo.Delete(ctx, cart.CartID))
	require.NoError(t, repo.Delete(ctx, cart.CartID))

	found, err = repo.FindByID(ctx, cart.CartID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestItemRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewItemRepository(db.Database, zerolog.Nop())

	lagavulin := seedItem(t, repo, "Lagavulin 16", "89.90", 10)
	seedItem(t, repo, "Talisker 10", "45.50", 5)

	// Title search is case-insensitive
	items, total, err := repo.List(ctx, model.ItemFilter{Search: "lagavulin"}, model.PageRequest{PageSize: 25, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Lagavulin 16", items[0].Title)

	// Price range filters work on the Decimal128 amount
	items, total, err = repo.List(ctx, model.ItemFilter{
		MinPrice: ptrDecimal("50"),
	}, model.PageRequest{PageSize: 25, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "89.90", items[0].Price.Amount.StringFixed(2))

	// Price sort descending
	items, _, err = repo.List(ctx, model.ItemFilter{SortBy: "price", SortOrder: "desc"}, model.PageRequest{PageSize: 25, PageNumber: 1})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lagavulin 16", items[0].Title)

	// Guarded decrement succeeds while stock lasts
	require.NoError(t, repo.DecrementStock(ctx, lagavulin.ItemID, 8))

	found, err := repo.FindByID(ctx, lagavulin.ItemID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Quantity)

	// And refuses to go negative
	err = repo.DecrementStock(ctx, lagavulin.ItemID, 3)
	assert.ErrorIs(t, err, repository.ErrStockConflict)

	found, err = repo.FindByID(ctx, lagavulin.ItemID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.Quantity)

	// Compensation path restores stock
	require.NoError(t, repo.IncrementStock(ctx, lagavulin.ItemID, 8))
	found, err = repo.FindByID(ctx, lagavulin.ItemID)
	require.NoError(t, err)
	assert.Equal(t, 10, found.Quantity)
}

func ptrDecimal(s string) *model.Decimal {
	d := model.MustDecimal(s)
	return &d
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewOrderRepository(db.Database, zerolog.Nop())

	// Order numbers are sequential and zero-padded to nine digits
	first, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "000000001", first)

	second, err := repo.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "000000002", second)

	userID := "user-1"
	total := euros("59.98")
	order := model.NewOrder(second, &userID, model.DeliveryInformation{
		RecipientName:          "Maija Meikäläinen",
		RecipientPhone:         "+358401234567",
		RecipientCity:          "Helsinki",
		RecipientStreetAddress: "Mannerheimintie 1",
	}, []model.CartItem{model.NewCartItem("item-1", 2, euros("29.99"))}, total)
	require.NoError(t, repo.Insert(ctx, order))

	guestOrder := model.NewOrder(first, nil, model.DeliveryInformation{RecipientName: "Guest"}, []model.CartItem{model.NewCartItem("item-2", 1, euros("45.50"))}, euros("45.50"))
	require.NoError(t, repo.Insert(ctx, guestOrder))

	// Full listing sees both orders
	orders, count, err := repo.List(ctx, nil, model.PageRequest{PageSize: 25, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, orders, 2)

	// User filter narrows to the attributed order
	orders, count, err = repo.List(ctx, &userID, model.PageRequest{PageSize: 25, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, orders, 1)
	assert.Equal(t, second, orders[0].OrderNumber)
	assert.Equal(t, "59.98", orders[0].TotalPrice.Amount.StringFixed(2))
}

func TestBrandRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewBrandRepository(db.Database, zerolog.Nop())

	ardbeg := model.NewBrand("Ardbeg")
	require.NoError(t, repo.Insert(ctx, ardbeg))
	require.NoError(t, repo.Insert(ctx, model.NewBrand("Laphroaig")))

	// Listing is sorted by name
	brands, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "Ardbeg", brands[0].Brand)

	// Duplicate lookup finds the existing brand
	existing, err := repo.FindByName(ctx, "Ardbeg", "")
	require.NoError(t, err)
	require.NotNil(t, existing)

	// But excludes the brand itself during a rename check
	existing, err = repo.FindByName(ctx, "Ardbeg", ardbeg.BrandID)
	require.NoError(t, err)
	assert.Nil(t, existing)

	require.NoError(t, repo.UpdateName(ctx, ardbeg.BrandID, "Ardbeg Distillery"))
	renamed, err := repo.FindByID(ctx, ardbeg.BrandID)
	require.NoError(t, err)
	assert.Equal(t, "Ardbeg Distillery", renamed.Brand)

	assert.Equal(t, model.ErrBrandNotFound, repo.Delete(ctx, "no-such-brand"))
	require.NoError(t, repo.Delete(ctx, ardbeg.BrandID))
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(db.Database, zerolog.Nop())

	user := model.NewUser("maija@example.com", "$2a$10$fakehash", model.RoleCustomer)
	require.NoError(t, repo.Insert(ctx, user))

	found, err := repo.FindByEmail(ctx, "maija@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.UserID, found.UserID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	rec := model.LoginRecord{UserAgent: "go-test", RemoteAddr: "127.0.0.1:9999", Timestamp: time.Now().UTC().Truncate(time.Millisecond)}
	require.NoError(t, repo.RecordLogin(ctx, user.UserID, rec))

	found, err = repo.FindByID(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, found.Authorizations, 1)
	assert.Equal(t, "go-test", found.Authorizations[0].UserAgent)
}
