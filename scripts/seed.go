package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"pourpal/internal/auth"
	"pourpal/internal/config"
	"pourpal/internal/database"
	"pourpal/internal/model"
	"pourpal/internal/repository"
	"pourpal/internal/service"

	"github.com/rs/zerolog"
)

// Seeds the database with reference data, a starter catalog and an admin
// account. Intended for local development: run with `go run scripts/seed.go`.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := zerolog.Nop()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Disconnect(ctx)

	countryRepo := repository.NewCountryRepository(db, logger)
	countries := []model.Country{
		{Code: "FI", Unicode: "U+1F1EB U+1F1EE", Name: "Finland", Emoji: "🇫🇮", AddedAt: time.Now().UTC()},
		{Code: "GB", Unicode: "U+1F1EC U+1F1E7", Name: "United Kingdom", Emoji: "🇬🇧", AddedAt: time.Now().UTC()},
		{Code: "IE", Unicode: "U+1F1EE U+1F1EA", Name: "Ireland", Emoji: "🇮🇪", AddedAt: time.Now().UTC()},
		{Code: "FR", Unicode: "U+1F1EB U+1F1F7", Name: "France", Emoji: "🇫🇷", AddedAt: time.Now().UTC()},
		{Code: "US", Unicode: "U+1F1FA U+1F1F8", Name: "United States", Emoji: "🇺🇸", AddedAt: time.Now().UTC()},
	}
	for i := range countries {
		if err := countryRepo.Upsert(ctx, &countries[i]); err != nil {
			log.Fatalf("Failed to seed country %s: %v", countries[i].Code, err)
		}
	}
	fmt.Printf("Seeded %d countries\n", len(countries))

	typeRepo := repository.NewTypeRepository(db, logger)
	typeIDs := map[string]string{}
	for _, name := range []string{"Whisky", "Gin", "Rum", "Vodka", "Wine"} {
		bt, err := ensureType(ctx, typeRepo, name)
		if err != nil {
			log.Fatalf("Failed to seed type %q: %v", name, err)
		}
		typeIDs[name] = bt.TypeID
	}

	brandRepo := repository.NewBrandRepository(db, logger)
	brandIDs := map[string]string{}
	for _, name := range []string{"Lagavulin", "Talisker", "Kyrö", "Hendrick's"} {
		brand, err := ensureBrand(ctx, brandRepo, name)
		if err != nil {
			log.Fatalf("Failed to seed brand %q: %v", name, err)
		}
		brandIDs[name] = brand.BrandID
	}

	itemRepo := repository.NewItemRepository(db, logger)
	items := service.NewItemService(itemRepo, brandRepo, typeRepo, countryRepo, logger)
	requests := []model.ItemRequest{
		{
			Title:         "Lagavulin 16 Year Old",
			Description:   "Intensely peated Islay single malt matured for sixteen years.",
			TypeID:        typeIDs["Whisky"],
			Price:         model.MoneyInput{Amount: "89.90", Currency: "€"},
			Volume:        model.VolumeInput{Amount: "0.7", Unit: "l"},
			AlcoholVolume: model.VolumeInput{Amount: "43", Unit: "%"},
			Quantity:      24,
			CountryCode:   "GB",
			BrandID:       brandIDs["Lagavulin"],
		},
		{
			Title:         "Talisker 10 Year Old",
			Description:   "Maritime single malt from the Isle of Skye with a peppery finish.",
			TypeID:        typeIDs["Whisky"],
			Price:         model.MoneyInput{Amount: "45.50", Currency: "€"},
			Volume:        model.VolumeInput{Amount: "0.7", Unit: "l"},
			AlcoholVolume: model.VolumeInput{Amount: "45.8", Unit: "%"},
			Quantity:      36,
			CountryCode:   "GB",
			BrandID:       brandIDs["Talisker"],
		},
		{
			Title:         "Kyrö Napue Gin",
			Description:   "Finnish rye gin with meadowsweet, sea buckthorn and cranberry.",
			TypeID:        typeIDs["Gin"],
			Price:         model.MoneyInput{Amount: "39.90", Currency: "€"},
			Volume:        model.VolumeInput{Amount: "0.5", Unit: "l"},
			AlcoholVolume: model.VolumeInput{Amount: "46.3", Unit: "%"},
			Quantity:      48,
			CountryCode:   "FI",
			BrandID:       brandIDs["Kyrö"],
		},
		{
			Title:         "Hendrick's Gin",
			Description:   "Scottish gin infused with cucumber and rose petals.",
			TypeID:        typeIDs["Gin"],
			Price:         model.MoneyInput{Amount: "34.90", Currency: "€"},
			Volume:        model.VolumeInput{Amount: "0.7", Unit: "l"},
			AlcoholVolume: model.VolumeInput{Amount: "41.4", Unit: "%"},
			Quantity:      60,
			CountryCode:   "GB",
			BrandID:       brandIDs["Hendrick's"],
		},
	}
	seeded := 0
	for _, req := range requests {
		exists, err := itemExists(ctx, itemRepo, req.Title)
		if err != nil {
			log.Fatalf("Failed to check item %q: %v", req.Title, err)
		}
		if exists {
			continue
		}
		if _, err := items.Create(ctx, &req); err != nil {
			log.Fatalf("Failed to seed item %q: %v", req.Title, err)
		}
		seeded++
	}
	fmt.Printf("Seeded %d items\n", seeded)

	userRepo := repository.NewUserRepository(db, logger)
	existing, err := userRepo.FindByEmail(ctx, "admin@pourpal.local")
	if err != nil {
		log.Fatalf("Failed to check admin account: %v", err)
	}
	if existing == nil {
		encoded, err := auth.HashPassword("changeme")
		if err != nil {
			log.Fatalf("Failed to encode admin password: %v", err)
		}
		admin := model.NewUser("admin@pourpal.local", encoded, model.RoleAdmin)
		if err := userRepo.Insert(ctx, admin); err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
		fmt.Println("Created admin account admin@pourpal.local (password: changeme)")
	}

	fmt.Println("Seeding completed")
}

func ensureType(ctx context.Context, repo repository.TypeRepository, name string) (*model.BeverageType, error) {
	if existing, err := repo.FindByName(ctx, name, ""); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}
	bt := model.NewBeverageType(name)
	if err := repo.Insert(ctx, bt); err != nil {
		return nil, err
	}
	return bt, nil
}

func ensureBrand(ctx context.Context, repo repository.BrandRepository, name string) (*model.Brand, error) {
	if existing, err := repo.FindByName(ctx, name, ""); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}
	brand := model.NewBrand(name)
	if err := repo.Insert(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func itemExists(ctx context.Context, repo repository.ItemRepository, title string) (bool, error) {
	found, _, err := repo.List(ctx, model.ItemFilter{Search: title}, model.PageRequest{PageSize: 1, PageNumber: 1})
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}
