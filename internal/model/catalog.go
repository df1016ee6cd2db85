package model

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a beverage producer referenced by catalog items.
type Brand struct {
	BrandID string    `json:"brand_id" bson:"brand_id"`
	Brand   string    `json:"brand" bson:"brand"`
	AddedAt time.Time `json:"added_at" bson:"added_at"`
}

// NewBrand creates a brand with a fresh identifier.
func NewBrand(name string) *Brand {
	return &Brand{
		BrandID: uuid.NewString(),
		Brand:   name,
		AddedAt: time.Now().UTC(),
	}
}

// BeverageType is a drink category (whisky, gin, ...) referenced by catalog
// items.
type BeverageType struct {
	TypeID  string    `json:"type_id" bson:"type_id"`
	Type    string    `json:"type" bson:"type"`
	AddedAt time.Time `json:"added_at" bson:"added_at"`
}

// NewBeverageType creates a beverage type with a fresh identifier.
func NewBeverageType(name string) *BeverageType {
	return &BeverageType{
		TypeID:  uuid.NewString(),
		Type:    name,
		AddedAt: time.Now().UTC(),
	}
}

// Country is a country of origin, keyed by its ISO code.
type Country struct {
	Code    string    `json:"code" bson:"code"`
	Unicode string    `json:"unicode" bson:"unicode"`
	Name    string    `json:"name" bson:"name"`
	Emoji   string    `json:"emoji" bson:"emoji"`
	AddedAt time.Time `json:"added_at" bson:"added_at"`
}
