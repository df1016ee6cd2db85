package model

import (
	"time"

	"github.com/google/uuid"
)

// Volume units supported for bottle size and alcohol strength.
const (
	UnitMillilitre = "ml"
	UnitCentilitre = "cl"
	UnitDecilitre  = "dl"
	UnitLitre      = "l"
	UnitPercent    = "%"
)

// ValidVolumeUnit reports whether s is a supported volume unit.
func ValidVolumeUnit(s string) bool {
	switch s {
	case UnitMillilitre, UnitCentilitre, UnitDecilitre, UnitLitre, UnitPercent:
		return true
	}
	return false
}

// Volume is a decimal quantity with a unit, e.g. a 70cl bottle or 40% ABV.
type Volume struct {
	Amount Decimal `json:"amount" bson:"amount"`
	Unit   string  `json:"unit" bson:"unit"`
}

// Item is a catalog product. Quantity is the available stock, decremented by
// order creation.
type Item struct {
	ItemID            string    `json:"item_id" bson:"item_id"`
	SKU               string    `json:"sku" bson:"sku"`
	Title             string    `json:"title" bson:"title"`
	ImageURL          string    `json:"image_url" bson:"image_url"`
	Description       string    `json:"description" bson:"description"`
	TypeID            string    `json:"type_id" bson:"type_id"`
	TypeName          string    `json:"type_name" bson:"type_name"`
	Price             Money     `json:"price" bson:"price"`
	Volume            Volume    `json:"volume" bson:"volume"`
	AlcoholVolume     Volume    `json:"alcohol_volume" bson:"alcohol_volume"`
	Quantity          int       `json:"quantity" bson:"quantity"`
	OriginCountryCode string    `json:"origin_country_code" bson:"origin_country_code"`
	OriginCountryName string    `json:"origin_country_name" bson:"origin_country_name"`
	BrandID           string    `json:"brand_id" bson:"brand_id"`
	BrandName         string    `json:"brand_name" bson:"brand_name"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
	AddedAt           time.Time `json:"added_at" bson:"added_at"`
}

// NewItemID generates a catalog item identifier.
func NewItemID() string {
	return uuid.NewString()
}

// ItemRequest is the payload for creating or updating a catalog item.
type ItemRequest struct {
	Title         string      `json:"title"`
	ImageURL      string      `json:"image_url"`
	Description   string      `json:"description"`
	TypeID        string      `json:"type_id"`
	Price         MoneyInput  `json:"price"`
	Volume        VolumeInput `json:"volume"`
	AlcoholVolume VolumeInput `json:"alcohol_volume"`
	Quantity      int         `json:"quantity"`
	CountryCode   string      `json:"origin_country_code"`
	BrandID       string      `json:"brand_id"`
}

// MoneyInput carries a money value as strings, exactly as it appears on the
// wire.
type MoneyInput struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// VolumeInput carries a volume value as strings.
type VolumeInput struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// ItemFilter captures the catalog listing query: search, attribute filters,
// price range and sorting.
type ItemFilter struct {
	Search       string
	TypeIDs      []string
	CountryCodes []string
	BrandIDs     []string
	MinPrice     *Decimal
	MaxPrice     *Decimal
	SortBy       string
	SortOrder    string
}

// ItemPage is a page of catalog items with its paging envelope.
type ItemPage struct {
	Items  []Item `json:"items"`
	Paging Paging `json:"paging"`
}
