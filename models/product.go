package models

import (
	"time"

	"github.com/google/uuid"
)

// Product type constants.
const (
	ProductTypeSimple       = "simple"
	ProductTypeCustomizable = "customizable"
	ProductTypeTrading      = "trading"
)

// Customization kinds. Each kind is one sub-option gallery a buyer picks
// from when composing a customizable or trading card.
const (
	KindBaseCards     = "base_cards"
	KindSkinTones     = "skin_tones"
	KindHairs         = "hairs"
	KindNoses         = "noses"
	KindEyes          = "eyes"
	KindMouths        = "mouths"
	KindDresses       = "dresses"
	KindCrowns        = "crowns"
	KindBeards        = "beards"
	KindTradingFronts = "trading_fronts"
	KindTradingBacks  = "trading_backs"
)

// CustomizableKinds are the galleries a customizable product carries.
var CustomizableKinds = []string{
	KindBaseCards, KindSkinTones, KindHairs, KindNoses, KindEyes,
	KindMouths, KindDresses, KindCrowns, KindBeards,
}

// TradingKinds are the galleries a trading product carries.
var TradingKinds = []string{KindTradingFronts, KindTradingBacks}

// KindsForType returns the customization kinds valid for a product type.
func KindsForType(productType string) []string {
	switch productType {
	case ProductTypeCustomizable:
		return CustomizableKinds
	case ProductTypeTrading:
		return TradingKinds
	default:
		return nil
	}
}

// Category groups products.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"unique;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Product is the sellable item.
type Product struct {
	ID               uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string              `gorm:"not null" json:"name"`
	Slug             string              `gorm:"unique;not null;index" json:"slug"`
	Type             string              `gorm:"type:varchar(32);not null;default:'simple'" json:"type"`
	Price            float64             `gorm:"not null" json:"price"`
	OfferPrice       *float64            `json:"offer_price,omitempty"`
	Status           bool                `gorm:"not null;default:true" json:"status"`
	CategoryID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"category_id"`
	Category         *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Image            string              `gorm:"size:512" json:"image,omitempty"`
	ShortDescription string              `gorm:"size:500" json:"short_description,omitempty"`
	Description      string              `gorm:"type:text" json:"description,omitempty"`
	Images           []ProductImage      `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Customizations   []CustomizationItem `gorm:"constraint:OnDelete:CASCADE" json:"customizations,omitempty"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProductImage is one gallery image of a product.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Image     string    `gorm:"size:512;not null" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CustomizationItem is one named sub-option inside a gallery, e.g. the
// "Light" entry of the skin_tones kind.
type CustomizationItem struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID            `gorm:"type:uuid;not null;index" json:"product_id"`
	Kind      string               `gorm:"type:varchar(32);not null;index" json:"kind"`
	Name      string               `gorm:"not null" json:"name"`
	Images    []CustomizationImage `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt time.Time            `gorm:"autoCreateTime" json:"created_at"`
}

// CustomizationImage is one stored image of a customization item.
type CustomizationImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Image     string    `gorm:"size:512;not null" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CustomizationItemInput is one submitted gallery entry.
type CustomizationItemInput struct {
	Name   string   `json:"name" binding:"required,max=255"`
	Images []string `json:"images" binding:"omitempty,dive,required"`
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Name             string   `json:"name" binding:"required,max=255"`
	Slug             string   `json:"slug" binding:"omitempty,max=255"`
	Type             string   `json:"type" binding:"required,oneof=simple customizable trading"`
	Price            float64  `json:"price" binding:"required,gt=0"`
	OfferPrice       *float64 `json:"offer_price" binding:"omitempty,gt=0"`
	Status           *bool    `json:"status" binding:"required"`
	CategoryID       string   `json:"category_id" binding:"required,uuid"`
	ShortDescription string   `json:"short_description" binding:"omitempty,max=500"`
	Description      string   `json:"description"`
	Image            string   `json:"image"`
	Images           *[]string `json:"images" binding:"omitempty,max=10"`

	BaseCards     []CustomizationItemInput `json:"base_cards"`
	SkinTones     []CustomizationItemInput `json:"skin_tones"`
	Hairs         []CustomizationItemInput `json:"hairs"`
	Noses         []CustomizationItemInput `json:"noses"`
	Eyes          []CustomizationItemInput `json:"eyes"`
	Mouths        []CustomizationItemInput `json:"mouths"`
	Dresses       []CustomizationItemInput `json:"dresses"`
	Crowns        []CustomizationItemInput `json:"crowns"`
	Beards        []CustomizationItemInput `json:"beards"`
	TradingFronts []CustomizationItemInput `json:"trading_fronts"`
	TradingBacks  []CustomizationItemInput `json:"trading_backs"`
}

// Galleries flattens the per-kind fields into a kind-keyed map, keeping
// only kinds valid for the product type. A present-but-empty slice still
// appears in the map: on update that means "remove everything".
func (r *ProductRequest) Galleries() map[string][]CustomizationItemInput {
	all := map[string][]CustomizationItemInput{
		KindBaseCards:     r.BaseCards,
		KindSkinTones:     r.SkinTones,
		KindHairs:         r.Hairs,
		KindNoses:         r.Noses,
		KindEyes:          r.Eyes,
		KindMouths:        r.Mouths,
		KindDresses:       r.Dresses,
		KindCrowns:        r.Crowns,
		KindBeards:        r.Beards,
		KindTradingFronts: r.TradingFronts,
		KindTradingBacks:  r.TradingBacks,
	}

	out := make(map[string][]CustomizationItemInput)
	for _, kind := range KindsForType(r.Type) {
		if items := all[kind]; items != nil {
			out[kind] = items
		}
	}
	return out
}

// ProductFilter holds the optional listing filters.
type ProductFilter struct {
	CategoryID string
	Type       string
	Status     *bool
	Search     string
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
