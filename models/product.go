package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	NameTR        string  `gorm:"not null" json:"name_tr"` // Turkish name
	NameEN        string  `json:"name_en"`                 // English name
	DescriptionTR string  `json:"description_tr"`
	DescriptionEN string  `json:"description_en"`
	StoryTR       string  `json:"story_tr"` // brand story shown on the product page
	StoryEN       string  `json:"story_en"`
	Price         float64 `gorm:"not null" json:"price"` // base price in TRY
	PriceUSD      float64 `json:"price_usd"`             // optional override, 0 = convert from base
	PriceEUR      float64 `json:"price_eur"`
	Category      string  `gorm:"index" json:"category"`
	SubCategory   string  `json:"sub_category"`
	ThirdCategory string  `json:"third_category"`
	Featured      bool    `gorm:"index" json:"featured"`
	Images        []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Sizes         []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `json:"position"` // display order
}

type ProductSize struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	Code      string `gorm:"not null" json:"code"` // XS, S, M, ...
	InStock   bool   `json:"in_stock"`
	PreOrder  bool   `json:"pre_order"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	NameTR   string `gorm:"unique;not null" json:"name_tr"`
	NameEN   string `gorm:"unique;not null" json:"name_en"`
	Slug     string `gorm:"uniqueIndex" json:"slug"`
	ParentID *uint  `json:"parent_id"` // nil for top-level
	Image    string `json:"image"`
}
