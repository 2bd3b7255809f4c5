package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog entry. Prices are integer COP; DiscountPercent is
// stored as written by admins and clamped to [0,100] at read time.
type Product struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"size:160;not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	CategorySlug    string         `gorm:"size:80;index;not null" json:"category"`
	BasePrice       int64          `gorm:"not null" json:"base_price"`
	DiscountPercent int64          `gorm:"not null;default:0" json:"discount_percent"`
	Featured        bool           `gorm:"not null;default:false;index" json:"featured"`
	Colors          pq.StringArray `gorm:"type:text[]" json:"colors"`
	ImageURL        string         `gorm:"size:512" json:"image_url"`
	ImagePath       string         `gorm:"size:512" json:"image_path"`
	Sizes           []ProductSize  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
