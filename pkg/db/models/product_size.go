package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSize is a named variant with an additive surcharge in COP.
type ProductSize struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Name       string    `gorm:"size:80;not null" json:"name"`
	ExtraPrice int64     `gorm:"not null;default:0" json:"extra_price"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProductSize) TableName() string { return "product_sizes" }
