package models

import (
	"time"

	"github.com/google/uuid"
)

// Media records every object uploaded to the bucket so orphans can be
// reconciled after failed product writes.
type Media struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ObjectKey   string     `gorm:"size:512;uniqueIndex;not null" json:"object_key"`
	ContentType string     `gorm:"size:80;not null" json:"content_type"`
	SizeBytes   int64      `gorm:"not null" json:"size_bytes"`
	Width       int        `gorm:"not null;default:0" json:"width"`
	Height      int        `gorm:"not null;default:0" json:"height"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Media) TableName() string { return "media" }
