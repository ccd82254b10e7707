package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CategoryID    uint            `gorm:"not null;index" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Slug          string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description   string          `gorm:"type:text" json:"description"`
	ImageResource string          `gorm:"size:255" json:"image_resource"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Product) TableName() string { return TableProducts }
