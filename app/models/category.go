package models

import "time"

type Category struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug          string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	ImageResource string `gorm:"size:255" json:"image_resource"`
	SortOrder     int    `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Category) TableName() string { return TableCategories }
