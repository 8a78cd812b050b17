package models

import (
	"github.com/google/uuid"
)

// Product is a furniture catalog entry. BasePrice is in integer minor
// currency units.
type Product struct {
	BaseModel
	Slug             string         `gorm:"uniqueIndex" json:"slug"`
	Name             string         `json:"name"`
	ShortDescription string         `json:"short_description"`
	LongDescription  string         `json:"long_description"`
	BasePrice        int64          `json:"base_price"`
	Currency         string         `json:"currency"`
	Material         string         `json:"material"`
	Finish           string         `json:"finish"`
	WidthCM          int            `json:"width_cm"`
	DepthCM          int            `json:"depth_cm"`
	HeightCM         int            `json:"height_cm"`
	LeadTimeWeeks    int            `json:"lead_time_weeks"`
	InStock          bool           `json:"in_stock"`
	IsActive         bool           `json:"is_active"`
	HeroImage        string         `json:"hero_image"`
	CategoryID       *uuid.UUID     `gorm:"type:uuid" json:"category_id"`
	Category         *Category      `json:"category,omitempty"`
	Images           []ProductImage `json:"images,omitempty"`
}

// Category groups products (sofas, tables, wardrobes, ...).
type Category struct {
	BaseModel
	Slug         string `gorm:"uniqueIndex" json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

type ProductImage struct {
	BaseModel
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	URL          string    `json:"url"`
	AltText      string    `json:"alt_text"`
	DisplayOrder int       `json:"display_order"`
}
