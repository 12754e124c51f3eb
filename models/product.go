package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex" json:"slug"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

type Product struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  uint             `gorm:"index" json:"category_id"`
	Name        string           `gorm:"not null" json:"name"`
	Slug        string           `gorm:"uniqueIndex" json:"slug"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"price"`
	Stock       int              `gorm:"default:0" json:"stock"`
	IsActive    bool             `gorm:"default:true" json:"is_active"`
	IsFeatured  bool             `gorm:"default:false" json:"is_featured"`
	Image       string           `json:"image"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return nil
}

// ProductImage is an extra gallery image beyond the product's main one.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	Image     string `gorm:"not null" json:"image"`
}

// ProductVariant is an optional sub-selection (e.g. a size) carrying an
// additive price delta on top of the product price.
type ProductVariant struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint            `gorm:"index" json:"product_id"`
	Name       string          `gorm:"not null" json:"name"`
	PriceExtra decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"price_extra"`
}
