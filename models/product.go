package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrProductNameRequired is returned when a product is saved without a name.
	ErrProductNameRequired = errors.New("product name is required")
	// ErrPriceNegative is returned when a product price is below zero.
	ErrPriceNegative = errors.New("price must not be negative")
	// ErrProductReferenced is returned when deleting a product that still has
	// order items pointing at it.
	ErrProductReferenced = errors.New("product is referenced by order items")
)

// Product represents a product in the catalog.
// It includes a unique slug derived from the name, a price, stock level,
// and a list of categories it belongs to.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:150;not null"`
	Slug        string          `gorm:"size:160;uniqueIndex;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       uint            `gorm:"not null;default:0"`
	ImageURL    string          `gorm:"size:500"`
	IsActive    bool            `gorm:"not null;default:true"`
	Categories  []Category      `gorm:"many2many:product_categories"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// BeforeSave validates the record and assigns the slug on first save.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Name == "" {
		return ErrProductNameRequired
	}
	if p.Price.IsNegative() {
		return ErrPriceNegative
	}
	if p.Slug == "" {
		slug, err := BuildUniqueSlug(tx, &Product{}, p.Name, p.ID)
		if err != nil {
			return err
		}
		p.Slug = slug
	}
	return nil
}

// BeforeDelete blocks deletion while order items still reference the product.
// Items carry only a snapshot of name and price, so the reference must be
// removed or reassigned first.
func (p *Product) BeforeDelete(tx *gorm.DB) error {
	var referencing int64
	if err := tx.Model(&OrderItem{}).Where("product_id = ?", p.ID).Count(&referencing).Error; err != nil {
		return err
	}
	if referencing > 0 {
		return ErrProductReferenced
	}
	return nil
}
