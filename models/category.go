package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrCategoryNameRequired is returned when a category is saved without a name.
var ErrCategoryNameRequired = errors.New("category name is required")

// Category represents a product category.
// It includes a unique name and a URL-safe slug derived from it.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;uniqueIndex;not null"`
	Slug      string    `gorm:"size:60;uniqueIndex;not null"`
	Products  []Product `gorm:"many2many:product_categories"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) TableName() string {
	return "categories"
}

// BeforeSave assigns the slug on first save. Later saves keep whatever slug
// the record already carries, even if the name changed.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Name == "" {
		return ErrCategoryNameRequired
	}
	if c.Slug == "" {
		slug, err := BuildUniqueSlug(tx, &Category{}, c.Name, c.ID)
		if err != nil {
			return err
		}
		c.Slug = slug
	}
	return nil
}
