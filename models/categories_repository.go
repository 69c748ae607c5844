package models

import (
	"errors"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAllCategories() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetBySlug(slug string) (*Category, error) {
	var category Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlugs resolves a set of category slugs, failing with
// ErrCategoryNotFound if any of them is unknown.
func (r *CategoriesRepository) GetBySlugs(slugs []string) ([]Category, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var categories []Category
	if err := r.db.Where("slug IN ?", slugs).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(slugs) {
		return nil, ErrCategoryNotFound
	}
	return categories, nil
}

// CreateCategory persists a new category. The slug is assigned by the model's
// BeforeSave hook.
func (r *CategoriesRepository) CreateCategory(category *Category) error {
	return r.db.Create(category).Error
}
