package models

import (
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	CategorySlug  string
	PriceLessThan *float64
	ActiveOnly    bool
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// Unused method, but keeping for potential future use
func (r *ProductsRepository) GetAllProducts() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Categories").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{}).Preload("Categories")

	// Filter
	if filters.CategorySlug != "" {
		query = query.
			Joins("JOIN product_categories ON product_categories.product_id = products.id").
			Joins("JOIN categories ON categories.id = product_categories.category_id").
			Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}
	if filters.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination, newest products first
	if err := query.Order("products.created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetBySlug(slug string) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Categories").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// CreateProduct persists a new product. The slug is assigned by the model's
// BeforeSave hook.
func (r *ProductsRepository) CreateProduct(product *Product) error {
	return r.db.Create(product).Error
}

// UpdateProduct persists edits to an existing product. The slug stays as
// assigned on first save.
func (r *ProductsRepository) UpdateProduct(product *Product) error {
	return r.db.Save(product).Error
}

// DeleteProduct removes a product by slug. Deletion is rejected with
// ErrProductReferenced while order items still reference the product.
func (r *ProductsRepository) DeleteProduct(slug string) error {
	product, err := r.GetBySlug(slug)
	if err != nil {
		return err
	}
	return r.db.Delete(product).Error
}
