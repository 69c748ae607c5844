package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/greenbasket/shop-backend/app/api"
	"github.com/greenbasket/shop-backend/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Product struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Stock       uint       `json:"stock"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	Categories  []Category `json:"categories"`
}

type ProductProvider interface {
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetBySlug(slug string) (*models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(slug string) error
}

type CategoryResolver interface {
	GetBySlugs(slugs []string) ([]models.Category, error)
}

type CatalogHandler struct {
	repo       ProductProvider
	categories CategoryResolver
}

func NewCatalogHandler(r ProductProvider, c CategoryResolver) *CatalogHandler {
	return &CatalogHandler{
		repo:       r,
		categories: c,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	// Parse filters
	filters := models.ProductFilters{
		CategorySlug: r.URL.Query().Get("category"),
		ActiveOnly:   r.URL.Query().Get("active") == "true",
	}

	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, total, err := h.repo.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProductResponse(&p)
	}

	api.JSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	product, err := h.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	api.JSON(w, http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Stock       uint     `json:"stock"`
		ImageURL    string   `json:"image_url"`
		Categories  []string `json:"categories"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	cats, err := h.categories.GetBySlugs(input.Categories)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusBadRequest, "Unknown category")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to resolve categories")
		return
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       decimal.NewFromFloat(input.Price).Round(2),
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		IsActive:    true,
		Categories:  cats,
	}

	if err := h.repo.CreateProduct(product); err != nil {
		writeProductSaveError(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	product, err := h.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *uint    `json:"stock"`
		ImageURL    *string  `json:"image_url"`
		IsActive    *bool    `json:"is_active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// The slug is assigned once and never re-derived, even on a rename.
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = decimal.NewFromFloat(*input.Price).Round(2)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := h.repo.UpdateProduct(product); err != nil {
		writeProductSaveError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toProductResponse(product))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	if err := h.repo.DeleteProduct(slug); err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			api.Error(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, models.ErrProductReferenced), errors.Is(err, gorm.ErrForeignKeyViolated):
			api.Error(w, http.StatusConflict, "Product is referenced by order items")
		default:
			api.Error(w, http.StatusInternalServerError, "Failed to delete product")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeProductSaveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProductNameRequired), errors.Is(err, models.ErrPriceNegative):
		api.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		api.Error(w, http.StatusConflict, "Product already exists")
	default:
		api.Error(w, http.StatusInternalServerError, "Failed to save product")
	}
}

func toProductResponse(p *models.Product) Product {
	categories := make([]Category, len(p.Categories))
	for i, c := range p.Categories {
		categories[i] = Category{
			Name: c.Name,
			Slug: c.Slug,
		}
	}
	return Product{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
		Categories:  categories,
	}
}
