package categories

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/greenbasket/shop-backend/app/api"
	"github.com/greenbasket/shop-backend/models"
)

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	CreateCategory(category *models.Category) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			Name: c.Name,
			Slug: c.Slug,
		}
	}

	api.JSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	category, err := h.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			api.Error(w, http.StatusNotFound, "Category not found")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to fetch category")
		return
	}

	api.JSON(w, http.StatusOK, CategoryResponse{Name: category.Name, Slug: category.Slug})
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" {
		api.Error(w, http.StatusBadRequest, "Missing name")
		return
	}

	category := &models.Category{
		Name: input.Name,
	}

	if err := h.repo.CreateCategory(category); err != nil {
		// A duplicate name or a lost slug race both land here at commit time.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			api.Error(w, http.StatusConflict, "Category already exists")
			return
		}
		api.Error(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.JSON(w, http.StatusCreated, CategoryResponse{Name: category.Name, Slug: category.Slug})
}
