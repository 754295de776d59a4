package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hometech/server/app/services"
	"github.com/hometech/server/pkg/response"
)

// CategoryController serves the storefront category pages.
type CategoryController struct {
	categories *services.CategoryService
	products   *services.ProductService
}

func NewCategoryController(categories *services.CategoryService, products *services.ProductService) *CategoryController {
	return &CategoryController{categories: categories, products: products}
}

// List handles GET /categories.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, categories)
}

// Products handles GET /categories/{id}: the available products in a
// category.
func (c *CategoryController) Products(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.ValidationError(w, map[string]string{"id": "must be a number"})
		return
	}

	products, err := c.products.ByCategory(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, products)
}
