package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/repositories"
	"github.com/hometech/server/app/services"
	"github.com/hometech/server/pkg/bind"
	"github.com/hometech/server/pkg/middleware"
	"github.com/hometech/server/pkg/reqid"
	"github.com/hometech/server/pkg/response"
	"github.com/hometech/server/pkg/storage"
)

// ProductController manages second-hand listings.
type ProductController struct {
	products *services.ProductService
	users    *services.UserService
}

func NewProductController(products *services.ProductService, users *services.UserService) *ProductController {
	return &ProductController{products: products, users: users}
}

type productInput struct {
	CategoryID    int    `json:"categoryId" validate:"required,gte=1"`
	CategoryName  string `json:"categoryName" validate:"nullable,max=100"`
	Name          string `json:"name" validate:"required,max=200"`
	ResalePrice   int    `json:"resalePrice" validate:"gte=0"`
	OriginalPrice int    `json:"originalPrice" validate:"nullable,gte=0"`
	YearsOfUse    int    `json:"yearsOfUse" validate:"nullable,gte=0"`
	Location      string `json:"location" validate:"nullable,max=200"`
	Image         string `json:"image" validate:"nullable,max=2048"`
	IsAdvertise   bool   `json:"isAdvertise"`
}

// Add handles POST /products. The listing is owned by the verified seller
// identity, never by an email claimed in the body.
func (c *ProductController) Add(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromCtx(r.Context())

	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil || errs != nil {
		bindError(w, errs, err)
		return
	}

	p := &models.Product{
		CategoryID:    in.CategoryID,
		CategoryName:  in.CategoryName,
		Name:          in.Name,
		Email:         email,
		ResalePrice:   in.ResalePrice,
		OriginalPrice: in.OriginalPrice,
		YearsOfUse:    in.YearsOfUse,
		Location:      in.Location,
		Image:         in.Image,
		IsAdvertise:   in.IsAdvertise,
	}

	// Carry the seller's display name and blue tick onto the listing.
	if seller, err := c.users.ByEmail(r.Context(), email); err == nil {
		p.SellerName = seller.Name
		p.SellerVerified = seller.Verified
	} else if !errors.Is(err, repositories.ErrNotFound) {
		storeError(w, r, err)
		return
	}

	id, err := c.products.Add(r.Context(), p)
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Created(w, models.AdmissionResult{Acknowledged: true, InsertedID: id})
}

// BySeller handles GET /products?email=. Ownership is enforced by the
// route middleware; this handler trusts the query parameter.
func (c *ProductController) BySeller(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.BySeller(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, products)
}

// Advertised handles GET /products/advertised.
func (c *ProductController) Advertised(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.Advertised(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, products)
}

// Reported handles GET /products/reported.
func (c *ProductController) Reported(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.Reported(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, products)
}

// Advertise handles PUT /products/advertise/{id}.
func (c *ProductController) Advertise(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Advertise(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true})
}

// Report handles PUT /products/report/{id}.
func (c *ProductController) Report(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Report(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true})
}

type statusInput struct {
	SalesStatus string `json:"salesStatus" validate:"required,in=available,sold"`
}

// SetStatus handles PUT /products/status/{id}.
func (c *ProductController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in statusInput
	if errs, err := bind.JSON(r, &in); err != nil || errs != nil {
		bindError(w, errs, err)
		return
	}

	err := c.products.SetSalesStatus(r.Context(), chi.URLParam(r, "id"), models.SalesStatus(in.SalesStatus))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true})
}

// Delete handles DELETE /products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true})
}

const maxImageBytes = 8 << 20 // 8 MB

// UploadImage handles POST /products/images: a multipart "image" file is
// written to the configured storage disk and its public URL returned.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, map[string]string{"image": "image file is required"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.ValidationError(w, map[string]string{"image": "unsupported image type"})
		return
	}

	path := fmt.Sprintf("products/%d-%s%s", time.Now().UnixNano(), reqid.FromCtx(r.Context()), ext)
	if err := storage.PutStream(path, file); err != nil {
		storeError(w, r, err)
		return
	}

	response.Created(w, map[string]string{"url": storage.URL(path)})
}
