package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hometech/server/app/models"
	"github.com/hometech/server/app/services"
	"github.com/hometech/server/pkg/bind"
	"github.com/hometech/server/pkg/response"
)

// UserController manages stored identities and role checks.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type userInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"nullable,in=User,Seller,Admin"`
}

// Register handles POST /users. The storefront re-posts the signed-in user
// on every social login, so a duplicate email is a 200 with
// acknowledged=false rather than a conflict.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if errs, err := bind.JSON(r, &in); err != nil || errs != nil {
		bindError(w, errs, err)
		return
	}

	res, err := c.users.Register(r.Context(), &models.User{
		Name:  in.Name,
		Email: in.Email,
		Role:  models.Role(in.Role),
	})
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, res)
}

// ListByRole handles GET /users?role=.
func (c *UserController) ListByRole(w http.ResponseWriter, r *http.Request) {
	var (
		users []models.User
		err   error
	)

	switch role := r.URL.Query().Get("role"); models.Role(role) {
	case models.RoleUser:
		users, err = c.users.Buyers(r.Context())
	case models.RoleSeller:
		users, err = c.users.Sellers(r.Context())
	default:
		response.ValidationError(w, map[string]string{"role": "must be one of: User, Seller"})
		return
	}
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, users)
}

// IsAdmin handles GET /users/admin/{email}. Public: the storefront decides
// which dashboard to render before it has a token.
func (c *UserController) IsAdmin(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := c.users.IsAdmin(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"isAdmin": isAdmin})
}

// IsSeller handles GET /users/seller/{email}.
func (c *UserController) IsSeller(w http.ResponseWriter, r *http.Request) {
	isSeller, err := c.users.IsSeller(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"isSeller": isSeller})
}

// MakeSeller handles PUT /users/seller/{email}.
func (c *UserController) MakeSeller(w http.ResponseWriter, r *http.Request) {
	if err := c.users.MakeSeller(r.Context(), chi.URLParam(r, "email")); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true})
}

// VerifySeller handles PUT /users/seller/verify/{email}.
func (c *UserController) VerifySeller(w http.ResponseWriter, r *http.Request) {
	if err := c.users.VerifySeller(r.Context(), chi.URLParam(r, "email")); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true})
}

// Delete handles DELETE /users/{id}.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err)
		return
	}
	response.Success(w, models.AdmissionResult{Acknowledged: true})
}
