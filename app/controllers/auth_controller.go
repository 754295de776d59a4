package controllers

import (
	"errors"
	"net/http"

	"github.com/hometech/server/app/services"
	"github.com/hometech/server/pkg/response"
)

// AuthController serves the token endpoint the storefront calls after a
// social login.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// tokenBody keeps the response key the deployed frontend reads.
type tokenBody struct {
	AccessToken string `json:"accessToken2"`
}

// Token handles GET /jwt?email=. An email with no stored identity gets a
// 403 with an empty token, indistinguishable from lacking access.
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	token, err := c.auth.IssueToken(r.Context(), email)
	if errors.Is(err, services.ErrUnknownUser) {
		response.JSON(w, http.StatusForbidden, tokenBody{})
		return
	}
	if err != nil {
		storeError(w, r, err)
		return
	}

	response.Success(w, tokenBody{AccessToken: token})
}
