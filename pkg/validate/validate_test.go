package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hometech/server/pkg/validate"
)

type bookingInput struct {
	UserEmail   string `json:"userEmail" validate:"required,email"`
	ProductName string `json:"productName" validate:"required"`
	Price       int    `json:"price" validate:"nullable,gte=0"`
	Role        string `json:"role" validate:"nullable,in=User,Seller,Admin"`
	Phone       string `json:"phone" validate:"nullable,min=7,max=20"`
}

func TestStructValid(t *testing.T) {
	errs := validate.Struct(&bookingInput{
		UserEmail:   "a@x.com",
		ProductName: "Fan",
		Price:       120,
		Role:        "Seller",
		Phone:       "01700000000",
	})
	assert.False(t, validate.HasErrors(errs), "expected no errors, got %v", errs)
}

func TestRequiredFields(t *testing.T) {
	errs := validate.Struct(&bookingInput{})
	assert.Equal(t, "The userEmail field is required.", errs["userEmail"])
	assert.Equal(t, "The productName field is required.", errs["productName"])
}

func TestEmailRule(t *testing.T) {
	errs := validate.Struct(&bookingInput{UserEmail: "not-an-email", ProductName: "Fan"})
	assert.Equal(t, "The userEmail must be a valid email address.", errs["userEmail"])
}

func TestInRuleKeepsParamList(t *testing.T) {
	errs := validate.Struct(&bookingInput{
		UserEmail:   "a@x.com",
		ProductName: "Fan",
		Role:        "Superuser",
	})
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(&bookingInput{UserEmail: "a@x.com", ProductName: "Fan"})
	assert.False(t, validate.HasErrors(errs), "nullable fields must not fail when empty: %v", errs)
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Amount int `json:"amount" validate:"required,gte=1,lte=100"`
	}
	errs := validate.Struct(&in{Amount: 500})
	assert.Equal(t, "The amount must be less than or equal to 100.", errs["amount"])
}

func TestStringLengthBounds(t *testing.T) {
	errs := validate.Struct(&bookingInput{
		UserEmail:   "a@x.com",
		ProductName: "Fan",
		Phone:       "123",
	})
	assert.Equal(t, "The phone must be at least 7 characters.", errs["phone"])
}
