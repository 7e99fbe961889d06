package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/vanij/pkg/validate"
)

type productInput struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	SKU      string  `json:"sku" validate:"nullable,alpha_dash,max=100"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Status   string  `json:"status" validate:"nullable,in=pending,processing,shipped,completed,cancelled"`
	Contact  string  `json:"contact" validate:"nullable,email"`
}

func TestStructValid(t *testing.T) {
	errs := validate.Struct(&productInput{
		Name:     "Widget",
		SKU:      "WID-001",
		Price:    9.99,
		Quantity: 3,
		Status:   "pending",
		Contact:  "ops@example.com",
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestStructRequired(t *testing.T) {
	errs := validate.Struct(&productInput{Quantity: 1})
	assert.Contains(t, errs, "name")
}

func TestStructBounds(t *testing.T) {
	errs := validate.Struct(&productInput{Name: "x", Quantity: 0})
	assert.Contains(t, errs, "quantity")

	errs = validate.Struct(&productInput{Name: "x", Quantity: 2, Price: -1})
	assert.Contains(t, errs, "price")
}

func TestStructNullableSkips(t *testing.T) {
	// Empty SKU, status and contact are fine: nullable short-circuits.
	errs := validate.Struct(&productInput{Name: "x", Quantity: 1})
	assert.NotContains(t, errs, "sku")
	assert.NotContains(t, errs, "status")
	assert.NotContains(t, errs, "contact")
}

func TestStructIn(t *testing.T) {
	errs := validate.Struct(&productInput{Name: "x", Quantity: 1, Status: "delivered"})
	assert.Contains(t, errs, "status")
}

func TestStructEmailAndAlphaDash(t *testing.T) {
	errs := validate.Struct(&productInput{Name: "x", Quantity: 1, Contact: "not-an-email"})
	assert.Contains(t, errs, "contact")

	errs = validate.Struct(&productInput{Name: "x", Quantity: 1, SKU: "has space"})
	assert.Contains(t, errs, "sku")
}
