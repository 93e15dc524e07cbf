package validator

import (
	"testing"

	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Email   string   `json:"email" validate:"required,email"`
	Name    string   `json:"name" validate:"notblank,max=10"`
	Color   string   `json:"color" validate:"omitempty,hexcolor6"`
	Opening string   `json:"openingTime" validate:"omitempty,clock"`
	Price   *float64 `json:"price" validate:"omitempty,gte=0"`
	Tags    []string `json:"tags" validate:"omitempty,dive,notblank"`
}

func TestValidator_Valid(t *testing.T) {
	price := 10.5
	err := New().Validate(&sampleInput{
		Email:   "maria@loja.com",
		Name:    "Loja",
		Color:   "#6B7280",
		Opening: "08:30",
		Price:   &price,
		Tags:    []string{"a"},
	})

	assert.NoError(t, err)
}

func TestValidator_ReportsEveryFieldWithJSONNames(t *testing.T) {
	price := -1.0
	err := New().Validate(&sampleInput{
		Email:   "not-an-email",
		Name:    "   ",
		Color:   "red",
		Opening: "25:00",
		Price:   &price,
		Tags:    []string{" "},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	appErr, ok := err.(domainerrors.AppError)
	require.True(t, ok)
	details := appErr.Details()
	assert.Contains(t, details, "email: e-mail inválido")
	assert.Contains(t, details, "name: obrigatório")
	assert.Contains(t, details, "color: cor inválida")
	assert.Contains(t, details, "openingTime: horário inválido")
	assert.Contains(t, details, "price: deve ser maior ou igual a 0")
	assert.Contains(t, details, "tags[0]: obrigatório")
}

func TestValidator_RequiredMissing(t *testing.T) {
	err := New().Validate(&sampleInput{Name: "x"})

	require.Error(t, err)
	assert.ErrorContains(t, err, "email: obrigatório")
}
