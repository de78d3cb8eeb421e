package dto

import (
	"errors"
	"testing"

	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_FieldMessagesUseJSONNames(t *testing.T) {
	err := Validate(CreateEmployeeRequest{
		DocumentNumber: "123",
		Email:          "no-es-email",
		HireDate:       "2025/03/01",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "debe tener 8 caracteres", ve.Fields["document_number"])
	assert.Equal(t, "es obligatorio", ve.Fields["first_name"])
	assert.Equal(t, "no es un email válido", ve.Fields["email"])
	assert.Contains(t, ve.Fields["hire_date"], "formato esperado")
}

func TestValidate_NestedLines(t *testing.T) {
	err := Validate(CreateOrderRequest{
		Type:       "COMPRA",
		SupplierID: "3f9c2f7e-3a51-4f0e-9d2a-4a1f1a0b6c11",
		IssueDate:  "2025-03-01",
		Currency:   "PEN",
		Lines:      []OrderLineRequest{{Description: "", Unit: "bls", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("28.5")}},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "es obligatorio", ve.Fields["lines[0].description"])
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(LoginRequest{Email: "ana@obra.pe", Password: "x"}))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", FormatDate(d))

	_, err = ParseDate("01/03/2025")
	assert.Error(t, err)
}
