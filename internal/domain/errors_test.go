package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear empleado: %w", NewValidationError("dni", "es obligatorio"))

	assert.True(t, errors.Is(err, ErrInvalidInput))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "es obligatorio", ve.Fields["dni"])
}

func TestValidationError_MessageSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"nombre": "requerido", "email": "inválido"}}
	assert.Equal(t, "validación: email: inválido; nombre: requerido", err.Error())
}
