package usecase

import (
	"time"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/domain"
)

// parseOptionalDate convierte "YYYY-MM-DD" en *time.Time; el error lleva el nombre del campo.
func parseOptionalDate(field, s string) (*time.Time, error) {
	t, err := dto.ParseDate(s)
	if err != nil {
		return nil, domain.NewValidationError(field, "fecha inválida, formato esperado 2006-01-02")
	}
	return t, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
