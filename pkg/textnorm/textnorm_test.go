package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "cemento sol", Fold("  Cemento Sól "))
	assert.Equal(t, "fierro corrugado 1/2", Fold("FIERRO Corrugado 1/2"))
	assert.Equal(t, "pinguino", Fold("Pingüino"))
	assert.Equal(t, "", Fold(""))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Lun", Title("lun"))
	assert.Equal(t, "Marzo 2025", Title("marzo 2025"))
}

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "Ano Nino", StripAccents("Año Niño"))
	assert.Equal(t, "Informe Tecnico.PDF", StripAccents("Informe Técnico.PDF"))
}
