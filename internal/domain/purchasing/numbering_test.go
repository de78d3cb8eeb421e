package purchasing

import (
	"testing"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixFor(t *testing.T) {
	p, err := PrefixFor(entity.OrderTypeService)
	require.NoError(t, err)
	assert.Equal(t, "S", p)

	p, err = PrefixFor(entity.OrderTypePurchase)
	require.NoError(t, err)
	assert.Equal(t, "C", p)

	_, err = PrefixFor("OTRO")
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "S-2025-0007", FormatNumber("S", 2025, 7))
	assert.Equal(t, "C-2025-0123", FormatNumber("C", 2025, 123))
	assert.Equal(t, "C-2025-12345", FormatNumber("C", 2025, 12345), "más de 4 dígitos no se trunca")
	assert.Equal(t, "C-2025-%", Pattern("C", 2025))
}

func TestParseSequence(t *testing.T) {
	n, ok := ParseSequence("C-2025-0042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = ParseSequence("C-2025-")
	assert.False(t, ok)
	_, ok = ParseSequence("sin-numero-x")
	assert.False(t, ok)
}

func TestNextSequence(t *testing.T) {
	existing := []string{"C-2025-0001", "C-2025-0009", "C-2025-0003", "S-2025-0050", "C-2024-0099", "basura"}

	assert.Equal(t, 10, NextSequence(existing, "C", 2025))
	assert.Equal(t, 51, NextSequence(existing, "S", 2025))
	assert.Equal(t, 1, NextSequence(existing, "S", 2026), "año nuevo reinicia la secuencia")
	assert.Equal(t, 1, NextSequence(nil, "C", 2025))
}

func TestNextSequence_StrictlyIncreasing(t *testing.T) {
	var numbers []string
	for i := 0; i < 25; i++ {
		numbers = append(numbers, FormatNumber("C", 2025, NextSequence(numbers, "C", 2025)))
	}
	for i, n := range numbers {
		seq, ok := ParseSequence(n)
		require.True(t, ok)
		assert.Equal(t, i+1, seq, "sin huecos ni repetidos")
	}
}
