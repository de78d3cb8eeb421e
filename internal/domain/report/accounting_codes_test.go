package report

import (
	"testing"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAccountingCodes_RowCounts(t *testing.T) {
	rows := []entity.WorkCodeRow{
		{WorkCode: "OB-01", WorkName: "Edificio Norte", Code: "6011", Name: "Materiales"},
		{WorkCode: "OB-01", WorkName: "Edificio Norte", Code: "6031", Name: "Suministros"},
		{WorkCode: "OB-01", WorkName: "Edificio Norte", Code: "6321", Name: "Transporte"},
		{WorkCode: "OB-02", WorkName: "Puente Sur", Code: "6011", Name: "Materiales"},
	}

	out := GroupAccountingCodes(rows)
	require.Len(t, out, 8, "2 cabeceras + 4 datos + 2 separadores")

	kinds := make([]RowKind, len(out))
	for i, r := range out {
		kinds[i] = r.Kind
		assert.Equal(t, i, r.Position)
	}
	assert.Equal(t, []RowKind{
		RowHeader, RowData, RowData, RowData, RowSeparator,
		RowHeader, RowData, RowSeparator,
	}, kinds)

	assert.Equal(t, "OB-01 - Edificio Norte (3 códigos contables)", out[0].Label())
	assert.Equal(t, "OB-02 - Puente Sur (1 código contable)", out[5].Label())
}

func TestGroupAccountingCodes_FirstSeenOrder(t *testing.T) {
	rows := []entity.WorkCodeRow{
		{WorkCode: "B", WorkName: "Obra B", Code: "1"},
		{WorkCode: "A", WorkName: "Obra A", Code: "2"},
		{WorkCode: "B", WorkName: "Obra B", Code: "3"},
	}
	out := GroupAccountingCodes(rows)

	require.Len(t, out, 7)
	assert.Equal(t, "B", out[0].WorkCode)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, []string{"1", "3"}, []string{out[1].Code, out[2].Code})
	assert.Equal(t, "A", out[4].WorkCode)
}

func TestGroupAccountingCodes_DescriptionIsNotAHeader(t *testing.T) {
	rows := []entity.WorkCodeRow{
		{WorkCode: "OB-01", WorkName: "Edificio", Code: "6011", Name: "Materiales", Description: "código de materiales"},
	}
	out := GroupAccountingCodes(rows)
	require.Len(t, out, 3)
	assert.Equal(t, RowData, out[1].Kind, "una descripción con 'código' sigue siendo dato")
}

func TestGroupAccountingCodes_Striping(t *testing.T) {
	rows := []entity.WorkCodeRow{
		{WorkCode: "OB-01", Code: "1"},
		{WorkCode: "OB-01", Code: "2"},
		{WorkCode: "OB-01", Code: "3"},
	}
	out := GroupAccountingCodes(rows)
	assert.False(t, out[0].Striped(), "cabecera nunca lleva franja")
	assert.True(t, out[1].Striped())
	assert.False(t, out[2].Striped())
	assert.True(t, out[3].Striped())
	assert.False(t, out[4].Striped())
}

func TestGroupAccountingCodes_Empty(t *testing.T) {
	assert.Empty(t, GroupAccountingCodes(nil))
}

func TestCodeCountLabel(t *testing.T) {
	assert.Equal(t, "(1 código contable)", CodeCountLabel(1))
	assert.Equal(t, "(2 códigos contables)", CodeCountLabel(2))
	assert.Equal(t, "(0 códigos contables)", CodeCountLabel(0))
}
