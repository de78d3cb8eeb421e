package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var meta = ports.ReportMeta{CompanyName: "Constructora Andina SAC", CompanyRUC: "20123456789", Title: "Reporte", Subtitle: "Marzo 2025"}

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func value(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func styleOf(t *testing.T, f *excelize.File, sheet, cell string) int {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	return id
}

func day(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

func TestAttendanceMatrix(t *testing.T) {
	emps := []*entity.Employee{
		{ID: "e1", DocumentNumber: "40111222", FirstName: "Ana", LastName: "Quispe", RoleName: "Capataz"},
		{ID: "e2", DocumentNumber: "40333444", FirstName: "Luis", LastName: "Mamani"},
	}
	recs := []*entity.Attendance{
		{EmployeeID: "e1", Date: day(1), Status: entity.AttendancePresent},
		{EmployeeID: "e1", Date: day(3), Status: entity.AttendanceAbsent},
	}
	// 1 de marzo de 2025 es sábado.
	m, err := report.BuildAttendanceMatrix(day(1), day(3), emps, recs)
	require.NoError(t, err)

	b, err := NewWriter().AttendanceMatrix(m, meta)
	require.NoError(t, err)
	f := open(t, b)

	assert.Equal(t, []string{"Asistencia"}, f.GetSheetList())
	assert.Equal(t, "Constructora Andina SAC  ·  RUC 20123456789", value(t, f, "Asistencia", "A1"))
	assert.Equal(t, "Sáb\n1", value(t, f, "Asistencia", "E5"))
	assert.Equal(t, "Lun\n3", value(t, f, "Asistencia", "G5"))
	assert.Equal(t, "Quispe, Ana", value(t, f, "Asistencia", "C6"))
	assert.Equal(t, "✓", value(t, f, "Asistencia", "E6"))
	assert.Equal(t, "", value(t, f, "Asistencia", "F6"))
	assert.Equal(t, "✗", value(t, f, "Asistencia", "G6"))
	assert.Equal(t, "", value(t, f, "Asistencia", "E7"), "sin registros la fila queda en blanco")

	// Totales: H=Asistió, I=Falta, J=Tardanza, K=Justificado, L=%.
	assert.Equal(t, "1", value(t, f, "Asistencia", "H6"))
	assert.Equal(t, "1", value(t, f, "Asistencia", "I6"))
	assert.Equal(t, "% Asist.", value(t, f, "Asistencia", "L5"))

	assert.NotEqual(t, styleOf(t, f, "Asistencia", "G7"), styleOf(t, f, "Asistencia", "F7"), "domingo sombreado")
	assert.Equal(t, styleOf(t, f, "Asistencia", "E7"), styleOf(t, f, "Asistencia", "F7"))
	assert.NotEqual(t, styleOf(t, f, "Asistencia", "E6"), styleOf(t, f, "Asistencia", "G6"), "cada estado con su color")
}

func TestAccountingCodes_StylesByKind(t *testing.T) {
	rows := report.GroupAccountingCodes([]entity.WorkCodeRow{
		{WorkCode: "OB-01", WorkName: "Edificio Sur", Code: "62.1", Name: "Sueldos", RegisteredAt: day(5)},
		{WorkCode: "OB-01", WorkName: "Edificio Sur", Code: "63.2", Name: "Transporte", RegisteredAt: day(4)},
		{WorkCode: "OB-02", WorkName: "Puente", Code: "60.1", Name: "Compras", RegisteredAt: day(2)},
	})

	b, err := NewWriter().AccountingCodes(rows, meta)
	require.NoError(t, err)
	f := open(t, b)
	sheet := "Códigos contables"

	assert.Equal(t, "OB-01 - Edificio Sur (2 códigos contables)", value(t, f, sheet, "A6"))
	assert.Equal(t, "62.1", value(t, f, sheet, "B7"))
	assert.NotEqual(t, styleOf(t, f, sheet, "B7"), styleOf(t, f, sheet, "B8"), "franjas alternas")
	assert.NotEqual(t, styleOf(t, f, sheet, "A6"), styleOf(t, f, sheet, "B8"), "cabecera de grupo distinta")
	assert.Equal(t, styleOf(t, f, sheet, "A6"), styleOf(t, f, sheet, "A10"))
	assert.Equal(t, "", value(t, f, sheet, "A9"), "separador")
	assert.Equal(t, "OB-02 - Puente (1 código contable)", value(t, f, sheet, "A10"))

	merged, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	var refs []string
	for _, mc := range merged {
		refs = append(refs, mc.GetStartAxis()+":"+mc.GetEndAxis())
	}
	assert.Contains(t, refs, "A6:E6")
	assert.Contains(t, refs, "A10:E10")
}

func TestTable(t *testing.T) {
	tbl := ports.Table{
		Sheet: "Órdenes",
		Title: "Órdenes de compra",
		Columns: []ports.Column{
			{Header: "Número", Width: 14},
			{Header: "Fecha", Format: "date"},
			{Header: "Total", Format: "money"},
		},
		Rows: [][]any{
			{"C-2025-0001", day(10), decimal.RequireFromString("513.30")},
			{"C-2025-0002", nil, decimal.Zero},
		},
	}
	b, err := NewWriter().Table(tbl, ports.ReportMeta{CompanyName: "X"})
	require.NoError(t, err)
	f := open(t, b)

	assert.Equal(t, "Órdenes de compra", value(t, f, "Órdenes", "A2"))
	assert.Equal(t, "Número", value(t, f, "Órdenes", "A5"))
	assert.Equal(t, "C-2025-0001", value(t, f, "Órdenes", "A6"))
	assert.Equal(t, "10/03/2025", value(t, f, "Órdenes", "B6"))
	assert.Equal(t, "513.30", value(t, f, "Órdenes", "C6"))
	assert.Equal(t, "", value(t, f, "Órdenes", "B7"))
}

func TestReader_RoundTrip(t *testing.T) {
	src := excelize.NewFile()
	require.NoError(t, src.SetSheetRow("Sheet1", "A1", &[]any{"dni", "fecha", "estado", "observacion"}))
	require.NoError(t, src.SetSheetRow("Sheet1", "A2", &[]any{"40111222", "2025-03-10", "ASISTIO"}))
	buf, err := src.WriteToBuffer()
	require.NoError(t, err)

	rows, err := NewReader().ReadRows("marzo.XLSX", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"40111222", "2025-03-10", "ASISTIO"}, rows[1])
}

func TestReader_Rejects(t *testing.T) {
	_, err := NewReader().ReadRows("datos.csv", []byte("a,b"))
	assert.Error(t, err)

	_, err = NewReader().ReadRows("datos.xlsx", []byte("no es un zip"))
	assert.Error(t, err)

	_, err = NewReader().ReadRows("datos.xls", []byte("no es un xls"))
	assert.Error(t, err)
}
