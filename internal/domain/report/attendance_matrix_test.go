package report

import (
	"testing"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employees() []*entity.Employee {
	return []*entity.Employee{
		{ID: "e1", DocumentNumber: "40111222", FirstName: "Ana", LastName: "Quispe", Active: true},
		{ID: "e2", DocumentNumber: "40333444", FirstName: "Luis", LastName: "Mamani", Active: true},
		{ID: "e3", DocumentNumber: "40555666", FirstName: "Rosa", LastName: "Huamán", Active: true},
	}
}

func TestBuildAttendanceMatrix_LookupAndBlanks(t *testing.T) {
	records := []*entity.Attendance{
		{EmployeeID: "e1", Date: date(2025, 3, 1), Status: entity.AttendancePresent},
		{EmployeeID: "e1", Date: date(2025, 3, 3), Status: entity.AttendanceLate},
		{EmployeeID: "e2", Date: date(2025, 3, 2), Status: entity.AttendanceAbsent},
		{EmployeeID: "e2", Date: date(2025, 3, 3), Status: entity.AttendanceJustified},
		// fuera de rango y de empleado desconocido: se ignoran
		{EmployeeID: "e1", Date: date(2025, 3, 4), Status: entity.AttendanceAbsent},
		{EmployeeID: "x9", Date: date(2025, 3, 1), Status: entity.AttendancePresent},
	}

	m, err := BuildAttendanceMatrix(date(2025, 3, 1), date(2025, 3, 3), employees(), records)
	require.NoError(t, err)
	require.Len(t, m.Days, 3)
	require.Len(t, m.Rows, 3, "los tres empleados deben aparecer")

	assert.Equal(t, []entity.AttendanceStatus{entity.AttendancePresent, "", entity.AttendanceLate}, m.Rows[0].Cells)
	assert.Equal(t, []entity.AttendanceStatus{"", entity.AttendanceAbsent, entity.AttendanceJustified}, m.Rows[1].Cells)
	assert.Equal(t, []entity.AttendanceStatus{"", "", ""}, m.Rows[2].Cells, "sin registros la fila queda en blanco")

	// cada (empleado, día) del set coincide con la celda
	col := map[string]int{}
	for i, d := range m.Days {
		col[d.Key] = i
	}
	row := map[string]int{"e1": 0, "e2": 1, "e3": 2}
	for _, r := range records[:4] {
		assert.Equal(t, r.Status, m.Rows[row[r.EmployeeID]].Cells[col[entity.DateKey(r.Date)]])
	}
}

func TestBuildAttendanceMatrix_Totals(t *testing.T) {
	records := []*entity.Attendance{
		{EmployeeID: "e1", Date: date(2025, 3, 1), Status: entity.AttendancePresent},
		{EmployeeID: "e1", Date: date(2025, 3, 2), Status: entity.AttendanceLate},
		{EmployeeID: "e1", Date: date(2025, 3, 3), Status: entity.AttendanceAbsent},
	}
	m, err := BuildAttendanceMatrix(date(2025, 3, 1), date(2025, 3, 3), employees()[:2], records)
	require.NoError(t, err)

	r := m.Rows[0]
	assert.Equal(t, 3, r.Registered)
	assert.Equal(t, 1, r.Totals[entity.AttendancePresent])
	assert.Equal(t, 1, r.Totals[entity.AttendanceLate])
	assert.Equal(t, 1, r.Totals[entity.AttendanceAbsent])
	assert.True(t, decimal.RequireFromString("66.67").Equal(r.Percent), "got %s", r.Percent)

	assert.True(t, m.Rows[1].Percent.IsZero(), "sin registros el porcentaje es 0")
	assert.Equal(t, "Quispe, Ana", r.Name)
}

func TestBuildAttendanceMatrix_SingleDayNoRecords(t *testing.T) {
	m, err := BuildAttendanceMatrix(date(2025, 3, 5), date(2025, 3, 5), employees(), nil)
	require.NoError(t, err)
	require.Len(t, m.Days, 1)
	for _, r := range m.Rows {
		assert.Len(t, r.Cells, 1)
		assert.Equal(t, entity.AttendanceStatus(""), r.Cells[0])
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "✓", Glyph(entity.AttendancePresent))
	assert.Equal(t, "✗", Glyph(entity.AttendanceAbsent))
	assert.Equal(t, "T", Glyph(entity.AttendanceLate))
	assert.Equal(t, "J", Glyph(entity.AttendanceJustified))
	assert.Equal(t, "", Glyph(""))
}
