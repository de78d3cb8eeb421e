package htmlreport

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/report"
)

func render(t *testing.T, employees []*entity.Employee, records []*entity.Attendance) *etree.Document {
	t.Helper()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) // sábado
	end := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	m, err := report.BuildAttendanceMatrix(start, end, employees, records)
	require.NoError(t, err)

	b, err := NewRenderer().AttendanceMatrix(m, ports.ReportMeta{
		CompanyName: "Constructora <Andina>",
		Title:       "Reporte de asistencia",
		GeneratedAt: start,
	})
	require.NoError(t, err)
	assert.Contains(t, string(b), "<!DOCTYPE html>")
	assert.Contains(t, string(b), "Constructora &lt;Andina&gt;")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	return doc
}

func TestAttendanceMatrix_Cells(t *testing.T) {
	doc := render(t,
		[]*entity.Employee{{ID: "e1", DocumentNumber: "40111222", FirstName: "Ana", LastName: "Quispe", RoleName: "Operario"}},
		[]*entity.Attendance{
			{EmployeeID: "e1", Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Status: entity.AttendanceLate},
			{EmployeeID: "e1", Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Status: entity.AttendancePresent},
		})

	heads := doc.FindElements("//thead/tr/th")
	require.Len(t, heads, 4+3+4+1)
	assert.Equal(t, "weekend", heads[4].SelectAttrValue("class", ""))
	assert.Equal(t, "weekend", heads[5].SelectAttrValue("class", ""))
	assert.Equal(t, "", heads[6].SelectAttrValue("class", ""))

	cells := doc.FindElements("//tbody/tr/td")
	require.Len(t, cells, 4+3+4+1)
	assert.Equal(t, "Quispe, Ana", cells[2].Text())
	assert.Equal(t, "T", cells[4].Text())
	assert.Equal(t, "day weekend tardanza", cells[4].SelectAttrValue("class", ""))
	assert.Equal(t, "", cells[5].Text())
	assert.Equal(t, "✓", cells[6].Text())
	assert.Equal(t, "day asistio", cells[6].SelectAttrValue("class", ""))
	assert.Equal(t, "1", cells[7].Text())
	assert.Equal(t, "100.00%", cells[11].Text())

	legend := doc.FindElements("//ul/li")
	require.Len(t, legend, 4)
	assert.Equal(t, "✗ Falta", legend[1].Text())
}

func TestAttendanceMatrix_NoEmployees(t *testing.T) {
	doc := render(t, nil, nil)
	cells := doc.FindElements("//tbody/tr/td")
	require.Len(t, cells, 1)
	assert.Equal(t, "12", cells[0].SelectAttrValue("colspan", ""))
}
