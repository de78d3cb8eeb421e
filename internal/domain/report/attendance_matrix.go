package report

import (
	"time"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Glyph símbolo que se dibuja en la celda para cada estado.
func Glyph(s entity.AttendanceStatus) string {
	switch s {
	case entity.AttendancePresent:
		return "✓"
	case entity.AttendanceAbsent:
		return "✗"
	case entity.AttendanceLate:
		return "T"
	case entity.AttendanceJustified:
		return "J"
	}
	return ""
}

// MatrixRow una fila por empleado; Cells alinea con AttendanceMatrix.Days.
type MatrixRow struct {
	EmployeeID     string
	DocumentNumber string
	Name           string
	RoleName       string
	Cells          []entity.AttendanceStatus // "" si no hay registro ese día
	Totals         map[entity.AttendanceStatus]int
	Registered     int
	Percent        decimal.Decimal // (ASISTIO + TARDANZA) / registrados * 100
}

// AttendanceMatrix reporte mensual de asistencia ya pivotado.
type AttendanceMatrix struct {
	Start time.Time
	End   time.Time
	Days  []Day
	Rows  []MatrixRow
}

// Title título legible del periodo.
func (m *AttendanceMatrix) Title() string {
	return PeriodLabel(m.Start, m.End)
}

// BuildAttendanceMatrix pivota los registros en una matriz empleado × día.
// Todos los empleados aparecen aunque no tengan registros; los registros fuera
// del rango o de empleados no listados se ignoran.
func BuildAttendanceMatrix(start, end time.Time, employees []*entity.Employee, records []*entity.Attendance) (*AttendanceMatrix, error) {
	days, err := EnumerateDays(start, end)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]map[string]entity.AttendanceStatus, len(employees))
	for _, r := range records {
		if r == nil {
			continue
		}
		perDay, ok := byEmployee[r.EmployeeID]
		if !ok {
			perDay = make(map[string]entity.AttendanceStatus)
			byEmployee[r.EmployeeID] = perDay
		}
		perDay[entity.DateKey(r.Date)] = r.Status
	}

	m := &AttendanceMatrix{
		Start: DateOnly(start),
		End:   DateOnly(end),
		Days:  days,
		Rows:  make([]MatrixRow, 0, len(employees)),
	}
	for _, e := range employees {
		row := MatrixRow{
			EmployeeID:     e.ID,
			DocumentNumber: e.DocumentNumber,
			Name:           e.FullName(),
			RoleName:       e.RoleName,
			Cells:          make([]entity.AttendanceStatus, len(days)),
			Totals:         make(map[entity.AttendanceStatus]int, len(entity.AttendanceStatuses)),
		}
		perDay := byEmployee[e.ID]
		for i, d := range days {
			st, ok := perDay[d.Key]
			if !ok {
				continue
			}
			row.Cells[i] = st
			row.Totals[st]++
			row.Registered++
		}
		row.Percent = attendancePercent(row.Totals[entity.AttendancePresent]+row.Totals[entity.AttendanceLate], row.Registered)
		m.Rows = append(m.Rows, row)
	}
	return m, nil
}

func attendancePercent(attended, registered int) decimal.Decimal {
	if registered == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(attended)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(registered))).
		Round(2)
}
