package attendance

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/pkg/textnorm"
)

// Columnas esperadas en la planilla: dni | fecha | estado | observacion.
const (
	colDocument = iota
	colDate
	colStatus
	colNote
)

var importHeader = []string{"dni", "fecha", "estado", "observacion"}

// excelEpoch día cero de los seriales de fecha de Excel (sistema 1900).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var statusAliases = map[string]entity.AttendanceStatus{
	"asistio":     entity.AttendancePresent,
	"presente":    entity.AttendancePresent,
	"falta":       entity.AttendanceAbsent,
	"tardanza":    entity.AttendanceLate,
	"justificado": entity.AttendanceJustified,
	"justificada": entity.AttendanceJustified,
}

// Import lee una planilla .xlsx o .xls y aplica las filas válidas, ordenadas por fecha, en una sola transacción.
// Las filas con error se devuelven en Failed con su número (1 = encabezado).
func (s *Service) Import(ctx context.Context, actorID, filename string, data []byte) (*dto.BulkAttendanceResponse, error) {
	rows, err := s.sheets.ReadRows(filename, data)
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}
	if len(rows) == 0 || !isHeader(rows[0]) {
		return nil, domain.NewValidationError("file", "falta la fila de encabezado: "+strings.Join(importHeader, " | "))
	}

	res := &dto.BulkAttendanceResponse{Failed: []dto.BulkFailure{}}
	byDate := map[string][]entry{}
	docs := map[string]string{} // dni -> employee id
	for i, row := range rows[1:] {
		n := i + 2
		if blank(row) {
			continue
		}
		doc := cell(row, colDocument)
		fail := func(reason string) {
			res.Failed = append(res.Failed, dto.BulkFailure{Row: n, Document: doc, Reason: reason})
		}

		date, err := ParseSheetDate(cell(row, colDate))
		if err != nil {
			fail(err.Error())
			continue
		}
		status, ok := ParseStatus(cell(row, colStatus))
		if !ok {
			fail(fmt.Sprintf("estado desconocido %q", cell(row, colStatus)))
			continue
		}
		empID, found := docs[doc]
		if !found {
			emp, err := s.employees.GetByDocument(ctx, doc)
			if err != nil {
				return nil, err
			}
			if emp != nil {
				empID = emp.ID
			}
			docs[doc] = empID
		}
		if empID == "" {
			fail("empleado inexistente")
			continue
		}
		key := entity.DateKey(date)
		byDate[key] = append(byDate[key], entry{employeeID: empID, date: date, status: status, note: cell(row, colNote)})
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var batch []entry
	for _, k := range keys {
		batch = append(batch, byDate[k]...)
	}
	if err := s.upsert(ctx, actorID, batch, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ParseSheetDate acepta "YYYY-MM-DD", "DD/MM/YYYY" o el serial numérico de Excel.
func ParseSheetDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	for _, layout := range []string{dto.DateLayout, "02/01/2006", "2/1/2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		return excelEpoch.AddDate(0, 0, int(serial)), nil
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", v)
}

// ParseStatus reconoce el estado sin importar mayúsculas ni tildes ("Asistió", "FALTA", "tardanza").
func ParseStatus(v string) (entity.AttendanceStatus, bool) {
	st, ok := statusAliases[textnorm.Fold(v)]
	return st, ok
}

func isHeader(row []string) bool {
	if len(row) < len(importHeader)-1 {
		return false
	}
	for i, want := range importHeader[:colNote] {
		if textnorm.Fold(row[i]) != want {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
