package report

import (
	"fmt"
	"time"

	"github.com/jhoicas/constructora-api/pkg/textnorm"
)

var weekdayAbbr = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Day una columna del calendario del reporte.
type Day struct {
	Date        time.Time
	Key         string // YYYY-MM-DD
	DayOfMonth  int
	WeekdayAbbr string // "Lun", "Mar", "Mié"...
	Weekend     bool
}

// DateOnly trunca t a su fecha calendario en UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EnumerateDays devuelve todos los días de [start, end], ambos incluidos.
func EnumerateDays(start, end time.Time) ([]Day, error) {
	s, e := DateOnly(start), DateOnly(end)
	if s.After(e) {
		return nil, fmt.Errorf("report: rango inválido %s > %s", s.Format("2006-01-02"), e.Format("2006-01-02"))
	}
	n := int(e.Sub(s).Hours()/24) + 1
	days := make([]Day, 0, n)
	// el límite es e + 1 día; con un corte en e se perdería el último día
	stop := e.AddDate(0, 0, 1)
	for d := s; d.Before(stop); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		days = append(days, Day{
			Date:        d,
			Key:         d.Format("2006-01-02"),
			DayOfMonth:  d.Day(),
			WeekdayAbbr: textnorm.Title(weekdayAbbr[wd]),
			Weekend:     wd == time.Saturday || wd == time.Sunday,
		})
	}
	return days, nil
}

// MonthLabel "Marzo 2025".
func MonthLabel(t time.Time) string {
	return textnorm.Title(fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year()))
}

// MonthRange primer y último día del mes de t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// PeriodLabel título del periodo: "Marzo 2025" si es un mes completo, si no "01/03/2025 al 15/03/2025".
func PeriodLabel(start, end time.Time) string {
	first, last := MonthRange(start)
	if DateOnly(start).Equal(first) && DateOnly(end).Equal(last) {
		return MonthLabel(start)
	}
	return start.Format("02/01/2006") + " al " + end.Format("02/01/2006")
}
