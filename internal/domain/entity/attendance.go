package entity

import "time"

// AttendanceStatus estado de asistencia de un día.
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "ASISTIO"
	AttendanceAbsent    AttendanceStatus = "FALTA"
	AttendanceLate      AttendanceStatus = "TARDANZA"
	AttendanceJustified AttendanceStatus = "JUSTIFICADO"
)

// AttendanceStatuses en el orden en que se muestran los totales.
var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceJustified}

// Valid indica si s es un estado conocido.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceJustified:
		return true
	}
	return false
}

// Attendance registro diario; único por (EmployeeID, Date).
type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time // solo fecha (medianoche UTC)
	Status       AttendanceStatus
	Note         string
	RegisteredBy string // id del usuario que registró
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DateKey formatea una fecha como clave de día "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
