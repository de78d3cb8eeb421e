package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Training capacitación dictada al personal.
type Training struct {
	ID            string
	Topic         string
	Description   string
	Instructor    string
	Place         string
	Date          time.Time
	DurationHours decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Attendees []TrainingAttendee
}

// TrainingAttendee empleado convocado a una capacitación.
type TrainingAttendee struct {
	ID           string
	TrainingID   string
	EmployeeID   string
	EmployeeName string // solo lectura
	Attended     bool
	Note         string
}
