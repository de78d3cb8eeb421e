package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoleRequest alta o edición de un cargo.
type RoleRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
}

// RoleResponse cargo.
type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateEmployeeRequest alta de empleado.
type CreateEmployeeRequest struct {
	DocumentNumber string `json:"document_number" validate:"required,len=8,numeric"`
	FirstName      string `json:"first_name" validate:"required,max=120"`
	LastName       string `json:"last_name" validate:"required,max=120"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"max=30"`
	RoleID         string `json:"role_id" validate:"omitempty,uuid"`
	HireDate       string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Active         *bool  `json:"active"`
}

// UpdateEmployeeRequest edición parcial de empleado.
type UpdateEmployeeRequest struct {
	DocumentNumber *string `json:"document_number" validate:"omitempty,len=8,numeric"`
	FirstName      *string `json:"first_name" validate:"omitempty,max=120"`
	LastName       *string `json:"last_name" validate:"omitempty,max=120"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	RoleID         *string `json:"role_id" validate:"omitempty,uuid"`
	HireDate       *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Active         *bool   `json:"active"`
}

// EmployeeResponse empleado.
type EmployeeResponse struct {
	ID             string `json:"id"`
	DocumentNumber string `json:"document_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	RoleID         string `json:"role_id,omitempty"`
	RoleName       string `json:"role_name,omitempty"`
	HireDate       string `json:"hire_date,omitempty"`
	Active         bool   `json:"active"`
}

// EmployeeListQuery filtros del listado de empleados.
type EmployeeListQuery struct {
	PageRequest
	Active *bool  `query:"active"`
	RoleID string `query:"role_id"`
	Search string `query:"q"`
}

// AttendanceRequest registro de un día.
type AttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,oneof=ASISTIO FALTA TARDANZA JUSTIFICADO"`
	Note       string `json:"note" validate:"max=500"`
}

// UpdateAttendanceRequest cambio de estado u observación.
type UpdateAttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=ASISTIO FALTA TARDANZA JUSTIFICADO"`
	Note   string `json:"note" validate:"max=500"`
}

// BulkAttendanceEntry estado de un empleado en la carga masiva.
type BulkAttendanceEntry struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Status     string `json:"status" validate:"required,oneof=ASISTIO FALTA TARDANZA JUSTIFICADO"`
	Note       string `json:"note" validate:"max=500"`
}

// BulkAttendanceRequest asistencia de varios empleados para una fecha.
type BulkAttendanceRequest struct {
	Date    string                `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []BulkAttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// BulkFailure entrada rechazada con su motivo.
type BulkFailure struct {
	Row        int    `json:"row,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Document   string `json:"document_number,omitempty"`
	Date       string `json:"date,omitempty"`
	Reason     string `json:"reason"`
}

// BulkAttendanceResponse conteo de creados y actualizados.
type BulkAttendanceResponse struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Failed  []BulkFailure `json:"failed"`
}

// AttendanceResponse registro de asistencia.
type AttendanceResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	Note         string    `json:"note"`
	RegisteredBy string    `json:"registered_by,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RangeQuery rango de fechas inclusive ("YYYY-MM-DD").
type RangeQuery struct {
	Start      string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End        string `query:"end" validate:"omitempty,datetime=2006-01-02"`
	EmployeeID string `query:"employee_id" validate:"omitempty,uuid"`
}

// TrainingAttendeeRequest asistente convocado.
type TrainingAttendeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Attended   bool   `json:"attended"`
	Note       string `json:"note" validate:"max=500"`
}

// TrainingRequest alta o edición de capacitación.
type TrainingRequest struct {
	Topic         string                    `json:"topic" validate:"required,max=200"`
	Description   string                    `json:"description"`
	Instructor    string                    `json:"instructor" validate:"max=200"`
	Place         string                    `json:"place" validate:"max=200"`
	Date          string                    `json:"date" validate:"required,datetime=2006-01-02"`
	DurationHours decimal.Decimal           `json:"duration_hours"`
	Attendees     []TrainingAttendeeRequest `json:"attendees" validate:"dive"`
}

// TrainingAttendeesRequest reemplazo de la lista de asistentes.
type TrainingAttendeesRequest struct {
	Attendees []TrainingAttendeeRequest `json:"attendees" validate:"dive"`
}

// TrainingAttendeeResponse asistente.
type TrainingAttendeeResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Attended     bool   `json:"attended"`
	Note         string `json:"note"`
}

// TrainingResponse capacitación.
type TrainingResponse struct {
	ID            string                     `json:"id"`
	Topic         string                     `json:"topic"`
	Description   string                     `json:"description"`
	Instructor    string                     `json:"instructor"`
	Place         string                     `json:"place"`
	Date          string                     `json:"date"`
	DurationHours decimal.Decimal            `json:"duration_hours"`
	Attendees     []TrainingAttendeeResponse `json:"attendees,omitempty"`
	AttendedCount int                        `json:"attended_count"`
}
