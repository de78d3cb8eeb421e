package entity

import "time"

// Role es el cargo de un empleado (operario, capataz, residente...).
// No confundir con el rol de acceso de User.
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Employee representa a una persona en planilla.
type Employee struct {
	ID             string
	DocumentNumber string // DNI, único
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	RoleID         string
	RoleName       string // solo lectura, cargado por join
	HireDate       *time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName devuelve "Apellidos, Nombres" como se muestra en los reportes.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	if e.FirstName == "" {
		return e.LastName
	}
	return e.LastName + ", " + e.FirstName
}
