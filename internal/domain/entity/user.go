package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleLogistica    = "logistica"
	RoleRRHH         = "rrhh"
	RoleContabilidad = "contabilidad"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleLogistica, RoleRRHH, RoleContabilidad:
		return true
	}
	return false
}

// User representa un usuario del sistema con acceso a la API.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
