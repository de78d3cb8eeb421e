package entity

import "time"

// Supplier proveedor al que se emiten órdenes.
type Supplier struct {
	ID           string
	RUC          string // único
	BusinessName string
	ContactName  string
	Phone        string
	Email        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
