package entity

import "time"

// Product representa un material o servicio que se pide en órdenes y requerimientos.
type Product struct {
	ID          string
	CategoryID  string // vacío si no tiene categoría
	Code        string // código único
	Name        string
	Unit        string // unidad de medida: bls, kg, m3, und...
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
