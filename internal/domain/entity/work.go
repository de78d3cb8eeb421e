package entity

import "time"

// Work es una obra (proyecto o frente de trabajo).
type Work struct {
	ID        string
	Code      string // único, corto
	Name      string
	Location  string
	StartDate *time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountingCode código contable para imputar costos.
type AccountingCode struct {
	ID          string
	Code        string // único
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorkAccountingCode asociación obra ↔ código contable.
type WorkAccountingCode struct {
	ID               string
	WorkID           string
	AccountingCodeID string
	RegisteredAt     time.Time
}

// WorkCodeRow fila plana (obra, código) usada por el reporte agrupado.
type WorkCodeRow struct {
	WorkCode     string
	WorkName     string
	Code         string
	Name         string
	Description  string
	RegisteredAt time.Time
}
