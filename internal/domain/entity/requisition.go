package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineStatus estado de entrega de una línea de requerimiento.
type LineStatus string

const (
	LinePending   LineStatus = "pendiente"
	LineDelivered LineStatus = "entregado"
	LineCancelled LineStatus = "cancelado"
)

// Requisition requerimiento de materiales, opcionalmente para una obra.
type Requisition struct {
	ID            string
	Code          string // RQ-{YYYY}-{NNNN}
	WorkID        string
	WorkName      string // solo lectura
	RequestedBy   string // id de empleado
	RequesterName string // solo lectura
	RequestDate   time.Time
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Lines []RequisitionLine
}

// RequisitionLine ítem pedido con su seguimiento de entrega.
type RequisitionLine struct {
	ID                string
	RequisitionID     string
	ProductID         string
	Description       string
	Unit              string
	Quantity          decimal.Decimal
	DeliveredQuantity *decimal.Decimal
	DeliveryDate      *time.Time
	Status            LineStatus
}
