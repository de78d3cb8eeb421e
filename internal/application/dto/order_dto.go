package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest ítem de la orden.
type OrderLineRequest struct {
	ProductID   string          `json:"product_id" validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"required,max=300"`
	Unit        string          `json:"unit" validate:"required,max=20"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest alta de orden de compra o servicio.
type CreateOrderRequest struct {
	Type       string             `json:"type" validate:"required,oneof=SERVICIO COMPRA"`
	SupplierID string             `json:"supplier_id" validate:"required,uuid"`
	WorkID     string             `json:"work_id" validate:"omitempty,uuid"`
	IssueDate  string             `json:"issue_date" validate:"required,datetime=2006-01-02"`
	Currency   string             `json:"currency" validate:"required,oneof=PEN USD"`
	IncludeTax bool               `json:"include_tax"`
	Notes      string             `json:"notes" validate:"max=1000"`
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateOrderRequest edición de una orden pendiente (el tipo y el número no cambian).
type UpdateOrderRequest struct {
	SupplierID string             `json:"supplier_id" validate:"required,uuid"`
	WorkID     string             `json:"work_id" validate:"omitempty,uuid"`
	IssueDate  string             `json:"issue_date" validate:"required,datetime=2006-01-02"`
	Currency   string             `json:"currency" validate:"required,oneof=PEN USD"`
	IncludeTax bool               `json:"include_tax"`
	Notes      string             `json:"notes" validate:"max=1000"`
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// OrderStatusRequest cambio de estado.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=APROBADA ANULADA"`
}

// OrderListQuery filtros del listado de órdenes.
type OrderListQuery struct {
	PageRequest
	Type       string `query:"type" validate:"omitempty,oneof=SERVICIO COMPRA"`
	Status     string `query:"status" validate:"omitempty,oneof=PENDIENTE APROBADA ANULADA"`
	SupplierID string `query:"supplier_id" validate:"omitempty,uuid"`
	WorkID     string `query:"work_id" validate:"omitempty,uuid"`
	Start      string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End        string `query:"end" validate:"omitempty,datetime=2006-01-02"`
}

// UploadedFile archivo recibido por multipart; Content lo cierra quien lo abrió.
type UploadedFile struct {
	Kind        string
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// OrderLineResponse ítem.
type OrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderFileResponse adjunto.
type OrderFileResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// OrderResponse orden completa.
type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Type         string              `json:"type"`
	SupplierID   string              `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	WorkID       string              `json:"work_id,omitempty"`
	WorkName     string              `json:"work_name,omitempty"`
	IssueDate    string              `json:"issue_date"`
	Currency     string              `json:"currency"`
	Status       string              `json:"status"`
	Notes        string              `json:"notes"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Tax          decimal.Decimal     `json:"tax"`
	Total        decimal.Decimal     `json:"total"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
	Files        []OrderFileResponse `json:"files,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}
