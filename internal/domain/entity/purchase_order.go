package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType tipo de orden; define el prefijo de la numeración.
type OrderType string

const (
	OrderTypeService  OrderType = "SERVICIO"
	OrderTypePurchase OrderType = "COMPRA"
)

// OrderStatus ciclo de vida de la orden.
type OrderStatus string

const (
	OrderPending  OrderStatus = "PENDIENTE"
	OrderApproved OrderStatus = "APROBADA"
	OrderVoided   OrderStatus = "ANULADA"
)

// FileKind tipo de documento adjunto a una orden.
type FileKind string

const (
	FileQuotation    FileKind = "COTIZACION"
	FileInvoice      FileKind = "FACTURA"
	FileDeliveryNote FileKind = "GUIA"
	FileOther        FileKind = "OTRO"
)

// Valid indica si k es un tipo de adjunto conocido.
func (k FileKind) Valid() bool {
	switch k {
	case FileQuotation, FileInvoice, FileDeliveryNote, FileOther:
		return true
	}
	return false
}

// PurchaseOrder orden de compra o de servicio.
type PurchaseOrder struct {
	ID           string
	Number       string // {S|C}-{YYYY}-{NNNN}
	Type         OrderType
	SupplierID   string
	SupplierName string // solo lectura
	SupplierRUC  string // solo lectura
	WorkID       string // vacío si no está asociada a obra
	WorkName     string // solo lectura
	IssueDate    time.Time
	Currency     string // PEN, USD
	Status       OrderStatus
	Notes        string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Lines []OrderLine
	Files []OrderFile
}

// OrderLine ítem de la orden.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string // vacío para servicios libres
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderFile documento adjunto (cotización, factura, guía).
type OrderFile struct {
	ID           string
	OrderID      string
	Kind         FileKind
	OriginalName string
	StoragePath  string
	ContentType  string
	Size         int64
	UploadedAt   time.Time
}
