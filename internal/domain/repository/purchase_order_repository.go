package repository

import (
	"context"
	"time"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// OrderFilter filtros del listado de órdenes.
type OrderFilter struct {
	Type       entity.OrderType
	Status     entity.OrderStatus
	SupplierID string
	WorkID     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// PurchaseOrderRepository persistencia de órdenes con sus líneas y adjuntos.
type PurchaseOrderRepository interface {
	// Create inserta cabecera y líneas.
	Create(ctx context.Context, o *entity.PurchaseOrder) error
	// GetByID carga la orden con proveedor, obra, líneas y adjuntos.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.PurchaseOrder, error)
	// Update reescribe cabecera y reemplaza las líneas.
	Update(ctx context.Context, o *entity.PurchaseOrder) error
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, at time.Time) error
	Delete(ctx context.Context, id string) error

	AddFile(ctx context.Context, f *entity.OrderFile) error
	GetFile(ctx context.Context, orderID, fileID string) (*entity.OrderFile, error)
	DeleteFile(ctx context.Context, orderID, fileID string) error
}

// SequenceRepository contador por (prefijo, año) para numeraciones correlativas.
type SequenceRepository interface {
	// Next reserva el siguiente valor. Dentro de una transacción la fila del
	// contador queda bloqueada hasta el commit.
	Next(ctx context.Context, prefix string, year int) (int, error)
}
