package dto

import (
	"github.com/shopspring/decimal"
)

// RequisitionLineRequest ítem pedido.
type RequisitionLineRequest struct {
	ProductID   string          `json:"product_id" validate:"omitempty,uuid"`
	Description string          `json:"description" validate:"required,max=300"`
	Unit        string          `json:"unit" validate:"required,max=20"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateRequisitionRequest alta de requerimiento.
type CreateRequisitionRequest struct {
	WorkID      string                   `json:"work_id" validate:"omitempty,uuid"`
	RequestedBy string                   `json:"requested_by" validate:"required,uuid"`
	RequestDate string                   `json:"request_date" validate:"omitempty,datetime=2006-01-02"`
	Notes       string                   `json:"notes" validate:"max=1000"`
	Lines       []RequisitionLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DeliverLineRequest registro de entrega; ambos campos opcionales.
type DeliverLineRequest struct {
	DeliveredQuantity *decimal.Decimal `json:"delivered_quantity"`
	DeliveryDate      string           `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
}

// RequisitionListQuery filtros del listado.
type RequisitionListQuery struct {
	PageRequest
	WorkID string `query:"work_id" validate:"omitempty,uuid"`
	Start  string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End    string `query:"end" validate:"omitempty,datetime=2006-01-02"`
}

// RequisitionLineResponse ítem con su entrega.
type RequisitionLineResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id,omitempty"`
	Description       string           `json:"description"`
	Unit              string           `json:"unit"`
	Quantity          decimal.Decimal  `json:"quantity"`
	DeliveredQuantity *decimal.Decimal `json:"delivered_quantity"`
	DeliveryDate      string           `json:"delivery_date,omitempty"`
	Status            string           `json:"status"`
}

// RequisitionResponse requerimiento con avance.
type RequisitionResponse struct {
	ID              string                    `json:"id"`
	Code            string                    `json:"code"`
	WorkID          string                    `json:"work_id,omitempty"`
	WorkName        string                    `json:"work_name,omitempty"`
	RequestedBy     string                    `json:"requested_by"`
	RequesterName   string                    `json:"requester_name,omitempty"`
	RequestDate     string                    `json:"request_date"`
	Notes           string                    `json:"notes"`
	Status          string                    `json:"status"`
	Requested       decimal.Decimal           `json:"requested_total"`
	Delivered       decimal.Decimal           `json:"delivered_total"`
	PercentComplete decimal.Decimal           `json:"percent_complete"`
	Lines           []RequisitionLineResponse `json:"lines,omitempty"`
}
