// Package purchasing órdenes de compra y de servicio con sus líneas y documentos adjuntos.
package purchasing

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	po "github.com/jhoicas/constructora-api/internal/domain/purchasing"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// TxRunner ejecuta fn con los repositorios de órdenes y numeración atados a una transacción.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.PurchaseOrderRepository, seq repository.SequenceRepository) error) error
}

// Service casos de uso de órdenes.
type Service struct {
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	works     repository.WorkRepository
	products  repository.ProductRepository
	tx        TxRunner
	storage   ports.FileStorage
	now       ports.Clock
	maxUpload int64
}

// Deps dependencias del servicio de órdenes.
type Deps struct {
	Orders      repository.PurchaseOrderRepository
	Suppliers   repository.SupplierRepository
	Works       repository.WorkRepository
	Products    repository.ProductRepository
	Tx          TxRunner
	Storage     ports.FileStorage
	Clock       ports.Clock
	MaxUploadMB int
}

func NewService(d Deps) *Service {
	return &Service{
		orders:    d.Orders,
		suppliers: d.Suppliers,
		works:     d.Works,
		products:  d.Products,
		tx:        d.Tx,
		storage:   d.Storage,
		now:       d.Clock,
		maxUpload: int64(d.MaxUploadMB) << 20,
	}
}

// orderDir carpeta de adjuntos de una orden dentro del disco.
func orderDir(orderID string) string {
	return path.Join("orders", orderID)
}

// Create valida la orden, calcula montos, reserva el número y guarda orden y adjuntos.
// Si la transacción falla los archivos ya escritos se eliminan.
func (s *Service) Create(ctx context.Context, actorID string, in dto.CreateOrderRequest, files []dto.UploadedFile) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := s.checkFiles(files); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, in.SupplierID, in.WorkID); err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, in.Lines)
	if err != nil {
		return nil, err
	}
	orderType := entity.OrderType(in.Type)
	prefix, err := po.PrefixFor(orderType)
	if err != nil {
		return nil, domain.NewValidationError("type", err.Error())
	}
	issue, _ := time.Parse(dto.DateLayout, in.IssueDate)
	now := s.now()

	lines, totals := po.ComputeTotals(lines, in.IncludeTax)
	o := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		Type:       orderType,
		SupplierID: in.SupplierID,
		WorkID:     in.WorkID,
		IssueDate:  issue,
		Currency:   in.Currency,
		Status:     entity.OrderPending,
		Notes:      in.Notes,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		CreatedBy:  actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].OrderID = o.ID
	}
	o.Lines = lines

	stored, err := s.store(ctx, o.ID, files)
	if err != nil {
		s.cleanup(ctx, o.ID)
		return nil, err
	}

	err = s.tx.RunOrders(ctx, func(orders repository.PurchaseOrderRepository, seq repository.SequenceRepository) error {
		n, err := seq.Next(ctx, prefix, issue.Year())
		if err != nil {
			return err
		}
		o.Number = po.FormatNumber(prefix, issue.Year(), n)
		if err := orders.Create(ctx, o); err != nil {
			return err
		}
		for i := range stored {
			if err := orders.AddFile(ctx, &stored[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.cleanup(ctx, o.ID)
		return nil, err
	}
	log.Info().
		Str("component", "purchasing").
		Str("order_id", o.ID).
		Str("number", o.Number).
		Int("files", len(stored)).
		Msg("orden registrada")
	return s.Get(ctx, o.ID)
}

func (s *Service) cleanup(ctx context.Context, orderID string) {
	if err := s.storage.DeleteDir(ctx, orderDir(orderID)); err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudieron limpiar los adjuntos")
	}
}

func (s *Service) checkRefs(ctx context.Context, supplierID, workID string) error {
	sup, err := s.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.NewValidationError("supplier_id", "el proveedor no existe")
	}
	if workID == "" {
		return nil
	}
	w, err := s.works.GetByID(ctx, workID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.NewValidationError("work_id", "la obra no existe")
	}
	return nil
}

// buildLines valida cantidades, precios y productos referenciados.
func (s *Service) buildLines(ctx context.Context, in []dto.OrderLineRequest) ([]entity.OrderLine, error) {
	out := make([]entity.OrderLine, 0, len(in))
	for i, l := range in {
		field := fmt.Sprintf("lines[%d]", i)
		if !l.Quantity.IsPositive() {
			return nil, domain.NewValidationError(field+".quantity", "debe ser mayor que 0")
		}
		if l.UnitPrice.IsNegative() {
			return nil, domain.NewValidationError(field+".unit_price", "no puede ser negativo")
		}
		if l.ProductID != "" {
			p, err := s.products.GetByID(ctx, l.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, domain.NewValidationError(field+".product_id", "el producto no existe")
			}
		}
		out = append(out, entity.OrderLine{
			ProductID:   l.ProductID,
			Description: l.Description,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return out, nil
}

func (s *Service) checkFiles(files []dto.UploadedFile) error {
	for i, f := range files {
		field := fmt.Sprintf("files[%d]", i)
		if !entity.FileKind(f.Kind).Valid() {
			return domain.NewValidationError(field+".kind", "tipo de documento inválido: "+f.Kind)
		}
		if s.maxUpload > 0 && f.Size > s.maxUpload {
			return domain.NewValidationError(field, fmt.Sprintf("supera el máximo de %d MB", s.maxUpload>>20))
		}
	}
	return nil
}

// store escribe los adjuntos en orders/{orderID}/ y devuelve sus registros.
func (s *Service) store(ctx context.Context, orderID string, files []dto.UploadedFile) ([]entity.OrderFile, error) {
	out := make([]entity.OrderFile, 0, len(files))
	for _, f := range files {
		p, size, err := s.storage.Save(ctx, orderDir(orderID), f.Name, f.Content)
		if err != nil {
			return nil, fmt.Errorf("guardar adjunto %q: %w", f.Name, err)
		}
		out = append(out, entity.OrderFile{
			ID:           uuid.New().String(),
			OrderID:      orderID,
			Kind:         entity.FileKind(f.Kind),
			OriginalName: f.Name,
			StoragePath:  p,
			ContentType:  f.ContentType,
			Size:         size,
			UploadedAt:   s.now(),
		})
	}
	return out, nil
}

// Order entidad completa, para los documentos PDF.
func (s *Service) Order(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

func (s *Service) List(ctx context.Context, q dto.OrderListQuery) ([]dto.OrderResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	q.DefaultPage()
	from, _ := dto.ParseDate(q.Start)
	to, _ := dto.ParseDate(q.End)
	list, err := s.orders.List(ctx, repository.OrderFilter{
		Type:       entity.OrderType(q.Type),
		Status:     entity.OrderStatus(q.Status),
		SupplierID: q.SupplierID,
		WorkID:     q.WorkID,
		From:       from,
		To:         to,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out, nil
}

// Update reescribe cabecera y líneas de una orden PENDIENTE y recalcula montos.
func (s *Service) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	o, err := s.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := po.EnsureEditable(o); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, in.SupplierID, in.WorkID); err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, in.Lines)
	if err != nil {
		return nil, err
	}
	lines, totals := po.ComputeTotals(lines, in.IncludeTax)
	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].OrderID = o.ID
	}
	o.SupplierID = in.SupplierID
	o.WorkID = in.WorkID
	o.IssueDate, _ = time.Parse(dto.DateLayout, in.IssueDate)
	o.Currency = in.Currency
	o.Notes = in.Notes
	o.Subtotal, o.Tax, o.Total = totals.Subtotal, totals.Tax, totals.Total
	o.Lines = lines
	o.UpdatedAt = s.now()

	err = s.tx.RunOrders(ctx, func(orders repository.PurchaseOrderRepository, _ repository.SequenceRepository) error {
		return orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// ChangeStatus aprueba o anula una orden PENDIENTE.
func (s *Service) ChangeStatus(ctx context.Context, id string, in dto.OrderStatusRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	o, err := s.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	to := entity.OrderStatus(in.Status)
	if !po.CanTransition(o.Status, to) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidState, o.Status, to)
	}
	if err := s.orders.UpdateStatus(ctx, id, to, s.now()); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete elimina una orden PENDIENTE junto con sus adjuntos.
func (s *Service) Delete(ctx context.Context, id string) error {
	o, err := s.Order(ctx, id)
	if err != nil {
		return err
	}
	if err := po.EnsureEditable(o); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.cleanup(ctx, id)
	return nil
}

// AddFiles adjunta documentos a una orden existente (cualquier estado).
func (s *Service) AddFiles(ctx context.Context, id string, files []dto.UploadedFile) ([]dto.OrderFileResponse, error) {
	if len(files) == 0 {
		return nil, domain.NewValidationError("files", "no se recibieron archivos")
	}
	if err := s.checkFiles(files); err != nil {
		return nil, err
	}
	if _, err := s.Order(ctx, id); err != nil {
		return nil, err
	}
	stored, err := s.store(ctx, id, files)
	if err != nil {
		s.removeFiles(ctx, stored)
		return nil, err
	}
	err = s.tx.RunOrders(ctx, func(orders repository.PurchaseOrderRepository, _ repository.SequenceRepository) error {
		for i := range stored {
			if err := orders.AddFile(ctx, &stored[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.removeFiles(ctx, stored)
		return nil, err
	}
	out := make([]dto.OrderFileResponse, 0, len(stored))
	for _, f := range stored {
		out = append(out, toFileResponse(f))
	}
	return out, nil
}

func (s *Service) removeFiles(ctx context.Context, files []entity.OrderFile) {
	for _, f := range files {
		if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
			log.Warn().Err(err).Str("path", f.StoragePath).Msg("no se pudo eliminar el adjunto")
		}
	}
}

// DownloadFile abre un adjunto para enviarlo con su nombre original.
func (s *Service) DownloadFile(ctx context.Context, orderID, fileID string) (*dto.FileDownload, error) {
	f, err := s.orders.GetFile(ctx, orderID, fileID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	body, err := s.storage.Open(ctx, f.StoragePath)
	if err != nil {
		return nil, err
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &dto.FileDownload{Filename: f.OriginalName, ContentType: ct, Size: f.Size, Body: body}, nil
}

func (s *Service) DeleteFile(ctx context.Context, orderID, fileID string) error {
	f, err := s.orders.GetFile(ctx, orderID, fileID)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	if err := s.orders.DeleteFile(ctx, orderID, fileID); err != nil {
		return err
	}
	s.removeFiles(ctx, []entity.OrderFile{*f})
	return nil
}

// ToOrderResponse mapea la orden a su DTO.
func ToOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	res := &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Type:         string(o.Type),
		SupplierID:   o.SupplierID,
		SupplierName: o.SupplierName,
		WorkID:       o.WorkID,
		WorkName:     o.WorkName,
		IssueDate:    o.IssueDate.Format(dto.DateLayout),
		Currency:     o.Currency,
		Status:       string(o.Status),
		Notes:        o.Notes,
		Subtotal:     o.Subtotal,
		Tax:          o.Tax,
		Total:        o.Total,
		CreatedAt:    o.CreatedAt,
	}
	for _, l := range o.Lines {
		res.Lines = append(res.Lines, dto.OrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	for _, f := range o.Files {
		res.Files = append(res.Files, toFileResponse(f))
	}
	return res
}

func toFileResponse(f entity.OrderFile) dto.OrderFileResponse {
	return dto.OrderFileResponse{
		ID:           f.ID,
		Kind:         string(f.Kind),
		OriginalName: f.OriginalName,
		ContentType:  f.ContentType,
		Size:         f.Size,
		UploadedAt:   f.UploadedAt,
	}
}
