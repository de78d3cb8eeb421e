package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes, líneas (order_lines) y adjuntos (order_files).
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderSelect = `
	SELECT o.id, o.number, o.type, o.supplier_id, s.business_name, s.ruc, o.work_id, COALESCE(w.name, ''),
	       o.issue_date, o.currency, o.status, o.notes, o.subtotal, o.tax, o.total, o.created_by,
	       o.created_at, o.updated_at
	FROM purchase_orders o
	JOIN suppliers s ON s.id = o.supplier_id
	LEFT JOIN works w ON w.id = o.work_id`

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var (
		o                 entity.PurchaseOrder
		typ, status       string
		workID, createdBy *string
	)
	if err := row.Scan(&o.ID, &o.Number, &typ, &o.SupplierID, &o.SupplierName, &o.SupplierRUC, &workID, &o.WorkName,
		&o.IssueDate, &o.Currency, &status, &o.Notes, &o.Subtotal, &o.Tax, &o.Total, &createdBy,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Type = entity.OrderType(typ)
	o.Status = entity.OrderStatus(status)
	o.WorkID = derefStr(workID)
	o.CreatedBy = derefStr(createdBy)
	return &o, nil
}

// Create inserta la cabecera y sus líneas. Usar dentro de una transacción.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, number, type, supplier_id, work_id, issue_date, currency, status, notes,
		                             subtotal, tax, total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.Number, string(o.Type), o.SupplierID, nullIfEmpty(o.WorkID), dateOnly(o.IssueDate), o.Currency,
		string(o.Status), o.Notes, o.Subtotal, o.Tax, o.Total, nullIfEmpty(o.CreatedBy), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert purchase order", err)
	}
	return r.insertLines(ctx, o.ID, o.Lines)
}

func (r *PurchaseOrderRepo) insertLines(ctx context.Context, orderID string, lines []entity.OrderLine) error {
	for i, l := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, position, product_id, description, unit, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.ID, orderID, i+1, nullIfEmpty(l.ProductID), l.Description, l.Unit, l.Quantity, l.UnitPrice, l.Subtotal)
		if err != nil {
			return mapWriteErr("insert order line", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if o.Lines, err = r.lines(ctx, id); err != nil {
		return nil, err
	}
	if o.Files, err = r.files(ctx, id); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PurchaseOrderRepo) lines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, description, unit, quantity, unit_price, subtotal
		FROM order_lines WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		var productID *string
		if err := rows.Scan(&l.ID, &l.OrderID, &productID, &l.Description, &l.Unit, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		l.ProductID = derefStr(productID)
		list = append(list, l)
	}
	return list, rows.Err()
}

const orderFileColumns = `id, order_id, kind, original_name, storage_path, content_type, size, uploaded_at`

func scanOrderFile(row pgx.Row) (*entity.OrderFile, error) {
	var f entity.OrderFile
	var kind string
	if err := row.Scan(&f.ID, &f.OrderID, &kind, &f.OriginalName, &f.StoragePath, &f.ContentType, &f.Size, &f.UploadedAt); err != nil {
		return nil, err
	}
	f.Kind = entity.FileKind(kind)
	return &f, nil
}

func (r *PurchaseOrderRepo) files(ctx context.Context, orderID string) ([]entity.OrderFile, error) {
	rows, err := r.q.Query(ctx, `SELECT `+orderFileColumns+` FROM order_files WHERE order_id = $1 ORDER BY uploaded_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order files: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderFile
	for rows.Next() {
		f, err := scanOrderFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order file: %w", err)
		}
		list = append(list, *f)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.PurchaseOrder, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("o.type = $%d", string(f.Type))
	}
	if f.Status != "" {
		add("o.status = $%d", string(f.Status))
	}
	if f.SupplierID != "" {
		add("o.supplier_id = $%d", f.SupplierID)
	}
	if f.WorkID != "" {
		add("o.work_id = $%d", f.WorkID)
	}
	if f.From != nil {
		add("o.issue_date >= $%d", dateOnly(*f.From))
	}
	if f.To != nil {
		add("o.issue_date <= $%d", dateOnly(*f.To))
	}
	query := orderSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, clampLimit(f.Limit), f.Offset)
	query += fmt.Sprintf(` ORDER BY o.issue_date DESC, o.number DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update reescribe la cabecera y reemplaza las líneas. Usar dentro de una transacción.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET supplier_id = $2, work_id = $3, issue_date = $4, currency = $5, notes = $6,
		       subtotal = $7, tax = $8, total = $9, updated_at = $10
		WHERE id = $1`,
		o.ID, o.SupplierID, nullIfEmpty(o.WorkID), dateOnly(o.IssueDate), o.Currency, o.Notes,
		o.Subtotal, o.Tax, o.Total, o.UpdatedAt)
	if err != nil {
		return mapWriteErr("update purchase order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	return r.insertLines(ctx, o.ID, o.Lines)
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la orden; líneas y adjuntos caen por ON DELETE CASCADE.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete purchase order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) AddFile(ctx context.Context, f *entity.OrderFile) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_files (`+orderFileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.OrderID, string(f.Kind), f.OriginalName, f.StoragePath, f.ContentType, f.Size, f.UploadedAt)
	if err != nil {
		return mapWriteErr("insert order file", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetFile(ctx context.Context, orderID, fileID string) (*entity.OrderFile, error) {
	f, err := scanOrderFile(r.q.QueryRow(ctx,
		`SELECT `+orderFileColumns+` FROM order_files WHERE order_id = $1 AND id = $2`, orderID, fileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order file: %w", err)
	}
	return f, nil
}

func (r *PurchaseOrderRepo) DeleteFile(ctx context.Context, orderID, fileID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM order_files WHERE order_id = $1 AND id = $2`, orderID, fileID)
	if err != nil {
		return fmt.Errorf("delete order file: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
