package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo requerimientos y requisition_lines.
type RequisitionRepo struct {
	q Querier
}

func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionSelect = `
	SELECT r.id, r.code, r.work_id, COALESCE(w.name, ''), r.requested_by,
	       COALESCE(e.last_name || ', ' || e.first_name, ''), r.request_date, r.notes, r.created_by,
	       r.created_at, r.updated_at
	FROM requisitions r
	LEFT JOIN works w     ON w.id = r.work_id
	LEFT JOIN employees e ON e.id = r.requested_by`

func scanRequisition(row pgx.Row) (*entity.Requisition, error) {
	var rq entity.Requisition
	var workID, requestedBy, createdBy *string
	if err := row.Scan(&rq.ID, &rq.Code, &workID, &rq.WorkName, &requestedBy, &rq.RequesterName,
		&rq.RequestDate, &rq.Notes, &createdBy, &rq.CreatedAt, &rq.UpdatedAt); err != nil {
		return nil, err
	}
	rq.WorkID = derefStr(workID)
	rq.RequestedBy = derefStr(requestedBy)
	rq.CreatedBy = derefStr(createdBy)
	return &rq, nil
}

// Create inserta cabecera y líneas. Usar dentro de una transacción.
func (r *RequisitionRepo) Create(ctx context.Context, rq *entity.Requisition) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO requisitions (id, code, work_id, requested_by, request_date, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rq.ID, rq.Code, nullIfEmpty(rq.WorkID), nullIfEmpty(rq.RequestedBy), dateOnly(rq.RequestDate), rq.Notes,
		nullIfEmpty(rq.CreatedBy), rq.CreatedAt, rq.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert requisition", err)
	}
	for i, l := range rq.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO requisition_lines (id, requisition_id, position, product_id, description, unit, quantity,
			                               delivered_quantity, delivery_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			l.ID, rq.ID, i+1, nullIfEmpty(l.ProductID), l.Description, l.Unit, l.Quantity,
			l.DeliveredQuantity, l.DeliveryDate, string(l.Status))
		if err != nil {
			return mapWriteErr("insert requisition line", err)
		}
	}
	return nil
}

func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	rq, err := scanRequisition(r.q.QueryRow(ctx, requisitionSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, requisition_id, product_id, description, unit, quantity, delivered_quantity, delivery_date, status
		FROM requisition_lines WHERE requisition_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list requisition lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.RequisitionLine
		var productID *string
		var status string
		if err := rows.Scan(&l.ID, &l.RequisitionID, &productID, &l.Description, &l.Unit, &l.Quantity,
			&l.DeliveredQuantity, &l.DeliveryDate, &status); err != nil {
			return nil, fmt.Errorf("scan requisition line: %w", err)
		}
		l.ProductID = derefStr(productID)
		l.Status = entity.LineStatus(status)
		rq.Lines = append(rq.Lines, l)
	}
	return rq, rows.Err()
}

// List devuelve cabeceras sin líneas.
func (r *RequisitionRepo) List(ctx context.Context, f repository.RequisitionFilter) ([]*entity.Requisition, error) {
	var (
		where []string
		args  []any
	)
	if f.WorkID != "" {
		args = append(args, f.WorkID)
		where = append(where, fmt.Sprintf("r.work_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, dateOnly(*f.From))
		where = append(where, fmt.Sprintf("r.request_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, dateOnly(*f.To))
		where = append(where, fmt.Sprintf("r.request_date <= $%d", len(args)))
	}
	query := requisitionSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, clampLimit(f.Limit), f.Offset)
	query += fmt.Sprintf(` ORDER BY r.request_date DESC, r.code DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		rq, err := scanRequisition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, rq)
	}
	return list, rows.Err()
}

func (r *RequisitionRepo) UpdateLine(ctx context.Context, l *entity.RequisitionLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE requisition_lines SET status = $3, delivered_quantity = $4, delivery_date = $5
		WHERE id = $1 AND requisition_id = $2`,
		l.ID, l.RequisitionID, string(l.Status), l.DeliveredQuantity, l.DeliveryDate)
	if err != nil {
		return fmt.Errorf("update requisition line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RequisitionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM requisitions WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete requisition", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
