package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var (
	_ repository.WorkRepository           = (*WorkRepo)(nil)
	_ repository.AccountingCodeRepository = (*AccountingCodeRepo)(nil)
)

// WorkRepo obras.
type WorkRepo struct {
	q Querier
}

func NewWorkRepository(q Querier) *WorkRepo {
	return &WorkRepo{q: q}
}

const workColumns = `id, code, name, location, start_date, active, created_at, updated_at`

func scanWork(row pgx.Row) (*entity.Work, error) {
	var w entity.Work
	if err := row.Scan(&w.ID, &w.Code, &w.Name, &w.Location, &w.StartDate, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkRepo) Create(ctx context.Context, w *entity.Work) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO works (`+workColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.ID, w.Code, w.Name, w.Location, w.StartDate, w.Active, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert work", err)
	}
	return nil
}

func (r *WorkRepo) GetByID(ctx context.Context, id string) (*entity.Work, error) {
	w, err := scanWork(r.q.QueryRow(ctx, `SELECT `+workColumns+` FROM works WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work: %w", err)
	}
	return w, nil
}

func (r *WorkRepo) Update(ctx context.Context, w *entity.Work) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE works SET code = $2, name = $3, location = $4, start_date = $5, active = $6, updated_at = $7 WHERE id = $1`,
		w.ID, w.Code, w.Name, w.Location, w.StartDate, w.Active, w.UpdatedAt)
	if err != nil {
		return mapWriteErr("update work", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works`
	if activeOnly {
		query += ` WHERE active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	defer rows.Close()
	var list []*entity.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WorkRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM works WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete work", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AccountingCodeRepo códigos contables y tabla puente work_accounting_codes.
type AccountingCodeRepo struct {
	q Querier
}

func NewAccountingCodeRepository(q Querier) *AccountingCodeRepo {
	return &AccountingCodeRepo{q: q}
}

const accountingCodeColumns = `id, code, name, description, created_at, updated_at`

func scanAccountingCode(row pgx.Row) (*entity.AccountingCode, error) {
	var c entity.AccountingCode
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AccountingCodeRepo) Create(ctx context.Context, c *entity.AccountingCode) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounting_codes (`+accountingCodeColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Code, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert accounting code", err)
	}
	return nil
}

func (r *AccountingCodeRepo) GetByID(ctx context.Context, id string) (*entity.AccountingCode, error) {
	c, err := scanAccountingCode(r.q.QueryRow(ctx, `SELECT `+accountingCodeColumns+` FROM accounting_codes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get accounting code: %w", err)
	}
	return c, nil
}

func (r *AccountingCodeRepo) Update(ctx context.Context, c *entity.AccountingCode) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE accounting_codes SET code = $2, name = $3, description = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Code, c.Name, c.Description, c.UpdatedAt)
	if err != nil {
		return mapWriteErr("update accounting code", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountingCodeRepo) List(ctx context.Context) ([]*entity.AccountingCode, error) {
	rows, err := r.q.Query(ctx, `SELECT `+accountingCodeColumns+` FROM accounting_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list accounting codes: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountingCode
	for rows.Next() {
		c, err := scanAccountingCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accounting code: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *AccountingCodeRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM accounting_codes WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete accounting code", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountingCodeRepo) Attach(ctx context.Context, link *entity.WorkAccountingCode) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO work_accounting_codes (id, work_id, accounting_code_id, registered_at) VALUES ($1, $2, $3, $4)`,
		link.ID, link.WorkID, link.AccountingCodeID, link.RegisteredAt)
	if err != nil {
		return mapWriteErr("attach accounting code", err)
	}
	return nil
}

func (r *AccountingCodeRepo) Detach(ctx context.Context, workID, codeID string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM work_accounting_codes WHERE work_id = $1 AND accounting_code_id = $2`, workID, codeID)
	if err != nil {
		return false, fmt.Errorf("detach accounting code: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *AccountingCodeRepo) ListByWork(ctx context.Context, workID string) ([]*entity.AccountingCode, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.code, c.name, c.description, c.created_at, c.updated_at
		FROM work_accounting_codes wac
		JOIN accounting_codes c ON c.id = wac.accounting_code_id
		WHERE wac.work_id = $1
		ORDER BY wac.registered_at DESC`, workID)
	if err != nil {
		return nil, fmt.Errorf("list accounting codes by work: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountingCode
	for rows.Next() {
		c, err := scanAccountingCode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accounting code: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *AccountingCodeRepo) ListWorkCodeRows(ctx context.Context, from, to *time.Time) ([]entity.WorkCodeRow, error) {
	const query = `
	SELECT w.code, w.name, c.code, c.name, c.description, wac.registered_at
	FROM work_accounting_codes wac
	JOIN works            w ON w.id = wac.work_id
	JOIN accounting_codes c ON c.id = wac.accounting_code_id
	WHERE ($1::date IS NULL OR wac.registered_at >= $1::date)
	  AND ($2::date IS NULL OR wac.registered_at < $2::date + 1)
	ORDER BY w.code, wac.registered_at DESC`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("accounting.ListWorkCodeRows: %w", err)
	}
	defer rows.Close()
	var list []entity.WorkCodeRow
	for rows.Next() {
		var row entity.WorkCodeRow
		if err := rows.Scan(&row.WorkCode, &row.WorkName, &row.Code, &row.Name, &row.Description, &row.RegisteredAt); err != nil {
			return nil, fmt.Errorf("accounting.ListWorkCodeRows scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
