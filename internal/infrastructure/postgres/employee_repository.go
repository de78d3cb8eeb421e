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

var (
	_ repository.RoleRepository     = (*RoleRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
)

// RoleRepo cargos del personal.
type RoleRepo struct {
	q Querier
}

func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO roles (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		role.ID, role.Name, role.Description, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert role", err)
	}
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	cmd, err := r.q.Exec(ctx, `UPDATE roles SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		role.ID, role.Name, role.Description, role.UpdatedAt)
	if err != nil {
		return mapWriteErr("update role", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete role", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EmployeeRepo empleados con el nombre del cargo por join.
type EmployeeRepo struct {
	q Querier
}

func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeSelect = `
	SELECT e.id, e.document_number, e.first_name, e.last_name, e.email, e.phone,
	       e.role_id, COALESCE(r.name, ''), e.hire_date, e.active, e.created_at, e.updated_at
	FROM employees e
	LEFT JOIN roles r ON r.id = e.role_id`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	var roleID *string
	if err := row.Scan(&e.ID, &e.DocumentNumber, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&roleID, &e.RoleName, &e.HireDate, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.RoleID = derefStr(roleID)
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employees (id, document_number, first_name, last_name, email, phone, role_id, hire_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.DocumentNumber, e.FirstName, e.LastName, e.Email, e.Phone,
		nullIfEmpty(e.RoleID), e.HireDate, e.Active, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert employee", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByDocument(ctx context.Context, documentNumber string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, employeeSelect+` WHERE e.document_number = $1`, documentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by document: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE employees SET document_number = $2, first_name = $3, last_name = $4, email = $5, phone = $6,
		       role_id = $7, hire_date = $8, active = $9, updated_at = $10
		WHERE id = $1`,
		e.ID, e.DocumentNumber, e.FirstName, e.LastName, e.Email, e.Phone,
		nullIfEmpty(e.RoleID), e.HireDate, e.Active, e.UpdatedAt)
	if err != nil {
		return mapWriteErr("update employee", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ordena por apellidos; es el orden de filas del reporte de asistencia.
func (r *EmployeeRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	var (
		where []string
		args  []any
	)
	if f.Active != nil {
		args = append(args, *f.Active)
		where = append(where, fmt.Sprintf("e.active = $%d", len(args)))
	}
	if f.RoleID != "" {
		args = append(args, f.RoleID)
		where = append(where, fmt.Sprintf("e.role_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(e.document_number ILIKE $%d OR e.first_name ILIKE $%d OR e.last_name ILIKE $%d)", n, n, n))
	}
	query := employeeSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY e.last_name, e.first_name`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete employee", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
