package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/constructora-api/internal/application/attendance"
	"github.com/jhoicas/constructora-api/internal/application/purchasing"
	"github.com/jhoicas/constructora-api/internal/application/requisition"
	"github.com/jhoicas/constructora-api/internal/application/usecase"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var (
	_ purchasing.TxRunner  = (*TxRunner)(nil)
	_ requisition.TxRunner = (*TxRunner)(nil)
	_ attendance.TxRunner  = (*TxRunner)(nil)
	_ usecase.TrainingTx   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run abre la transacción, ejecuta fn y hace Commit; ante cualquier error Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrders repos de órdenes y numeración atados a la misma tx.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	seq repository.SequenceRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPurchaseOrderRepository(tx), NewSequenceRepository(tx))
	})
}

// RunRequisitions repos de requerimientos y numeración atados a la misma tx.
func (r *TxRunner) RunRequisitions(ctx context.Context, fn func(
	reqs repository.RequisitionRepository,
	seq repository.SequenceRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewRequisitionRepository(tx), NewSequenceRepository(tx))
	})
}

// RunAttendance carga masiva de asistencias en una sola tx.
func (r *TxRunner) RunAttendance(ctx context.Context, fn func(att repository.AttendanceRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewAttendanceRepository(tx))
	})
}

// RunTrainings capacitación y asistentes en una sola tx.
func (r *TxRunner) RunTrainings(ctx context.Context, fn func(trainings repository.TrainingRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTrainingRepository(tx))
	})
}
