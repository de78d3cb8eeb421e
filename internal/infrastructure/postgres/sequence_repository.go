package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/constructora-api/internal/domain/purchasing"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador order_sequences(prefix, year, last_value).
// La primera vez que aparece un (prefix, year) se siembra con el mayor sufijo ya
// emitido, así los números existentes antes del contador no se repiten.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next usa INSERT ... ON CONFLICT DO UPDATE: la fila queda bloqueada por la
// transacción en curso, por lo que dos altas concurrentes se serializan.
func (r *SequenceRepo) Next(ctx context.Context, prefix string, year int) (int, error) {
	const query = `
	INSERT INTO order_sequences (prefix, year, last_value)
	VALUES ($1, $2, COALESCE((
	    SELECT MAX(split_part(n, '-', 3)::int)
	    FROM (
	        SELECT number AS n FROM purchase_orders WHERE number LIKE $3
	        UNION ALL
	        SELECT code FROM requisitions WHERE code LIKE $3
	    ) existing
	    WHERE n ~ '^[A-Z]+-[0-9]{4}-[0-9]+$'
	), 0) + 1)
	ON CONFLICT (prefix, year) DO UPDATE SET last_value = order_sequences.last_value + 1
	RETURNING last_value`

	var next int
	if err := r.q.QueryRow(ctx, query, prefix, year, purchasing.Pattern(prefix, year)).Scan(&next); err != nil {
		return 0, fmt.Errorf("sequence next %s-%d: %w", prefix, year, err)
	}
	return next, nil
}
