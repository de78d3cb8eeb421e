package repository

import (
	"context"
	"time"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// WorkRepository persistencia de obras.
type WorkRepository interface {
	Create(ctx context.Context, w *entity.Work) error
	GetByID(ctx context.Context, id string) (*entity.Work, error)
	Update(ctx context.Context, w *entity.Work) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Work, error)
	Delete(ctx context.Context, id string) error
}

// AccountingCodeRepository persistencia de códigos contables y su vínculo con obras.
type AccountingCodeRepository interface {
	Create(ctx context.Context, c *entity.AccountingCode) error
	GetByID(ctx context.Context, id string) (*entity.AccountingCode, error)
	Update(ctx context.Context, c *entity.AccountingCode) error
	List(ctx context.Context) ([]*entity.AccountingCode, error)
	Delete(ctx context.Context, id string) error

	Attach(ctx context.Context, link *entity.WorkAccountingCode) error
	Detach(ctx context.Context, workID, codeID string) (bool, error)
	ListByWork(ctx context.Context, workID string) ([]*entity.AccountingCode, error)
	// ListWorkCodeRows filas (obra, código) ordenadas por código de obra y fecha de registro desc.
	// from/to nil = sin filtro.
	ListWorkCodeRows(ctx context.Context, from, to *time.Time) ([]entity.WorkCodeRow, error)
}
