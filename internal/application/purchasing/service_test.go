package purchasing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	supplierID = "5a5a5a5a-0000-4000-8000-000000000001"
	workID     = "3b3b3b3b-0000-4000-8000-000000000001"
	productID  = "7c7c7c7c-0000-4000-8000-000000000001"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ─── fakes ──────────────────────────────────────────────────────────────────

type memOrders struct {
	m         map[string]*entity.PurchaseOrder
	failFiles bool
}

func clone(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Lines = append([]entity.OrderLine(nil), o.Lines...)
	cp.Files = append([]entity.OrderFile(nil), o.Files...)
	return &cp
}

func (r *memOrders) Create(_ context.Context, o *entity.PurchaseOrder) error {
	for _, x := range r.m {
		if x.Number == o.Number {
			return domain.ErrDuplicate
		}
	}
	r.m[o.ID] = clone(o)
	return nil
}
func (r *memOrders) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	o, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	return clone(o), nil
}
func (r *memOrders) List(_ context.Context, f repository.OrderFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.m {
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		out = append(out, clone(o))
	}
	return out, nil
}
func (r *memOrders) Update(_ context.Context, o *entity.PurchaseOrder) error {
	files := r.m[o.ID].Files
	r.m[o.ID] = clone(o)
	r.m[o.ID].Files = files
	return nil
}
func (r *memOrders) UpdateStatus(_ context.Context, id string, st entity.OrderStatus, at time.Time) error {
	r.m[id].Status = st
	r.m[id].UpdatedAt = at
	return nil
}
func (r *memOrders) Delete(_ context.Context, id string) error { delete(r.m, id); return nil }
func (r *memOrders) AddFile(_ context.Context, f *entity.OrderFile) error {
	if r.failFiles {
		return errors.New("disco lleno")
	}
	o := r.m[f.OrderID]
	o.Files = append(o.Files, *f)
	return nil
}
func (r *memOrders) GetFile(_ context.Context, orderID, fileID string) (*entity.OrderFile, error) {
	o, ok := r.m[orderID]
	if !ok {
		return nil, nil
	}
	for _, f := range o.Files {
		if f.ID == fileID {
			cp := f
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memOrders) DeleteFile(_ context.Context, orderID, fileID string) error {
	o := r.m[orderID]
	for i, f := range o.Files {
		if f.ID == fileID {
			o.Files = append(o.Files[:i], o.Files[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memSeq struct{ last map[string]int }

func (s *memSeq) Next(_ context.Context, prefix string, year int) (int, error) {
	k := fmt.Sprintf("%s/%d", prefix, year)
	s.last[k]++
	return s.last[k], nil
}

type memTx struct {
	orders *memOrders
	seq    *memSeq
}

func (tx *memTx) RunOrders(_ context.Context, fn func(repository.PurchaseOrderRepository, repository.SequenceRepository) error) error {
	snapshot := make(map[string]*entity.PurchaseOrder, len(tx.orders.m))
	for k, v := range tx.orders.m {
		snapshot[k] = clone(v)
	}
	if err := fn(tx.orders, tx.seq); err != nil {
		tx.orders.m = snapshot
		return err
	}
	return nil
}

type stubSuppliers struct{ repository.SupplierRepository }

func (stubSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	if id == supplierID {
		return &entity.Supplier{ID: id, BusinessName: "Aceros del Sur SAC"}, nil
	}
	return nil, nil
}

type stubWorks struct{ repository.WorkRepository }

func (stubWorks) GetByID(_ context.Context, id string) (*entity.Work, error) {
	if id == workID {
		return &entity.Work{ID: id, Code: "OB-01"}, nil
	}
	return nil, nil
}

type stubProducts struct{ repository.ProductRepository }

func (stubProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if id == productID {
		return &entity.Product{ID: id, Name: "Cemento Portland"}, nil
	}
	return nil, nil
}

type memStorage struct{ files map[string][]byte }

func (s *memStorage) Save(_ context.Context, dir, name string, r io.Reader) (string, int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	p := path.Join(dir, name)
	s.files[p] = b
	return p, int64(len(b)), nil
}
func (s *memStorage) Open(_ context.Context, p string) (io.ReadCloser, error) {
	b, ok := s.files[p]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}
func (s *memStorage) Delete(_ context.Context, p string) error { delete(s.files, p); return nil }
func (s *memStorage) DeleteDir(_ context.Context, dir string) error {
	for p := range s.files {
		if strings.HasPrefix(p, dir+"/") {
			delete(s.files, p)
		}
	}
	return nil
}

type fixture struct {
	svc     *Service
	orders  *memOrders
	storage *memStorage
}

func newFixture() fixture {
	orders := &memOrders{m: map[string]*entity.PurchaseOrder{}}
	storage := &memStorage{files: map[string][]byte{}}
	svc := NewService(Deps{
		Orders:      orders,
		Suppliers:   stubSuppliers{},
		Works:       stubWorks{},
		Products:    stubProducts{},
		Tx:          &memTx{orders: orders, seq: &memSeq{last: map[string]int{}}},
		Storage:     storage,
		Clock:       ports.FixedClock(now),
		MaxUploadMB: 1,
	})
	return fixture{svc: svc, orders: orders, storage: storage}
}

func orderRequest(t string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Type:       t,
		SupplierID: supplierID,
		WorkID:     workID,
		IssueDate:  "2025-03-10",
		Currency:   "PEN",
		IncludeTax: true,
		Lines: []dto.OrderLineRequest{
			{ProductID: productID, Description: "Cemento Portland tipo I", Unit: "bls", Quantity: d("10"), UnitPrice: d("28.50")},
			{Description: "Flete", Unit: "und", Quantity: d("1"), UnitPrice: d("150")},
		},
	}
}

func quote(content string) dto.UploadedFile {
	return dto.UploadedFile{Kind: "COTIZACION", Name: "cotizacion.pdf", ContentType: "application/pdf",
		Size: int64(len(content)), Content: strings.NewReader(content)}
}

// ─── tests ──────────────────────────────────────────────────────────────────

func TestCreate_TotalsAndNumber(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Create(context.Background(), "user-1", orderRequest("COMPRA"), []dto.UploadedFile{quote("%PDF-1.4")})
	require.NoError(t, err)

	assert.Equal(t, "C-2025-0001", res.Number)
	assert.Equal(t, "PENDIENTE", res.Status)
	assert.True(t, d("435").Equal(res.Subtotal), res.Subtotal.String())
	assert.True(t, d("78.30").Equal(res.Tax), res.Tax.String())
	assert.True(t, d("513.30").Equal(res.Total), res.Total.String())
	require.Len(t, res.Lines, 2)
	assert.True(t, d("285").Equal(res.Lines[0].Subtotal))

	require.Len(t, res.Files, 1)
	assert.Equal(t, "COTIZACION", res.Files[0].Kind)
	assert.Contains(t, f.storage.files, path.Join("orders", res.ID, "cotizacion.pdf"))
}

func TestCreate_SequentialNumbersPerPrefix(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var numbers []string
	for _, typ := range []string{"COMPRA", "COMPRA", "SERVICIO", "COMPRA"} {
		res, err := f.svc.Create(ctx, "u", orderRequest(typ), nil)
		require.NoError(t, err)
		numbers = append(numbers, res.Number)
	}
	assert.Equal(t, []string{"C-2025-0001", "C-2025-0002", "S-2025-0001", "C-2025-0003"}, numbers)
}

func TestCreate_RemovesFilesWhenTransactionFails(t *testing.T) {
	f := newFixture()
	f.orders.failFiles = true

	_, err := f.svc.Create(context.Background(), "u", orderRequest("COMPRA"), []dto.UploadedFile{quote("abc")})
	require.Error(t, err)

	assert.Empty(t, f.storage.files)
	assert.Empty(t, f.orders.m)
}

func TestCreate_Rejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := orderRequest("COMPRA")
	in.SupplierID = "5a5a5a5a-0000-4000-8000-0000000000ff"
	_, err := f.svc.Create(ctx, "u", in, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = orderRequest("COMPRA")
	in.Lines[0].Quantity = decimal.Zero
	_, err = f.svc.Create(ctx, "u", in, nil)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "lines[0].quantity")

	bad := quote("x")
	bad.Kind = "CONTRATO"
	_, err = f.svc.Create(ctx, "u", orderRequest("COMPRA"), []dto.UploadedFile{bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	big := quote("x")
	big.Size = 2 << 20
	_, err = f.svc.Create(ctx, "u", orderRequest("COMPRA"), []dto.UploadedFile{big})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.orders.m)
}

func TestStatusLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.svc.Create(ctx, "u", orderRequest("SERVICIO"), nil)
	require.NoError(t, err)

	res, err = f.svc.ChangeStatus(ctx, res.ID, dto.OrderStatusRequest{Status: "APROBADA"})
	require.NoError(t, err)
	assert.Equal(t, "APROBADA", res.Status)

	_, err = f.svc.ChangeStatus(ctx, res.ID, dto.OrderStatusRequest{Status: "ANULADA"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	upd := dto.UpdateOrderRequest{SupplierID: supplierID, IssueDate: "2025-03-11", Currency: "PEN",
		Lines: []dto.OrderLineRequest{{Description: "x", Unit: "und", Quantity: d("1"), UnitPrice: d("1")}}}
	_, err = f.svc.Update(ctx, res.ID, upd)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.ErrorIs(t, f.svc.Delete(ctx, res.ID), domain.ErrInvalidState)
}

func TestUpdate_RecomputesTotals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.svc.Create(ctx, "u", orderRequest("COMPRA"), nil)
	require.NoError(t, err)

	res, err = f.svc.Update(ctx, res.ID, dto.UpdateOrderRequest{
		SupplierID: supplierID,
		IssueDate:  "2025-03-12",
		Currency:   "USD",
		Lines:      []dto.OrderLineRequest{{Description: "Alquiler mezcladora", Unit: "día", Quantity: d("3"), UnitPrice: d("80.333")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "C-2025-0001", res.Number, "el número no cambia")
	assert.Equal(t, "USD", res.Currency)
	assert.True(t, d("241").Equal(res.Total), res.Total.String())
	assert.True(t, res.Tax.IsZero())
	assert.Len(t, res.Lines, 1)
}

func TestFiles_AddDownloadDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	res, err := f.svc.Create(ctx, "u", orderRequest("COMPRA"), nil)
	require.NoError(t, err)

	added, err := f.svc.AddFiles(ctx, res.ID, []dto.UploadedFile{{
		Kind: "FACTURA", Name: "F001-123.pdf", Size: 5, Content: strings.NewReader("hello"),
	}})
	require.NoError(t, err)
	require.Len(t, added, 1)

	dl, err := f.svc.DownloadFile(ctx, res.ID, added[0].ID)
	require.NoError(t, err)
	defer dl.Body.Close()
	body, _ := io.ReadAll(dl.Body)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "F001-123.pdf", dl.Filename)
	assert.Equal(t, "application/octet-stream", dl.ContentType)

	require.NoError(t, f.svc.DeleteFile(ctx, res.ID, added[0].ID))
	assert.Empty(t, f.storage.files)

	_, err = f.svc.DownloadFile(ctx, res.ID, added[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
