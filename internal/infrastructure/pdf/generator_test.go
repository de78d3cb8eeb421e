package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/purchasing"
	"github.com/jhoicas/constructora-api/internal/domain/report"
)

var meta = ports.ReportMeta{
	CompanyName: "Constructora Andina SAC",
	CompanyRUC:  "20123456789",
	Title:       "Orden de compra",
	Subtitle:    "C-2025-0001",
	GeneratedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertPDF(t *testing.T, b []byte, err error) {
	t.Helper()
	require.NoError(t, err)
	require.Greater(t, len(b), 100)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func sampleOrder() *entity.PurchaseOrder {
	lines, totals := purchasing.ComputeTotals([]entity.OrderLine{
		{Description: "Cemento Portland tipo I", Unit: "bls", Quantity: d("10"), UnitPrice: d("28.50")},
		{Description: "Fierro corrugado 1/2\"", Unit: "var", Quantity: d("25"), UnitPrice: d("45")},
	}, true)
	return &entity.PurchaseOrder{
		Number: "C-2025-0001", Type: entity.OrderTypePurchase, Status: entity.OrderPending,
		SupplierName: "Aceros del Sur SAC", SupplierRUC: "20999888777", WorkName: "Edificio Sur",
		IssueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Currency: "PEN", Notes: "Entregar en obra",
		Lines: lines, Subtotal: totals.Subtotal, Tax: totals.Tax, Total: totals.Total,
	}
}

func TestPurchaseOrder(t *testing.T) {
	b, err := NewGenerator().PurchaseOrder(sampleOrder(), meta)
	assertPDF(t, b, err)
}

func TestQuotation(t *testing.T) {
	q := purchasing.EstimateQuotation(sampleOrder(), []string{"cemento"}, map[string]decimal.Decimal{"cemento": d("27")})
	b, err := NewGenerator().Quotation(q, meta)
	assertPDF(t, b, err)
}

func TestRequisition(t *testing.T) {
	delivered := d("4")
	at := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	r := &entity.Requisition{
		Code: "RQ-2025-0003", RequesterName: "Huamán, Rosa", RequestDate: at,
		Lines: []entity.RequisitionLine{
			{Description: "Arena gruesa", Unit: "m3", Quantity: d("10"), Status: entity.LinePending},
			{Description: "Clavos", Unit: "kg", Quantity: d("4"), DeliveredQuantity: &delivered, DeliveryDate: &at, Status: entity.LineDelivered},
		},
	}
	b, err := NewGenerator().Requisition(r, meta)
	assertPDF(t, b, err)
}

func TestAttendanceMatrix(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	m, err := report.BuildAttendanceMatrix(start, end,
		[]*entity.Employee{{ID: "e1", DocumentNumber: "40111222", FirstName: "Ana", LastName: "Quispe"}},
		[]*entity.Attendance{
			{EmployeeID: "e1", Date: start, Status: entity.AttendanceLate},
			{EmployeeID: "e1", Date: start.AddDate(0, 0, 2), Status: entity.AttendancePresent},
			{EmployeeID: "e1", Date: start.AddDate(0, 0, 3), Status: entity.AttendanceAbsent},
		})
	require.NoError(t, err)

	b, err := NewGenerator().AttendanceMatrix(m, meta)
	assertPDF(t, b, err)
	// ✓ y ✗ se dibujan con la DejaVu embebida, no con una fuente base.
	assert.Contains(t, string(b), "/BaseFont /utf8dejavu")
}

func TestCustomFonts(t *testing.T) {
	fonts, err := customFonts()
	require.NoError(t, err)
	require.Len(t, fonts, 2)
	for _, f := range fonts {
		assert.Equal(t, fontFamily, f.Family)
		assert.NotEmpty(t, f.Bytes)
	}
}

func TestAccountingCodes(t *testing.T) {
	rows := report.GroupAccountingCodes([]entity.WorkCodeRow{
		{WorkCode: "OB-01", WorkName: "Edificio Sur", Code: "62.1", Name: "Sueldos", RegisteredAt: meta.GeneratedAt},
	})
	b, err := NewGenerator().AccountingCodes(rows, meta)
	assertPDF(t, b, err)

	b, err = NewGenerator().AccountingCodes(nil, meta)
	assertPDF(t, b, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"513.3":       "513.30",
		"25000":       "25,000.00",
		"1234567.891": "1,234,567.89",
		"-1234.5":     "-1,234.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(d(in)), in)
	}
}
