package ports

import (
	"time"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
	"github.com/jhoicas/constructora-api/internal/domain/purchasing"
	"github.com/jhoicas/constructora-api/internal/domain/report"
)

// ReportMeta cabecera común de los documentos generados.
type ReportMeta struct {
	CompanyName string
	CompanyRUC  string
	Title       string
	Subtitle    string
	GeneratedAt time.Time
}

// Column columna de una exportación tabular.
type Column struct {
	Header string
	Width  float64
	Format string // "", "date", "money", "number"
}

// Table exportación genérica de un listado.
type Table struct {
	Sheet   string
	Title   string
	Columns []Column
	Rows    [][]any
}

// SpreadsheetWriter genera libros .xlsx.
type SpreadsheetWriter interface {
	AttendanceMatrix(m *report.AttendanceMatrix, meta ReportMeta) ([]byte, error)
	AccountingCodes(rows []report.AccountingRow, meta ReportMeta) ([]byte, error)
	Table(t Table, meta ReportMeta) ([]byte, error)
}

// PDFWriter genera documentos PDF.
type PDFWriter interface {
	AttendanceMatrix(m *report.AttendanceMatrix, meta ReportMeta) ([]byte, error)
	AccountingCodes(rows []report.AccountingRow, meta ReportMeta) ([]byte, error)
	PurchaseOrder(o *entity.PurchaseOrder, meta ReportMeta) ([]byte, error)
	Quotation(q *purchasing.Quotation, meta ReportMeta) ([]byte, error)
	Requisition(r *entity.Requisition, meta ReportMeta) ([]byte, error)
}

// HTMLWriter genera reportes HTML imprimibles.
type HTMLWriter interface {
	AttendanceMatrix(m *report.AttendanceMatrix, meta ReportMeta) ([]byte, error)
}

// SpreadsheetReader lee la primera hoja de un .xlsx o .xls como filas de texto.
type SpreadsheetReader interface {
	ReadRows(filename string, data []byte) ([][]string, error)
}
