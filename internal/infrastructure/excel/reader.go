package excel

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/xuri/excelize/v2"
)

var _ ports.SpreadsheetReader = (*Reader)(nil)

// maxXLSRows tope de filas leídas de un .xls.
const maxXLSRows = 100000

var errEmptySheet = errors.New("la hoja está vacía")

// Reader implementa ports.SpreadsheetReader: .xls con extrame/xls, el resto con excelize.
type Reader struct{}

func NewReader() *Reader { return &Reader{} }

// ReadRows devuelve las celdas de la primera hoja como texto.
func (r *Reader) ReadRows(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	case ".xlsx", ".xlsm", "":
		return readXLSX(data)
	default:
		return nil, fmt.Errorf("formato no soportado %q (use .xlsx o .xls)", filepath.Ext(filename))
	}
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("leer .xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errEmptySheet
	}
	rows := wb.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, errEmptySheet
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("leer .xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errEmptySheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer .xlsx: %w", err)
	}
	if len(rows) == 0 {
		return nil, errEmptySheet
	}
	return rows, nil
}
