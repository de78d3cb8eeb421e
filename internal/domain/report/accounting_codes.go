package report

import (
	"fmt"
	"time"

	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// RowKind tipo de fila del reporte agrupado.
type RowKind int

const (
	RowHeader RowKind = iota
	RowData
	RowSeparator
)

// AccountingRow fila ya aplanada del reporte de códigos contables por obra.
// Los generadores deciden el estilo por Kind.
type AccountingRow struct {
	Kind     RowKind
	Position int // índice absoluto dentro de la lista aplanada

	// cabecera
	WorkCode string
	WorkName string
	Count    int

	// dato
	Code         string
	Name         string
	Description  string
	RegisteredAt time.Time
}

// Label texto de la cabecera: "OB-01 - Edificio Norte (2 códigos contables)".
func (r AccountingRow) Label() string {
	if r.Kind != RowHeader {
		return ""
	}
	return fmt.Sprintf("%s - %s %s", r.WorkCode, r.WorkName, CodeCountLabel(r.Count))
}

// Striped indica si la fila de datos lleva el fondo alterno (posición impar).
func (r AccountingRow) Striped() bool {
	return r.Kind == RowData && r.Position%2 == 1
}

// CodeCountLabel "(1 código contable)" / "(N códigos contables)".
func CodeCountLabel(n int) string {
	if n == 1 {
		return "(1 código contable)"
	}
	return fmt.Sprintf("(%d códigos contables)", n)
}

// GroupAccountingCodes agrupa por código de obra respetando el orden de primera aparición.
// Cada grupo emite cabecera, sus filas y un separador.
func GroupAccountingCodes(rows []entity.WorkCodeRow) []AccountingRow {
	type group struct {
		code, name string
		items      []entity.WorkCodeRow
	}
	var order []*group
	index := make(map[string]*group)
	for _, r := range rows {
		g, ok := index[r.WorkCode]
		if !ok {
			g = &group{code: r.WorkCode, name: r.WorkName}
			index[r.WorkCode] = g
			order = append(order, g)
		}
		g.items = append(g.items, r)
	}

	out := make([]AccountingRow, 0, len(rows)+2*len(order))
	add := func(r AccountingRow) {
		r.Position = len(out)
		out = append(out, r)
	}
	for _, g := range order {
		add(AccountingRow{Kind: RowHeader, WorkCode: g.code, WorkName: g.name, Count: len(g.items)})
		for _, it := range g.items {
			add(AccountingRow{
				Kind:         RowData,
				WorkCode:     g.code,
				WorkName:     g.name,
				Code:         it.Code,
				Name:         it.Name,
				Description:  it.Description,
				RegisteredAt: it.RegisteredAt,
			})
		}
		add(AccountingRow{Kind: RowSeparator})
	}
	return out
}
