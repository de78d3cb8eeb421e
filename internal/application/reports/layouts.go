package reports

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jhoicas/constructora-api/internal/application/ports"
	"gopkg.in/yaml.v3"
)

//go:embed layouts.yaml
var layoutsYAML []byte

// Layout columnas de una exportación de listado.
type Layout struct {
	Sheet   string         `yaml:"sheet"`
	Title   string         `yaml:"title"`
	Columns []LayoutColumn `yaml:"columns"`
}

// LayoutColumn columna y clave de la fila de la que toma su valor.
type LayoutColumn struct {
	Header string  `yaml:"header"`
	Field  string  `yaml:"field"`
	Width  float64 `yaml:"width"`
	Format string  `yaml:"format"`
}

var (
	layoutsOnce sync.Once
	layouts     map[string]Layout
	layoutsErr  error
)

// Layouts devuelve las exportaciones declaradas, indexadas por recurso.
func Layouts() (map[string]Layout, error) {
	layoutsOnce.Do(func() {
		layouts, layoutsErr = ParseLayouts(layoutsYAML)
	})
	return layouts, layoutsErr
}

// ParseLayouts decodifica y valida un documento de layouts.
func ParseLayouts(data []byte) (map[string]Layout, error) {
	out := map[string]Layout{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("reports: layouts: %w", err)
	}
	for name, l := range out {
		if len(l.Columns) == 0 {
			return nil, fmt.Errorf("reports: layout %q sin columnas", name)
		}
		for i, c := range l.Columns {
			if c.Field == "" || c.Header == "" {
				return nil, fmt.Errorf("reports: layout %q columna %d incompleta", name, i)
			}
		}
	}
	return out, nil
}

// Table arma la tabla del layout a partir de filas clave → valor.
func (l Layout) Table(rows []map[string]any) ports.Table {
	t := ports.Table{Sheet: l.Sheet, Title: l.Title}
	for _, c := range l.Columns {
		t.Columns = append(t.Columns, ports.Column{Header: c.Header, Width: c.Width, Format: c.Format})
	}
	for _, r := range rows {
		vals := make([]any, len(l.Columns))
		for i, c := range l.Columns {
			vals[i] = r[c.Field]
		}
		t.Rows = append(t.Rows, vals)
	}
	return t
}
