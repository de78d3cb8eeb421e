package reports

import (
	"context"

	"github.com/jhoicas/constructora-api/internal/application/dto"
	"github.com/jhoicas/constructora-api/internal/domain"
	"github.com/jhoicas/constructora-api/internal/domain/repository"
)

// exportLimit tope de filas de una exportación.
const exportLimit = 500

func activeLabel(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}

// Export genera el Excel del listado indicado (employees, products, suppliers, orders).
func (s *Service) Export(ctx context.Context, resource string) (*dto.FileResponse, error) {
	all, err := Layouts()
	if err != nil {
		return nil, err
	}
	layout, ok := all[resource]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rows, err := s.exportRows(ctx, resource)
	if err != nil {
		return nil, err
	}
	b, err := s.d.XLSX.Table(layout.Table(rows), s.meta(layout.Title, ""))
	if err != nil {
		return nil, s.renderErr("exportación "+resource, err)
	}
	return &dto.FileResponse{Filename: resource + ".xlsx", ContentType: ContentTypeXLSX, Content: b}, nil
}

func (s *Service) exportRows(ctx context.Context, resource string) ([]map[string]any, error) {
	var rows []map[string]any
	switch resource {
	case "employees":
		list, err := s.d.Employees.List(ctx, repository.EmployeeFilter{})
		if err != nil {
			return nil, err
		}
		for _, e := range list {
			var hire any
			if e.HireDate != nil {
				hire = *e.HireDate
			}
			rows = append(rows, map[string]any{
				"document_number": e.DocumentNumber,
				"full_name":       e.FullName(),
				"role":            e.RoleName,
				"email":           e.Email,
				"phone":           e.Phone,
				"hire_date":       hire,
				"status":          activeLabel(e.Active),
			})
		}
	case "products":
		list, err := s.d.Products.List(ctx, repository.ProductFilter{Limit: exportLimit})
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			rows = append(rows, map[string]any{
				"code":        p.Code,
				"name":        p.Name,
				"unit":        p.Unit,
				"description": p.Description,
				"status":      activeLabel(p.Active),
			})
		}
	case "suppliers":
		list, err := s.d.Suppliers.List(ctx, "", exportLimit, 0)
		if err != nil {
			return nil, err
		}
		for _, sp := range list {
			rows = append(rows, map[string]any{
				"ruc":           sp.RUC,
				"business_name": sp.BusinessName,
				"contact":       sp.ContactName,
				"phone":         sp.Phone,
				"email":         sp.Email,
				"address":       sp.Address,
			})
		}
	case "orders":
		list, err := s.d.Orders.List(ctx, repository.OrderFilter{Limit: exportLimit})
		if err != nil {
			return nil, err
		}
		for _, o := range list {
			rows = append(rows, map[string]any{
				"number":     o.Number,
				"type":       string(o.Type),
				"issue_date": o.IssueDate,
				"supplier":   o.SupplierName,
				"work":       o.WorkName,
				"currency":   o.Currency,
				"subtotal":   o.Subtotal,
				"tax":        o.Tax,
				"total":      o.Total,
				"status":     string(o.Status),
			})
		}
	default:
		return nil, domain.ErrNotFound
	}
	return rows, nil
}
