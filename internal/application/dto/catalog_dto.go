package dto

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductRequest alta o edición de producto.
type ProductRequest struct {
	CategoryID  string `json:"category_id" validate:"omitempty,uuid"`
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=200"`
	Unit        string `json:"unit" validate:"required,max=20"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// ProductResponse producto.
type ProductResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// ProductListQuery filtros del listado de productos.
type ProductListQuery struct {
	PageRequest
	CategoryID string `query:"category_id"`
	Search     string `query:"q"`
}

// SupplierRequest alta o edición de proveedor.
type SupplierRequest struct {
	RUC          string `json:"ruc" validate:"required,len=11,numeric"`
	BusinessName string `json:"business_name" validate:"required,max=200"`
	ContactName  string `json:"contact_name" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=30"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"max=300"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	ID           string `json:"id"`
	RUC          string `json:"ruc"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

// WorkRequest alta o edición de obra.
type WorkRequest struct {
	Code      string `json:"code" validate:"required,max=30"`
	Name      string `json:"name" validate:"required,max=200"`
	Location  string `json:"location" validate:"max=300"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Active    *bool  `json:"active"`
}

// WorkResponse obra.
type WorkResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	StartDate string `json:"start_date,omitempty"`
	Active    bool   `json:"active"`
}

// AccountingCodeRequest alta o edición de código contable.
type AccountingCodeRequest struct {
	Code        string `json:"code" validate:"required,max=30"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=500"`
}

// AccountingCodeResponse código contable.
type AccountingCodeResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AttachCodeRequest vincula un código contable a una obra.
type AttachCodeRequest struct {
	AccountingCodeID string `json:"accounting_code_id" validate:"required,uuid"`
	RegisteredAt     string `json:"registered_at" validate:"omitempty,datetime=2006-01-02"`
}
