package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/constructora-api/internal/application/attendance"
	"github.com/jhoicas/constructora-api/internal/application/auth"
	"github.com/jhoicas/constructora-api/internal/application/purchasing"
	"github.com/jhoicas/constructora-api/internal/application/reports"
	"github.com/jhoicas/constructora-api/internal/application/requisition"
	"github.com/jhoicas/constructora-api/internal/application/usecase"
	"github.com/jhoicas/constructora-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	RoleUC       *usecase.RoleUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	TrainingUC   *usecase.TrainingUseCase
	CategoryUC   *usecase.CategoryUseCase
	ProductUC    *usecase.ProductUseCase
	SupplierUC   *usecase.SupplierUseCase
	WorkUC       *usecase.WorkUseCase
	Attendance   *attendance.Service
	Orders       *purchasing.Service
	Requisitions *requisition.Service
	Reports      *reports.Service
	JWTSecret    string
}

// Router registra las rutas de la API.
// Cualquier usuario autenticado puede leer los catálogos; escribir depende del rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	var (
		admin        = RequireRole(entity.RoleAdmin)
		logistica    = RequireRole(entity.RoleAdmin, entity.RoleLogistica)
		rrhh         = RequireRole(entity.RoleAdmin, entity.RoleRRHH)
		contabilidad = RequireRole(entity.RoleAdmin, entity.RoleContabilidad)
	)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), admin, authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cargos y empleados (RR.HH.)
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles := protected.Group("/roles")
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.Get)
	roles.Post("/", rrhh, roleHandler.Create)
	roles.Put("/:id", rrhh, roleHandler.Update)
	roles.Delete("/:id", rrhh, roleHandler.Delete)

	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := protected.Group("/employees")
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.Get)
	employees.Post("/", rrhh, employeeHandler.Create)
	employees.Put("/:id", rrhh, employeeHandler.Update)
	employees.Delete("/:id", rrhh, employeeHandler.Delete)

	trainingHandler := NewTrainingHandler(deps.TrainingUC)
	trainings := protected.Group("/trainings", rrhh)
	trainings.Get("/", trainingHandler.List)
	trainings.Post("/", trainingHandler.Create)
	trainings.Get("/:id", trainingHandler.Get)
	trainings.Put("/:id", trainingHandler.Update)
	trainings.Put("/:id/attendees", trainingHandler.SetAttendees)
	trainings.Delete("/:id", trainingHandler.Delete)

	attendanceHandler := NewAttendanceHandler(deps.Attendance)
	att := protected.Group("/attendance", rrhh)
	att.Get("/", attendanceHandler.List)
	att.Post("/", attendanceHandler.Register)
	att.Post("/bulk", attendanceHandler.Bulk)
	att.Post("/import", attendanceHandler.Import)
	att.Put("/:id", attendanceHandler.Update)
	att.Delete("/:id", attendanceHandler.Delete)

	// Catálogo (logística)
	catalog := NewCatalogHandler(deps.CategoryUC, deps.ProductUC, deps.SupplierUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalog.ListCategories)
	categories.Get("/:id", catalog.GetCategory)
	categories.Post("/", logistica, catalog.CreateCategory)
	categories.Put("/:id", logistica, catalog.UpdateCategory)
	categories.Delete("/:id", logistica, catalog.DeleteCategory)

	products := protected.Group("/products")
	products.Get("/", catalog.ListProducts)
	products.Get("/:id", catalog.GetProduct)
	products.Post("/", logistica, catalog.CreateProduct)
	products.Put("/:id", logistica, catalog.UpdateProduct)
	products.Delete("/:id", logistica, catalog.DeleteProduct)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", catalog.ListSuppliers)
	suppliers.Get("/:id", catalog.GetSupplier)
	suppliers.Post("/", logistica, catalog.CreateSupplier)
	suppliers.Put("/:id", logistica, catalog.UpdateSupplier)
	suppliers.Delete("/:id", logistica, catalog.DeleteSupplier)

	// Obras y códigos contables (contabilidad)
	workHandler := NewWorkHandler(deps.WorkUC)
	works := protected.Group("/works")
	works.Get("/", workHandler.ListWorks)
	works.Get("/:id", workHandler.GetWork)
	works.Post("/", contabilidad, workHandler.CreateWork)
	works.Put("/:id", contabilidad, workHandler.UpdateWork)
	works.Delete("/:id", contabilidad, workHandler.DeleteWork)
	works.Get("/:id/accounting-codes", workHandler.ListWorkCodes)
	works.Post("/:id/accounting-codes", contabilidad, workHandler.AttachCode)
	works.Delete("/:id/accounting-codes/:codeId", contabilidad, workHandler.DetachCode)

	codes := protected.Group("/accounting-codes")
	codes.Get("/", workHandler.ListCodes)
	codes.Get("/:id", workHandler.GetCode)
	codes.Post("/", contabilidad, workHandler.CreateCode)
	codes.Put("/:id", contabilidad, workHandler.UpdateCode)
	codes.Delete("/:id", contabilidad, workHandler.DeleteCode)

	// Órdenes y requerimientos (logística)
	orderHandler := NewOrderHandler(deps.Orders, deps.Reports)
	orders := protected.Group("/orders", logistica)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.ChangeStatus)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/files", orderHandler.AddFiles)
	orders.Get("/:id/files/:fileId", orderHandler.DownloadFile)
	orders.Delete("/:id/files/:fileId", orderHandler.DeleteFile)
	orders.Get("/:id/pdf", orderHandler.PDF)
	orders.Get("/:id/quotation", orderHandler.Quotation)

	reqHandler := NewRequisitionHandler(deps.Requisitions, deps.Reports)
	reqs := protected.Group("/requisitions", logistica)
	reqs.Get("/", reqHandler.List)
	reqs.Post("/", reqHandler.Create)
	reqs.Get("/:id", reqHandler.Get)
	reqs.Delete("/:id", reqHandler.Delete)
	reqs.Post("/:id/lines/:lineId/deliver", reqHandler.DeliverLine)
	reqs.Post("/:id/lines/:lineId/cancel", reqHandler.CancelLine)
	reqs.Get("/:id/pdf", reqHandler.PDF)

	// Reportes
	reportHandler := NewReportHandler(deps.Reports)
	rep := protected.Group("/reports")
	rep.Get("/attendance.xlsx", rrhh, reportHandler.AttendanceXLSX)
	rep.Get("/attendance.pdf", rrhh, reportHandler.AttendancePDF)
	rep.Get("/attendance.html", rrhh, reportHandler.AttendanceHTML)
	rep.Get("/accounting-codes.xlsx", contabilidad, reportHandler.AccountingCodesXLSX)
	rep.Get("/accounting-codes.pdf", contabilidad, reportHandler.AccountingCodesPDF)
	rep.Get("/exports/:resource.xlsx", reportHandler.Export)
}
