package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/constructora-api/internal/application/attendance"
	"github.com/jhoicas/constructora-api/internal/application/auth"
	"github.com/jhoicas/constructora-api/internal/application/ports"
	"github.com/jhoicas/constructora-api/internal/application/purchasing"
	"github.com/jhoicas/constructora-api/internal/application/reports"
	"github.com/jhoicas/constructora-api/internal/application/requisition"
	"github.com/jhoicas/constructora-api/internal/application/usecase"
	"github.com/jhoicas/constructora-api/internal/infrastructure/excel"
	"github.com/jhoicas/constructora-api/internal/infrastructure/htmlreport"
	infrapdf "github.com/jhoicas/constructora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/constructora-api/internal/infrastructure/postgres"
	"github.com/jhoicas/constructora-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/constructora-api/internal/interfaces/http"
	"github.com/jhoicas/constructora-api/pkg/config"
	"github.com/jhoicas/constructora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Report.Timezone).Msg("zona horaria de reportes")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	disk, err := storage.NewDisk(cfg.Storage.Root)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de adjuntos")
	}

	clock := ports.Clock(ports.SystemClock)

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	trainingRepo := postgres.NewTrainingRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	workRepo := postgres.NewWorkRepository(pool)
	codeRepo := postgres.NewAccountingCodeRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	requisitionRepo := postgres.NewRequisitionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, clock)

	attendanceSvc := attendance.NewService(attendanceRepo, employeeRepo, txRunner, excel.NewReader(), clock, loc)
	orderSvc := purchasing.NewService(purchasing.Deps{
		Orders:      orderRepo,
		Suppliers:   supplierRepo,
		Works:       workRepo,
		Products:    productRepo,
		Tx:          txRunner,
		Storage:     disk,
		Clock:       clock,
		MaxUploadMB: cfg.Storage.MaxUploadMB,
	})
	requisitionSvc := requisition.NewService(requisitionRepo, employeeRepo, workRepo, productRepo, txRunner, clock, loc)
	reportSvc := reports.NewService(reports.Deps{
		Employees:    employeeRepo,
		Attendance:   attendanceRepo,
		Codes:        codeRepo,
		Orders:       orderRepo,
		Requisitions: requisitionRepo,
		Products:     productRepo,
		Suppliers:    supplierRepo,
		XLSX:         excel.NewWriter(),
		PDF:          infrapdf.NewGenerator(),
		HTML:         htmlreport.NewRenderer(),
		Clock:        clock,
		Config: reports.Config{
			CompanyName:       cfg.Report.CompanyName,
			CompanyRUC:        cfg.Report.CompanyRUC,
			Location:          loc,
			QuotationKeywords: cfg.Quotation.Keywords,
			QuotationPrices:   cfg.Quotation.EstimatedPrices,
		},
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Constructora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		RoleUC:       usecase.NewRoleUseCase(roleRepo, clock),
		EmployeeUC:   usecase.NewEmployeeUseCase(employeeRepo, roleRepo, clock),
		TrainingUC:   usecase.NewTrainingUseCase(trainingRepo, employeeRepo, txRunner, clock),
		CategoryUC:   usecase.NewCategoryUseCase(categoryRepo, clock),
		ProductUC:    usecase.NewProductUseCase(productRepo, categoryRepo, clock),
		SupplierUC:   usecase.NewSupplierUseCase(supplierRepo, clock),
		WorkUC:       usecase.NewWorkUseCase(workRepo, codeRepo, clock),
		Attendance:   attendanceSvc,
		Orders:       orderSvc,
		Requisitions: requisitionSvc,
		Reports:      reportSvc,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
