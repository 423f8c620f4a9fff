// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/JHRsoftware/jp-stores-sub001/internal/domain"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/auth"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/cashbook"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/customer"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/item"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/supplier"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/grn"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/documents/invoice"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/reports"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/dto"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/handlers"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/http/v1/middleware"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres/document_repo"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/JHRsoftware/jp-stores-sub001/internal/infrastructure/storage/postgres/report_repo"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/numerator"
)

// RouterConfig holds everything the HTTP layer depends on.
type RouterConfig struct {
	Pool         *postgres.Pool
	TxManager    *postgres.TxManager
	Capabilities postgres.Capabilities
	Logger       *logger.Logger
	Numerator    *numerator.Service
	Audit        domain.Auditor

	// AuthService handles login, lockout and account management.
	AuthService *auth.Service
}

// NewRouter creates and configures the Gin router. Every /api route except
// /api/login sits behind JWT auth; /health has neither.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	api := router.Group("/api")
	api.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.AuthService))

	registerInvoiceRoutes(protected, baseHandler, cfg)
	registerGrnRoutes(protected, baseHandler, cfg)
	registerProductRoutes(protected, baseHandler, cfg)
	registerCatalogRoutes(protected, baseHandler, cfg)
	registerCashbookRoutes(protected, baseHandler, cfg)
	registerReportRoutes(protected, baseHandler, cfg)

	users := protected.Group("/users")
	users.Use(middleware.RequirePage("admin"))
	{
		users.POST("", authHandler.CreateUser)
		users.GET("", authHandler.ListUsers)
	}

	return router
}

func newStockAdjuster(cfg RouterConfig) *catalog_repo.ItemRepo {
	return catalog_repo.NewItemRepo(cfg.TxManager)
}

func registerInvoiceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	customerService := customer.NewService(customerRepo, cfg.TxManager, cfg.Numerator)

	repo := document_repo.NewInvoiceRepo(cfg.TxManager, cfg.Capabilities)
	service := invoice.NewService(repo, newStockAdjuster(cfg), customerService, cfg.TxManager, cfg.Numerator, cfg.Audit)
	handler := handlers.NewInvoiceHandler(base, service)

	reportService := reports.NewService(report_repo.NewReportRepo(cfg.TxManager))
	reportHandler := handlers.NewReportsHandler(base, reportService)

	group := rg.Group("/invoice")
	{
		group.POST("", handler.Create)
		group.POST("/update", handler.Update)
		group.GET("/list", handler.List)
		group.GET("/:id", handler.Get)
		group.POST("/stats", reportHandler.InvoiceStats)

		group.POST("/hold", handler.CreateHold)
		group.GET("/hold/list", handler.ListHolds)
		group.POST("/hold/convert", handler.ConvertHold)
		group.DELETE("/hold/:id", handler.DeleteHold)
	}
}

func registerGrnRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	repo := document_repo.NewGrnRepo(cfg.TxManager)
	service := grn.NewService(repo, newStockAdjuster(cfg), cfg.TxManager, cfg.Numerator, cfg.Audit)
	handler := handlers.NewGrnHandler(base, service)

	group := rg.Group("/grn")
	{
		group.POST("", handler.Create)
		group.PUT("/line", handler.UpdateLine)
		group.GET("/list", handler.List)
		group.GET("/:id", handler.Get)
		group.PUT("/:id", handler.UpdateHeader)
		group.DELETE("/:id", handler.Delete)
	}
}

func registerProductRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	repo := catalog_repo.NewItemRepo(cfg.TxManager)
	priceRepo := catalog_repo.NewPriceRepo(cfg.TxManager)
	service := item.NewService(repo, priceRepo, cfg.TxManager, cfg.Numerator)
	handler := handlers.NewItemHandler(base, service)

	products := rg.Group("/products")
	{
		products.GET("/item", handler.Get)
		products.GET("/item/:id", handler.GetByID)
		products.POST("/item", handler.Create)
		products.PUT("/item", handler.Update)
		products.DELETE("/item/:id", handler.Delete)

		products.GET("/price", handler.GetPrices)
		products.POST("/price", handler.SavePrice)
		products.DELETE("/price", handler.DeletePrice)
	}
}

func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewCatalogHandler(base, handlers.CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
			Service: service.CatalogService,
			MapCreateDTO: func(req dto.CreateCustomerRequest) *customer.Customer {
				return req.ToEntity()
			},
			MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
				req.ApplyTo(existing)
				return existing
			},
		})
		registerCatalogCRUD(rg.Group("/customers"), handler)
	}

	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewCatalogHandler(base, handlers.CatalogHandlerConfig[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
			Service: service.CatalogService,
			MapCreateDTO: func(req dto.CreateSupplierRequest) *supplier.Supplier {
				return req.ToEntity()
			},
			MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) *supplier.Supplier {
				req.ApplyTo(existing)
				return existing
			},
		})
		registerCatalogCRUD(rg.Group("/suppliers"), handler)
	}
}

// catalogRoutes is the CRUD surface every catalog handler exposes.
type catalogRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerCatalogCRUD(group *gin.RouterGroup, handler catalogRoutes) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

func registerCashbookRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	repo := ledger_repo.NewCashbookRepo(cfg.TxManager)
	service := cashbook.NewService(repo, cfg.TxManager, cfg.Audit)
	handler := handlers.NewCashbookHandler(base, service)

	group := rg.Group("/cashbook")
	{
		group.POST("", handler.Add)
		group.GET("", handler.List)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	service := reports.NewService(report_repo.NewReportRepo(cfg.TxManager))
	handler := handlers.NewReportsHandler(base, service)

	rg.GET("/dashboard/summary", handler.DashboardSummary)
}
