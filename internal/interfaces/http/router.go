package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortizc/CajaPro-api/internal/application/activity"
	"github.com/jortizc/CajaPro-api/internal/application/analytics"
	"github.com/jortizc/CajaPro-api/internal/application/auth"
	"github.com/jortizc/CajaPro-api/internal/application/billing"
	"github.com/jortizc/CajaPro-api/internal/application/purchases"
	"github.com/jortizc/CajaPro-api/internal/application/sales"
	"github.com/jortizc/CajaPro-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	SupplierUC     *usecase.SupplierUseCase
	TicketUC       *usecase.TicketUseCase
	NotificationUC *usecase.NotificationUseCase
	SaleUC         *sales.SaleUseCase
	PurchaseUC     *purchases.PurchaseUseCase
	ActivityUC     *activity.FeedUseCase
	DashboardUC    *analytics.DashboardUseCase
	ReportUC       *analytics.ReportUseCase
	BillingUC      *billing.SubscriptionUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
//
// Tres niveles de acceso:
//   - público: registro, login y el webhook de la pasarela (firmado, no JWT);
//   - protegido: JWT válido + la tabla de permisos por prefijo (el rol
//     mínimo sube en empleados, compras, proveedores, reportes, checkout y
//     ajustes de empresa).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhook de la pasarela (público; autenticado por firma SHA-512)
	billingHandler := NewBillingHandler(deps.BillingUC)
	api.Post("/billing/notifications", billingHandler.Webhook)

	// Rutas protegidas (Bearer token + resolutor de permisos)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequirePermission())

	// Empresa (solo propietario)
	company := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company.Get("/settings", companyHandler.GetSettings)
	company.Put("/settings", companyHandler.UpdateSettings)

	// Empleados (admin o propietario)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.UserUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Put("/:id/role", employeeHandler.ChangeRole)
	employees.Delete("/:id", employeeHandler.Delete)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.UserUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/stock", productHandler.AdjustStock)
	products.Delete("/:id", productHandler.Delete)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Proveedores (admin o propietario)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Compras (admin o propietario)
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)

	// Tickets de servicio técnico
	tickets := protected.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Put("/:id/status", ticketHandler.UpdateStatus)

	// Notificaciones
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Feed de actividad
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.Feed)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)

	// Reportes (admin o propietario)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/sales", reportHandler.Sales)

	// Billing (checkout solo propietario; consulta para cualquier sesión)
	billingGroup := protected.Group("/billing")
	billingGroup.Post("/checkout", billingHandler.Checkout)
	billingGroup.Get("/subscription", billingHandler.Current)
}
