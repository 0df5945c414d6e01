package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jortizc/CajaPro-api/internal/application/activity"
	appanalytics "github.com/jortizc/CajaPro-api/internal/application/analytics"
	"github.com/jortizc/CajaPro-api/internal/application/auth"
	"github.com/jortizc/CajaPro-api/internal/application/billing"
	"github.com/jortizc/CajaPro-api/internal/application/purchases"
	"github.com/jortizc/CajaPro-api/internal/application/sales"
	"github.com/jortizc/CajaPro-api/internal/application/usecase"
	infrapayment "github.com/jortizc/CajaPro-api/internal/infrastructure/payment"
	infrapdf "github.com/jortizc/CajaPro-api/internal/infrastructure/pdf"
	"github.com/jortizc/CajaPro-api/internal/infrastructure/postgres"
	httpRouter "github.com/jortizc/CajaPro-api/internal/interfaces/http"
	"github.com/jortizc/CajaPro-api/pkg/config"
	"github.com/jortizc/CajaPro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	eventRepo := postgres.NewProductEventRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	ticketUC := usecase.NewTicketUseCase(ticketRepo, customerRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	productUC := usecase.NewProductUseCase(productRepo, eventRepo, notificationUC, log)

	// Recibo PDF de venta (maroto)
	receiptGen := infrapdf.NewReceiptGenerator()
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, customerRepo, companyRepo, receiptGen)
	purchaseUC := purchases.NewPurchaseUseCase(txRunner, purchaseRepo, supplierRepo)

	activityUC := activity.NewFeedUseCase(saleRepo, purchaseRepo, eventRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	reportUC := appanalytics.NewReportUseCase(analyticsRepo)

	// Suscripciones: pasarela Snap + notificaciones internas de resultado
	gateway := infrapayment.NewMidtransClient(cfg.Payment)
	billingUC := billing.NewSubscriptionUseCase(
		subscriptionRepo, companyRepo, gateway, notificationUC,
		cfg.Payment.ServerKey, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CajaPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		UserUC:         userUC,
		ProductUC:      productUC,
		CustomerUC:     customerUC,
		SupplierUC:     supplierUC,
		TicketUC:       ticketUC,
		NotificationUC: notificationUC,
		SaleUC:         saleUC,
		PurchaseUC:     purchaseUC,
		ActivityUC:     activityUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		BillingUC:      billingUC,
		JWTSecret:      cfg.JWT.Secret,
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
