package main

import (
	"strings"

	"salesdash-backend/internal/analytics"
	"salesdash-backend/internal/audit"
	"salesdash-backend/internal/auth"
	"salesdash-backend/internal/config"
	"salesdash-backend/internal/dashboard"
	"salesdash-backend/internal/database"
	"salesdash-backend/internal/logger"
	"salesdash-backend/internal/models"
	"salesdash-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg := config.Load()
	database.Init(cfg, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Report import and record management
	protected.Post("/sales-reports/import", sales.ImportReportHandler(log))
	protected.Get("/sales-records", sales.ListSalesRecordsHandler())
	protected.Get("/sales-records/:date", sales.GetSalesRecordHandler())
	protected.Put("/sales-records/:date", sales.UpdateSalesRecordHandler(log))
	protected.Delete("/sales-records/:date", sales.DeleteSalesRecordHandler(log))

	// Analytics
	protected.Get("/analytics/monthly", analytics.MonthlyHandler())
	protected.Get("/analytics/quarterly", analytics.QuarterlyHandler())
	protected.Get("/analytics/yearly", analytics.YearlyHandler())
	protected.Get("/analytics/comparison", analytics.ComparisonHandler())

	// Dashboard
	protected.Get("/dashboard/sales-chart", dashboard.SalesChartHandler())

	// Admin only
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Delete("/sales-records", sales.ClearSalesRecordsHandler(log))
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
