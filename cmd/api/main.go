package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/jpavezc/khipu_checkout/configs"
	"github.com/jpavezc/khipu_checkout/handlers"
	"github.com/jpavezc/khipu_checkout/jobs"
	"github.com/jpavezc/khipu_checkout/payments"
	"github.com/jpavezc/khipu_checkout/routes"
	"github.com/jpavezc/khipu_checkout/services"
	"github.com/jpavezc/khipu_checkout/store"
	"github.com/robfig/cron/v3"
)

func main() {
	port := config.ConfigOr("PORT", "3000")
	publicBase := config.ConfigOr("PUBLIC_BASE_URL", "http://localhost:"+port)
	apiBase := config.ConfigOr("KHIPU_API_BASE", "https://payment-api.khipu.com")
	apiKey := config.Config("KHIPU_API_KEY")
	if apiKey == "" {
		log.Fatal("🔥 KHIPU_API_KEY is not set, refusing to start")
	}

	khipu := payments.NewKhipuClient(apiBase, apiKey)
	orders := store.NewOrderStore()
	paymentService := services.NewPaymentService(khipu, orders, publicBase)

	c := cron.New()
	c.AddFunc(config.ConfigOr("RECONCILE_CRON", "*/5 * * * *"), func() {
		jobs.ReconcilePendingOrders(orders, khipu)
	})
	go c.Start()
	log.Println("✅ Cron job for payment reconciliation scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Khipu Checkout Demo",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.PublicRoutes(app)
	routes.PaymentRoutes(app, &handlers.PaymentHandler{Service: paymentService, Provider: khipu}, &handlers.BankHandler{Provider: khipu})
	routes.WebhookRoutes(app, &handlers.WebhookHandler{Provider: khipu, Orders: orders})

	log.Printf("✅ API listening on http://localhost:%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
