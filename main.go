package main

import (
	"log"
	"net/http"

	"jewellery-service/config"
	"jewellery-service/consumers"
	"jewellery-service/controllers"
	"jewellery-service/database"
	"jewellery-service/middlewares"
	"jewellery-service/rabbitmq"
	"jewellery-service/repository"
	"jewellery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

func main() {
	// Monetary values cross the API as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Schema setup failed: %v", err)
	}

	store := repository.NewMySQLStore(db)
	catalogService := services.NewCatalogService(store.Catalog)
	cartService := services.NewCartService(store.Carts, store.Catalog)
	orderService := services.NewOrderService(store.Orders, store.Carts, store.Customers)
	customerService := services.NewCustomerService(store.Customers)
	inquiryService := services.NewInquiryService(store.Inquiries)

	// The event subsystem is optional; every storefront operation completes
	// without it.
	var rmq *rabbitmq.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rmq, err = rabbitmq.NewRabbitMQ(cfg)
		if err != nil {
			log.Printf("RabbitMQ unavailable, events disabled: %v", err)
			rmq = nil
		} else {
			defer rmq.Close()
			if err := rmq.SetupQueues(); err != nil {
				log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
			}
			consumers.StartOrderConsumer(rmq.Channel, cfg, orderService)
		}
	}

	catalogController := controllers.NewCatalogController(catalogService)
	cartController := controllers.NewCartController(cartService)
	orderController := controllers.NewOrderController(orderService, rmq)
	customerController := controllers.NewCustomerController(customerService)
	inquiryController := controllers.NewInquiryController(inquiryService)

	r := gin.Default()
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/items", catalogController.ListActive)
		api.GET("/items/:id", catalogController.Get)

		api.POST("/cart/session", cartController.NewSession)
		api.GET("/cart/:session", cartController.Get)
		api.POST("/cart/:session/items", cartController.Add)
		api.DELETE("/cart/:session", cartController.Clear)
		api.PUT("/cart/items/:id", cartController.UpdateItem)
		api.DELETE("/cart/items/:id", cartController.Remove)

		api.POST("/orders", orderController.Create)
		api.GET("/orders/:id", orderController.Get)
		api.GET("/customers/:id/orders", orderController.ListByCustomer)

		api.POST("/customers", customerController.Create)
		api.POST("/inquiries", inquiryController.Create)
	}

	admin := r.Group("/api/admin")
	admin.Use(middlewares.AdminAuthMiddleware())
	{
		admin.POST("/items", catalogController.Create)
		admin.GET("/items", catalogController.ListAll)
		admin.PUT("/items/:id", catalogController.Update)
		admin.DELETE("/items/:id", catalogController.Delete)

		admin.GET("/orders", orderController.List)
		admin.PUT("/orders/:id", orderController.Update)

		admin.GET("/customers", customerController.List)

		admin.GET("/inquiries", inquiryController.List)
		admin.PUT("/inquiries/:id/status", inquiryController.UpdateStatus)
	}

	addr := ":" + cfg.Port
	log.Printf("Jewellery service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
