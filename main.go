package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ristorante/internal/handlers"
	"ristorante/internal/middleware"
	"ristorante/internal/models"
	"ristorante/internal/repositories"
	"ristorante/internal/services"
	"ristorante/pkg/geocoding"
	"ristorante/pkg/rabbitmq"

	"github.com/spf13/viper"
)

// appRepos bundles every data access dependency so the app can be wired
// identically over postgres or the in-memory implementations.
type appRepos struct {
	products repositories.ProductRepository
	days     repositories.ProductDayRepository
	orders   repositories.OrderRepository
	lines    repositories.OrderLineRepository
	payments repositories.PaymentRepository
	sales    repositories.SaleRepository
	users    repositories.UserRepository
	carts    repositories.CartStore
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("GEOCODING_TIMEOUT_SECONDS", 5)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	geoTimeout := time.Duration(viper.GetInt("GEOCODING_TIMEOUT_SECONDS")) * time.Second

	// --- Repositories ---
	// Postgres when configured, in-memory otherwise so the app can run
	// standalone in development.
	repos, err := buildRepositories(databaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		seedProducts(repos.products, repos.days)
	}

	// --- RabbitMQ ---
	// The broker is optional: services nil-check the publisher, so a missing
	// broker only disables events.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	geoClient := geocoding.NewClient(geoTimeout)

	app := buildApp(repos, mqClient, geoClient, jwtSecret)

	// --- RabbitMQ Consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received order event %s: %s", msg.RoutingKey, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// buildRepositories opens postgres and migrates the schema, or falls back to
// the in-memory implementations when no database is configured.
func buildRepositories(databaseURL string) (*appRepos, error) {
	if databaseURL == "" {
		return &appRepos{
			products: repositories.NewMockProductRepository(),
			days:     repositories.NewMockProductDayRepository(),
			orders:   repositories.NewMockOrderRepository(),
			lines:    repositories.NewMockOrderLineRepository(),
			payments: repositories.NewMockPaymentRepository(),
			sales:    repositories.NewMockSaleRepository(),
			users:    repositories.NewMockUserRepository(),
			carts:    repositories.NewMemoryCartStore(),
		}, nil
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductDay{},
		&models.Order{},
		&models.OrderLine{},
		&models.Payment{},
		&models.Sale{},
		&models.User{},
		&repositories.CartRecord{},
	); err != nil {
		return nil, err
	}

	return &appRepos{
		products: repositories.NewGORMProductRepository(db),
		days:     repositories.NewGORMProductDayRepository(db),
		orders:   repositories.NewGORMOrderRepository(db),
		lines:    repositories.NewGORMOrderLineRepository(db),
		payments: repositories.NewGORMPaymentRepository(db),
		sales:    repositories.NewGORMSaleRepository(db),
		users:    repositories.NewGORMUserRepository(db),
		carts:    repositories.NewGORMCartStore(db),
	}, nil
}

// buildApp wires services and handlers into a configured Fiber app. It is
// shared with the integration test, which passes in-memory repositories and
// a nil broker.
func buildApp(repos *appRepos, mqClient *rabbitmq.Client, geoClient *geocoding.Client, jwtSecret string) *fiber.App {
	// Services nil-check the publisher interface; a typed nil pointer would
	// defeat that, so only hand it over when a client exists.
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}

	productService := services.NewProductService(repos.products, repos.days)
	availabilityService := services.NewAvailabilityService(repos.products, repos.days)
	cartService := services.NewCartService(repos.carts)
	checkoutService := services.NewCheckoutService(repos.orders, repos.lines, repos.payments, repos.sales, geoClient, events)
	orderService := services.NewOrderService(repos.orders, repos.lines, repos.products, repos.payments, events)
	trackingService := services.NewTrackingService(repos.orders, repos.payments)
	reportService := services.NewReportService(repos.orders, repos.payments, repos.sales)
	authService := services.NewAuthService(repos.users, jwtSecret)

	menuHandler := handlers.NewMenuHandler(productService, availabilityService)
	cartHandler := handlers.NewCartHandler(cartService, productService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	reportHandler := handlers.NewReportHandler(reportService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	menuHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)
	checkoutHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	trackingHandler.RegisterRoutes(api)

	// Reports are staff-only.
	staff := api.Group("/", middleware.AuthRequired(authService),
		middleware.RequireRoles(models.RoleCashier, models.RoleEmployee, models.RoleAdmin))
	reportHandler.RegisterRoutes(staff)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// seedProducts populates the in-memory menu with the dishes the restaurant
// serves every day.
func seedProducts(repo repositories.ProductRepository, days repositories.ProductDayRepository) {
	products := []models.Product{
		{ID: "prod-1", Name: "Pozole Verde", Description: "Pozole estilo Guerrero con tostadas", Price: 95.00, PrepTimeMinutes: 20, Available: true},
		{ID: "prod-2", Name: "Tacos de Asada", Description: "Orden de cinco tacos con cebolla y cilantro", Price: 70.00, PrepTimeMinutes: 15, Available: true},
		{ID: "prod-3", Name: "Agua de Jamaica", Description: "Vaso de un litro", Price: 25.00, PrepTimeMinutes: 5, Available: true},
	}

	weekdays := []string{"Domingo", "Lunes", "Martes", "Miercoles", "Jueves", "Viernes", "Sabado"}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
			continue
		}
		for _, day := range weekdays {
			if err := days.Assign(products[i].ID, day); err != nil {
				log.Printf("Error seeding day %s for %s: %v", day, products[i].Name, err)
			}
		}
		log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
	}
}
