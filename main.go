package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hserranome/drawaday-api/internal/handlers"
	"github.com/hserranome/drawaday-api/internal/middleware"
	"github.com/hserranome/drawaday-api/internal/models"
	"github.com/hserranome/drawaday-api/internal/repositories"
	"github.com/hserranome/drawaday-api/internal/services"
	"github.com/hserranome/drawaday-api/pkg/password"
	"github.com/hserranome/drawaday-api/pkg/rabbitmq"
	"github.com/hserranome/drawaday-api/pkg/token"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "") // empty: in-memory store for local dev
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("RABBITMQ_URL", "") // empty: event publishing disabled
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	tokenTTL := viper.GetDuration("TOKEN_TTL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- User repository ---
	// Postgres when DATABASE_URL is set; otherwise an in-memory store
	// so the service runs without any infrastructure.
	var userRepo repositories.UserRepository
	if databaseURL != "" {
		// TranslateError makes unique index violations gorm.ErrDuplicatedKey,
		// which the repository maps to ErrDuplicateEmail.
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory user store")
		userRepo = repositories.NewMockUserRepository()
	}

	// --- RabbitMQ client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, user event publishing disabled")
	}

	// --- Services ---
	hasher := password.NewHasher()
	tokens := token.NewManager(jwtSecret, tokenTTL)
	authService := services.NewAuthService(userRepo, hasher, tokens, mqClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(fiberlogger.New()) // Request logger

	// --- API routes ---
	apiV1 := app.Group("/api/v1")

	// Public authentication routes
	authHandler.RegisterRoutes(apiV1)

	// Routes behind the bearer-token guard
	protected := apiV1.Group("", middleware.AuthRequired(tokens))
	profileHandler.RegisterRoutes(protected)

	// --- Health check endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- User events consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for user events...")
			messageHandler := func(msg amqp.Delivery) error {
				// Hook point for downstream work such as welcome emails.
				log.Printf("Received user event (tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeUserEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
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
