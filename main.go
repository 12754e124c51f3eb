package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/checkout"
	"github.com/jbritogeral-a11y/loja-api/mailer"
	"github.com/jbritogeral-a11y/loja-api/models"
	"github.com/jbritogeral-a11y/loja-api/routes"
	"github.com/jbritogeral-a11y/loja-api/settings"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Process-wide settings, loaded once before anything else
	if err := settings.Init(); err != nil {
		log.Fatalf("❌ Settings init failed: %v", err)
	}
	cfg := settings.Get()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentMethod{},
		&models.ShippingMethod{},
		&models.Therapy{},
		&models.Appointment{},
		&models.Ceremony{},
		&models.CeremonyRegistration{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// First administrator account, created once from the environment
	if err := bootstrapAdmin(db); err != nil {
		log.Fatalf("❌ Admin bootstrap failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve product and therapy images
	r.Static("/uploads", envOr("UPLOADS_DIR", "./uploads"))

	// Session-scoped carts with a background janitor
	store := cart.NewStore(cfg.SessionTTL)
	go store.Janitor(10 * time.Minute)

	// Checkout orchestrator and best-effort mail
	sender := mailer.NewSMTP(cfg.SMTPAddr, cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPassword)
	svc := checkout.NewService(checkout.NewStore(db), sender)

	// Setup routes
	routes.SetupRoutes(r, db, store, svc, sender)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// bootstrapAdmin guarantees one administrator exists when ADMIN_EMAIL and
// ADMIN_PASSWORD are set.
func bootstrapAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdministrator,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Bootstrapped administrator account %s", email)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
