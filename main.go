package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	blogControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/blog"
	checkoutControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/checkout"
	orderControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/order"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/gateway"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/mailer"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/routes"
)

func main() {
	_ = godotenv.Load()
	setupLogging()

	log.Info().Msg("starting meaculpa api")

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Favorite{},
		&models.UserAddress{},
		&models.SavedCard{},
		&models.BodyProfile{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductSize{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PendingOrder{},
		&models.Coupon{},
		&models.UserCoupon{},
		&models.BlogPost{},
		&models.BlogCategory{},
		&models.BlogComment{},
	); err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}

	gin.SetMode(os.Getenv("GIN_MODE"))
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20 // product photos and Excel sheets

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	gw, err := gateway.NewClientFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("payment gateway configuration invalid")
	}
	mail := mailer.NewFromEnv()

	notifyOrder := func(order models.Order) {
		orderControllers.BroadcastNewOrder(order)
		mail.SendOrderNotification(order)
	}

	routes.SetupRoutes(r, db, gw, notifyOrder)

	// background jobs
	go blogControllers.RunPublisher(db, time.Minute)
	go sweepDraftsLoop(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}
}

func allowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		return []string{v}
	}
	return []string{"*"}
}

func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatal().Err(err).Msg("db connection failed")
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("db connection failed")
	}
	return db
}

// sweepDraftsLoop marks pending orders nobody came back for as abandoned, so
// the table stays readable when reconciling payments by hand.
func sweepDraftsLoop(db *gorm.DB) {
	for {
		time.Sleep(15 * time.Minute)
		if _, err := checkoutControllers.SweepAbandonedDrafts(db, 2*time.Hour); err != nil {
			log.Error().Err(err).Msg("draft sweep failed")
		}
	}
}
