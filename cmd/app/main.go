package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"mparcel/cmd"
	"mparcel/internal/adapters/out/postgres/orderrepo"
	"mparcel/internal/adapters/out/postgres/outboxrepo"
	"mparcel/internal/adapters/out/postgres/userrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := ensureDatabase(configs); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		JWTSecret: goDotEnvVariable("JWT_SECRET"),
		RedisAddr: goDotEnvVariable("REDIS_ADDR"),

		MpesaBaseURL:        goDotEnvVariable("MPESA_BASE_URL"),
		MpesaConsumerKey:    goDotEnvVariable("MPESA_CONSUMER_KEY"),
		MpesaConsumerSecret: goDotEnvVariable("MPESA_CONSUMER_SECRET"),
		MpesaShortcode:      goDotEnvVariable("MPESA_SHORTCODE"),
		MpesaPasskey:        goDotEnvVariable("MPESA_PASSKEY"),
		MpesaCallbackURL:    goDotEnvVariable("MPESA_CALLBACK_URL"),

		SMSBaseURL:  goDotEnvVariable("SMS_BASE_URL"),
		SMSAPIKey:   goDotEnvVariable("SMS_API_KEY"),
		SMSUsername: goDotEnvVariable("SMS_USERNAME"),
		SMSSenderID: goDotEnvVariable("SMS_SENDER_ID"),

		WhatsAppBaseURL:       goDotEnvVariable("WHATSAPP_BASE_URL"),
		WhatsAppPhoneNumberID: goDotEnvVariable("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppAccessToken:   goDotEnvVariable("WHATSAPP_ACCESS_TOKEN"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// ensureDatabase creates the application database when it does not exist
// yet, connecting through the default postgres database.
func ensureDatabase(config cmd.Config) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", config.DBName).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", config.DBName))
	}
	return err
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&outboxrepo.OutboxEventDTO{},
	)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
