package main

import (
	"fmt"
	"log/slog"
	"os"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/failurerepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateRunPipelineCommandHandler(), configs.PipelineSchedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
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

		MarketplaceBaseURL: goDotEnvVariable("MARKETPLACE_BASE_URL"),
		MarketplaceAPIKey:  goDotEnvVariable("MARKETPLACE_API_KEY"),

		CarrierBaseURL:        goDotEnvVariable("CARRIER_BASE_URL"),
		CarrierCustomerNumber: goDotEnvVariable("CARRIER_CUSTOMER_NUMBER"),
		CarrierContractID:     goDotEnvVariable("CARRIER_CONTRACT_ID"),
		CarrierPaidByCustomer: goDotEnvVariable("CARRIER_PAID_BY_CUSTOMER"),
		CarrierAPIUser:        goDotEnvVariable("CARRIER_API_USER"),
		CarrierAPIPassword:    goDotEnvVariable("CARRIER_API_PASSWORD"),

		SenderName:         goDotEnvVariable("SENDER_NAME"),
		SenderCompany:      goDotEnvVariable("SENDER_COMPANY"),
		SenderContactPhone: goDotEnvVariable("SENDER_CONTACT_PHONE"),
		SenderAddress:      goDotEnvVariable("SENDER_ADDRESS"),
		SenderCity:         goDotEnvVariable("SENDER_CITY"),
		SenderProvince:     goDotEnvVariable("SENDER_PROVINCE"),
		SenderPostalCode:   goDotEnvVariable("SENDER_POSTAL_CODE"),

		LabelDir:         goDotEnvVariable("LABEL_DIR"),
		PipelineSchedule: goDotEnvVariable("PIPELINE_SCHEDULE"),

		SettleDelay:           goDotEnvVariable("ACCEPTANCE_SETTLE_DELAY"),
		MaxValidationAttempts: goDotEnvVariable("ACCEPTANCE_MAX_ATTEMPTS"),
		MaxLabelAttempts:      goDotEnvVariable("LABEL_MAX_ATTEMPTS"),
		LabelRetryDelay:       goDotEnvVariable("LABEL_RETRY_DELAY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	_ = godotenv.Load(".env")
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusEventDTO{},
		&shipmentrepo.ShipmentDTO{},
		&auditrepo.APICallDTO{},
		&failurerepo.FailureDTO{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateReleaseShipmentCommandHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
		app.CreateGetFailuresQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
