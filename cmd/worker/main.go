package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"payout-service/internal/config"
	"payout-service/internal/consumers"
	"payout-service/internal/database"
	"payout-service/internal/services"
	"payout-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	payoutCfg := config.LoadPayout()
	providerCfg := config.LoadProvider()

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	// Init Services
	providerClient := services.NewProviderClient(db, providerCfg)
	ledgerService := services.NewLedgerService(db)
	reconcileService := services.NewReconcileService(db, ledgerService, providerClient, payoutCfg, asynqClient)
	bankService := services.NewBankService(db, providerClient)

	processor := consumers.NewReconcileProcessor(reconcileService, bankService)

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
