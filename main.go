package main

import (
	"log"
	"os"

	"payout-service/internal/config"
	"payout-service/internal/database"
	"payout-service/internal/handlers"
	"payout-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	payoutCfg := config.LoadPayout()
	providerCfg := config.LoadProvider()

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	providerClient := services.NewProviderClient(db, providerCfg)
	ledgerService := services.NewLedgerService(db)
	pricingService := services.NewPricingService(db, payoutCfg)
	duplicateGuard := services.NewDuplicateGuard(db, payoutCfg.DuplicateWindow)
	transferService := services.NewTransferService(db, ledgerService, pricingService, duplicateGuard, providerClient, payoutCfg)
	reconcileService := services.NewReconcileService(db, ledgerService, providerClient, payoutCfg, asynqClient)
	bankService := services.NewBankService(db, providerClient)

	payoutHandler := handlers.NewPayoutHandler(transferService, reconcileService, bankService)
	walletHandler := handlers.NewWalletHandler(ledgerService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the payout service",
		})
	})

	r.POST("/payouts", payoutHandler.SubmitTransfer)
	r.GET("/payouts", payoutHandler.ListPayouts)
	r.GET("/payouts/:id", payoutHandler.GetStatus)
	r.POST("/payouts/reconcile", payoutHandler.RunReconciliation)
	r.GET("/banks", payoutHandler.ListBanks)
	r.GET("/wallets/balance", walletHandler.GetBalance)
	r.GET("/wallets/statement", walletHandler.GetStatement)

	// Start Cron Schedulers
	reconcileService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
