package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/distributedbanking/processing/internal/config"
	"github.com/distributedbanking/processing/internal/handler"
	"github.com/distributedbanking/processing/internal/kafka"
	"github.com/distributedbanking/processing/internal/listener"
	"github.com/distributedbanking/processing/internal/messages"
	"github.com/distributedbanking/processing/internal/middleware"
	redisclient "github.com/distributedbanking/processing/internal/redis"
	"github.com/distributedbanking/processing/internal/repository"
	"github.com/distributedbanking/processing/internal/service"
)

type runner interface {
	Run(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Document store (system of record)
	db, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer db.Close(context.Background())

	// Redis connection (reply channels)
	redis, err := redisclient.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	replies := redisclient.NewPublisher(redis)

	// --- domain wiring ---
	generator := service.NewGenerator()
	userManager := service.NewUserManager(db.Users(), db.Roles(), db)
	rolesManager := service.NewRolesManager(db.Roles())
	accountService := service.NewAccountService(db.Accounts(), db.Customers(), db, generator)
	transactionService := service.NewTransactionService(db.Transactions(), db.Accounts(), db)
	identityService := service.NewIdentityService(userManager, db.Customers(), db.Workers(), accountService, db)

	kafkaCfg := kafka.Config{
		Brokers:  cfg.KafkaBrokers,
		Group:    cfg.KafkaGroup,
		ClientID: "processing-" + uuid.NewString(),
	}

	pipelines := []runner{
		listener.NewRoleCreationListener(
			kafka.NewConsumer[messages.RoleCreation](kafkaCfg, messages.TopicRoleCreation), replies, rolesManager),
		listener.NewCustomerRegistrationListener(
			kafka.NewConsumer[messages.CustomerRegistration](kafkaCfg, messages.TopicCustomerRegistration), replies, identityService),
		listener.NewWorkerRegistrationListener(
			kafka.NewConsumer[messages.WorkerRegistration](kafkaCfg, messages.TopicWorkerRegistration), replies, identityService),
		listener.NewCustomerInfoUpdateListener(
			kafka.NewConsumer[messages.CustomerInfoUpdate](kafkaCfg, messages.TopicCustomerInfoUpdate), replies, identityService),
		listener.NewEndUserDeletionListener(
			kafka.NewConsumer[messages.EndUserDeletion](kafkaCfg, messages.TopicEndUserDeletion), replies, identityService),
		listener.NewAccountCreationListener(
			kafka.NewConsumer[messages.AccountCreation](kafkaCfg, messages.TopicAccountCreation), replies, accountService),
		listener.NewAccountDeletionListener(
			kafka.NewConsumer[messages.AccountDeletion](kafkaCfg, messages.TopicAccountDeletion), replies, accountService),
		listener.NewTransactionListener(
			kafka.NewConsumer[messages.TransactionCreation](kafkaCfg, messages.TopicTransactionCreation), replies, transactionService),
	}

	var wg sync.WaitGroup
	for _, p := range pipelines {
		wg.Add(1)
		go func(p runner) {
			defer wg.Done()
			if err := p.Run(ctx); err != nil {
				log.Printf("Listener stopped: %v", err)
			}
		}(p)
	}

	// --- ops API ---
	accountHandler := handler.NewAccountHandler(accountService, transactionService)
	authHandler := handler.NewAuthHandler(userManager, []byte(cfg.JWTSecret), cfg.TokenTTL)

	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.POST("/v1/auth/login", authHandler.Login)

	v1 := router.Group("/v1", middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	{
		v1.GET("/users/me", authHandler.Me)
		v1.GET("/accounts", accountHandler.ListAccounts)
		v1.GET("/accounts/:accountId", accountHandler.GetAccount)
		v1.GET("/accounts/:accountId/balance", accountHandler.GetBalance)
		v1.GET("/accounts/:accountId/transactions", accountHandler.ListTransactions)
		v1.GET("/customers/:customerId/accounts", accountHandler.ListCustomerAccounts)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Processing node starting on port %s", cfg.HTTPPort)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	wg.Wait()
}
