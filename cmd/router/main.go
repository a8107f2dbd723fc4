package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paylinkhq/router-core/internal/connector"
	"github.com/paylinkhq/router-core/internal/connector/execution"
	"github.com/paylinkhq/router-core/internal/connector/stripe"
	"github.com/paylinkhq/router-core/internal/domain/entities"
	"github.com/paylinkhq/router-core/internal/infrastructure/database/postgres"
	"github.com/paylinkhq/router-core/internal/infrastructure/database/postgres/repositories"
	"github.com/paylinkhq/router-core/internal/infrastructure/database/redis"
	httphandlers "github.com/paylinkhq/router-core/internal/interfaces/http/handlers"
	"github.com/paylinkhq/router-core/internal/interfaces/http/routes"
	"github.com/paylinkhq/router-core/internal/operations"
	"github.com/paylinkhq/router-core/internal/webhook"
	"github.com/paylinkhq/router-core/pkg/config"
	"github.com/paylinkhq/router-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Env)

	gormDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", err)
	}
	db := postgres.NewDatabase(gormDB, &cfg.Database)
	defer db.Close()

	if err := db.AutoMigrate(
		&entities.PaymentIntent{},
		&entities.PaymentAttempt{},
		&entities.ConnectorResponse{},
		&entities.Refund{},
		&entities.Mandate{},
		&entities.TempCard{},
		&entities.MerchantAccount{},
		&entities.Customer{},
		&entities.Address{},
	); err != nil {
		logger.Fatal("failed to auto-migrate schema", err)
	}

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", err)
	}
	defer redisClient.Close()

	kvStore := redis.NewKeyValueStore(redisClient)

	deps := &operations.Dependencies{
		Intents:            repositories.NewPaymentIntentRepository(gormDB),
		Attempts:           repositories.NewPaymentAttemptRepository(gormDB),
		ConnectorResponses: repositories.NewConnectorResponseRepository(gormDB),
		Refunds:            repositories.NewRefundRepository(gormDB),
		Merchants:          repositories.NewMerchantAccountRepository(gormDB),
		TempCards:          repositories.NewTempCardRepository(gormDB),
		Mandates:           repositories.NewMandateRepository(gormDB),
		Registry:           connector.NewRegistry(&cfg.Connectors),
		Engine:             execution.NewEngine(&cfg.HTTPClient),
		ConnectorsConfig:   &cfg.Connectors,
	}

	if err := deps.Registry.Register("stripe", stripe.New()); err != nil {
		logger.Fatal("failed to register stripe adapter", err)
	}

	authorizeOp := operations.NewAuthorizeOperation(deps)
	captureOp := operations.NewCaptureOperation(deps)
	psyncOp := operations.NewPSyncOperation(deps)
	voidOp := operations.NewVoidOperation(deps)
	verifyOp := operations.NewVerifyOperation(deps)
	refundExecuteOp := operations.NewRefundExecuteOperation(deps)
	refundSyncOp := operations.NewRefundSyncOperation(deps)

	verifier := webhook.NewVerifier(kvStore, cfg.Webhook.SecretKeyPrefix)
	processor := webhook.NewProcessor(verifier, deps.Attempts, deps.Refunds, kvStore, psyncOp, refundSyncOp)

	paymentHandler := httphandlers.NewPaymentHandler(authorizeOp, captureOp, psyncOp, voidOp, verifyOp, refundExecuteOp, refundSyncOp)
	webhookHandler := httphandlers.NewWebhookHandler(processor)
	healthHandler := httphandlers.NewHealthHandler(db, redisClient)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	router := routes.NewRouter(paymentHandler, webhookHandler, healthHandler)
	router.Register(engine)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting router-core server", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down router-core server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", err)
	}

	logger.Info("server exited")
}
