package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/abhishekdhull21/pos-server/internal/config"
	"github.com/abhishekdhull21/pos-server/internal/infra/database"
	"github.com/abhishekdhull21/pos-server/internal/infra/http/handlers"
	"github.com/abhishekdhull21/pos-server/internal/infra/http/middleware"
	"github.com/abhishekdhull21/pos-server/internal/infra/mail"
	"github.com/abhishekdhull21/pos-server/internal/infra/queue"
	"github.com/abhishekdhull21/pos-server/internal/usecase"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	if err := database.ValidateSchemas(); err != nil {
		logger.Fatal("schema inválido", zap.Error(err))
	}

	db, err := database.NewDBConnection(
		database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName),
		cfg.DBPoolSize,
	)
	if err != nil {
		logger.Fatal("falha ao conectar no banco", zap.Error(err))
	}
	defer db.Close()

	executor := database.NewExecutor(database.NewSQLPool(db), logger, database.ExecutorConfig{})

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(executor)
	customerRepo := database.NewCustomerRepository(executor)
	employmentRepo := database.NewEmploymentRepository(executor)
	stateRepo := database.NewStateRepository(executor)
	pincodeRepo := database.NewPincodeRepository(executor)
	blacklistRepo := database.NewBlacklistRepository(executor)
	repaymentRepo := database.NewRepaymentRepository(executor)
	userRepo := database.NewUserRepository(executor)

	// 2. Fila + worker de boas-vindas (opcional: só sobe com broker configurado)
	var producer usecase.QueueProducerInterface
	var rabbitMQ *queue.RabbitMQ
	if cfg.RabbitHost != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
		if err != nil {
			logger.Fatal("falha ao conectar no RabbitMQ", zap.Error(err))
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		mailSender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPSender)
		worker := queue.NewWorker(rabbitMQ.Ch, mailSender, logger)
		go worker.Start(queue.QueueName)
	}

	// 3. UseCases
	saveStepUC := usecase.NewSaveLeadStepUseCase(
		leadRepo, customerRepo, employmentRepo,
		stateRepo, pincodeRepo, blacklistRepo,
		producer, logger,
	)
	repaymentUC := usecase.NewRepaymentInfoUseCase(leadRepo, repaymentRepo)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(saveStepUC, repaymentUC)
	userHandler := handlers.NewUserHandler(userRepo)

	var rabbitConn *amqp.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Route("/leads", func(r chi.Router) {
		r.Post("/saveStep", leadHandler.SaveStep)
		r.Get("/getCustomerDisbursement", leadHandler.GetCustomerDisbursement)
	})
	r.Get("/users/", userHandler.Get)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		logger.Info("servidor no ar", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("servidor HTTP caiu", zap.Error(err))
		}
	}()

	// teardown explícito no shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("encerrando...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown com erro", zap.Error(err))
	}
}
