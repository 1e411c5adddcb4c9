package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/infra/ai"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/randomuser"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/scheduler"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositório e cache
	leadRepo := database.NewLeadRepository(db)
	leadCache := cache.NewLeadCache(rdb, cfg.CacheTTL)

	// 2. Enrichment: sem key, cai no fallback determinístico
	var provider ai.CompletionProvider
	if cfg.OpenAIAPIKey != "" {
		provider = ai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	enricher := ai.NewEnricher(provider)

	// 3. UseCases
	leadService := usecase.NewLeadService(leadRepo, leadCache, enricher)
	feedClient := randomuser.NewClient(cfg.FeedURL)
	syncUC := usecase.NewSyncLeadsUseCase(leadService, feedClient)

	// 4. Queue: producer, histórico e worker
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	history := queue.NewJobHistory(rdb, cfg.KeepCompleted, cfg.KeepFailed)

	var mailer usecase.EmailService
	if cfg.MailHost != "" && cfg.ReportTo != "" {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.ReportTo)
	}

	worker := queue.NewWorker(rabbitMQ.Ch, syncUC, history, mailer, cfg.SyncMaxAttempts, cfg.SyncBackoffBase)
	go worker.Start(queue.QueueName)

	// 5. Scheduler (desligado em test)
	sched, err := scheduler.New(producer, cfg.SyncCronSpec, cfg.SyncBatchSize, !cfg.IsTest())
	if err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(leadService)
	syncHandler := handlers.NewSyncHandler(producer, history, cfg.SyncBatchSize)
	authHandler := handlers.NewAuthHandler(cfg.JWTSecret, cfg.DemoUsername, cfg.DemoPassword, cfg.IsTest())
	healthHandler := handlers.NewHealthHandler(db, rdb, rabbitMQ.Conn, cfg.OpenAIAPIKey != "")

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/auth/login", authHandler.Login)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTGuard(cfg.JWTSecret))

		r.Post("/create-lead", leadHandler.Create)
		r.Get("/leads", leadHandler.List)
		r.Get("/leads/{id}", leadHandler.Get)
		r.Post("/leads/{id}/summarize", leadHandler.Summarize)

		r.Post("/sync", syncHandler.Trigger)
		r.Get("/sync/history", syncHandler.History)
	})

	port := ":" + cfg.Port
	log.Printf("🔥 Server LigueLeads rodando na porta %s", port)
	http.ListenAndServe(port, r)
}
