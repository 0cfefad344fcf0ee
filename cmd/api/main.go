package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/electronicart/marketing-agent/internal/config"
	"github.com/electronicart/marketing-agent/internal/infra/ai"
	"github.com/electronicart/marketing-agent/internal/infra/database"
	"github.com/electronicart/marketing-agent/internal/infra/http/handlers"
	"github.com/electronicart/marketing-agent/internal/infra/http/middleware"
	"github.com/electronicart/marketing-agent/internal/infra/integration/openai"
	"github.com/electronicart/marketing-agent/internal/infra/integration/sendgrid"
	"github.com/electronicart/marketing-agent/internal/infra/mail"
	"github.com/electronicart/marketing-agent/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)

	// 2. Draft generator: model-backed when a key is present, otherwise the
	// writer signals not-configured and intake uses fallback text.
	var chatClient ai.ChatClient
	generatorName := ""
	if cfg.OpenAIKey != "" {
		chatClient = openai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		generatorName = cfg.OpenAIModel
	}
	writer := ai.NewWriter(chatClient)

	// 3. Mail dispatcher: SendGrid wins over SMTP when both are configured.
	var dispatcher usecase.MailDispatcher
	dispatcherName := ""
	switch {
	case cfg.SendGridKey != "":
		dispatcher = sendgrid.NewClient(cfg.SendGridKey, cfg.EmailFrom, cfg.SendGridBaseURL)
		dispatcherName = "sendgrid"
	case cfg.SMTPHost != "":
		dispatcher = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
		dispatcherName = "smtp"
	}

	// 4. UseCases
	intakeUC := usecase.NewIntakeLeadUseCase(leadRepo, writer)
	approveUC := usecase.NewApproveLeadUseCase(leadRepo, dispatcher, cfg.ApproveSecret)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(intakeUC, leadRepo)
	approveHandler := handlers.NewApproveHandler(approveUC, dispatcherName)
	healthHandler := handlers.NewHealthHandler(db, generatorName, dispatcherName)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", handlers.SecretHeader},
	}))

	r.Get("/", handlers.Root)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/lead", leadHandler.Create)
	r.Get("/lead/{id}", leadHandler.Get)
	r.Get("/leads", leadHandler.List)
	r.Post("/lead/{id}/approve", approveHandler.Handle)

	addr := ":" + cfg.Port
	log.Printf("🔥 AI Marketing Agent działa na porcie %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
