package main

import (
	"context"
	"fmt"
	"os"

	"praktikasud-backend/config"
	"praktikasud-backend/extractor"
	"praktikasud-backend/handlers"
	"praktikasud-backend/logger"
	"praktikasud-backend/provider"
	"praktikasud-backend/repository"
	"praktikasud-backend/service"
	"praktikasud-backend/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, warnings := config.Load()

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		JSON:       cfg.LogJSON,
		Output:     os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	})
	logger.SetDefault(log)
	for _, w := range warnings {
		log.Warn(w)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := logger.ContextWithLogger(context.Background(), log)

	// Initialize database
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.InitSchema(ctx); err != nil {
		log.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}
	log.Info("Database initialized", "dialect", db.Dialect())

	// Initialize storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "type", cfg.StorageType, "error", err)
		os.Exit(1)
	}
	log.Info("Storage initialized", "type", cfg.StorageType)

	// Initialize repositories
	activityRepo := repository.NewActivityRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// Initialize providers
	var openaiClient *provider.OpenAIClient
	if cfg.OpenAIAPIKey != "" {
		openaiClient, err = provider.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, provider.OpenAIWithVoice(cfg.TTSVoice))
		if err != nil {
			log.Error("Failed to initialize OpenAI", "error", err)
			os.Exit(1)
		}
	}

	completion, closeCompletion, err := initCompletion(ctx, cfg, openaiClient)
	if err != nil {
		log.Error("Failed to initialize completion provider", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	defer closeCompletion()

	enrichmentOpts := []service.EnrichmentServiceOption{service.EnrichmentWithLogger(log)}
	if knowledge, err := provider.NewPerplexityClient(cfg.PerplexityBaseURL, cfg.PerplexityAPIKey, provider.PerplexityWithLogger(log)); err != nil {
		log.Warn("Knowledge search disabled, answers use canned context", "error", err)
	} else {
		enrichmentOpts = append(enrichmentOpts, service.EnrichmentWithProvider(knowledge))
	}

	// Initialize services
	crmService := service.NewCRMService(
		service.CRMWithStore(activityRepo),
		service.CRMWithConfig(cfg),
		service.CRMWithLogger(log),
	)

	consultationService := service.NewConsultationService(
		service.ConsultationWithEnrichment(service.NewEnrichmentService(enrichmentOpts...)),
		service.ConsultationWithCompletion(service.NewCompletionService(
			service.CompletionWithProvider(completion),
			service.CompletionWithLogger(log),
		)),
		service.ConsultationWithActivity(crmService),
		service.ConsultationWithLogger(log),
	)

	var voiceService *service.VoiceService
	if openaiClient != nil {
		voiceService = service.NewVoiceService(
			service.VoiceWithTranscriber(openaiClient),
			service.VoiceWithSynthesizer(openaiClient),
			service.VoiceWithConsultation(consultationService),
			service.VoiceWithLogger(log),
		)
	} else {
		log.Warn("Voice disabled: OPENAI_API_KEY not set")
	}

	documentService := service.NewDocumentService(
		service.DocumentWithExtractor(extractor.New(
			extractor.WithMaxSize(cfg.MaxFileSize()),
			extractor.WithLogger(log),
		)),
		service.DocumentWithStorage(fileStorage),
		service.DocumentWithRepository(documentRepo),
		service.DocumentWithConsultation(consultationService),
		service.DocumentWithLogger(log),
	)

	// Initialize handlers
	consultationHandler := handlers.NewConsultationHandler(consultationService, voiceService)
	documentHandler := handlers.NewDocumentHandler(documentService, cfg.MaxFileSize())
	var adminHandler *handlers.AdminHandler
	if len(cfg.AdminIDs()) > 0 {
		adminHandler = handlers.NewAdminHandler(crmService, cfg.AdminKeyHash)
	} else {
		log.Warn("Admin panel disabled: ADMIN_IDS not set")
	}

	gin.SetMode(gin.ReleaseMode)
	r := handlers.NewRouter(log, consultationHandler, documentHandler, adminHandler)

	crmService.RecordEvent(ctx, "startup", fmt.Sprintf("provider=%s storage=%s", cfg.LLMProvider, cfg.StorageType), nil)
	log.Info("Server starting", "name", config.BotName, "port", cfg.Port, "provider", cfg.LLMProvider)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

// initCompletion selects the completion backend; the returned func releases it
func initCompletion(ctx context.Context, cfg *config.Config, openaiClient *provider.OpenAIClient) (service.CompletionProvider, func(), error) {
	switch cfg.LLMProvider {
	case config.LLMProviderGemini:
		client, err := provider.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	default:
		if openaiClient == nil {
			return nil, nil, provider.ErrMissingAPIKey
		}
		return openaiClient, func() {}, nil
	}
}
