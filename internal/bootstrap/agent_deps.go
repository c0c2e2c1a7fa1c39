package bootstrap

import (
	"context"
	"time"

	"agent_server/adapter/in/worker"
	"agent_server/adapter/out/persistence"
	"agent_server/config"
	"agent_server/core/agent/llm"
	"agent_server/core/port/in"
	"agent_server/core/port/out"
	"agent_server/core/service"
	"agent_server/core/service/chat"
	"agent_server/core/service/enrich"
	"agent_server/core/service/mailbox"
	"agent_server/infra/database"

	"github.com/rs/zerolog"
)

// Dependencies wires the persistence, client, and service layers.
type Dependencies struct {
	Config *config.Config
	DB     *database.DB

	// Repositories
	MailboxRepo out.MailboxRepository
	PromptRepo  out.PromptRepository
	DraftRepo   out.DraftRepository

	// Outbound clients
	Completer out.Completer

	// Services
	MailboxService in.MailboxService
	PromptService  in.PromptService
	EnrichService  in.EnrichmentService
	ChatService    in.ChatService

	// Background workers
	EnrichPool *worker.EnrichPool
}

// NewDependencies builds the full dependency graph. The returned
// cleanup function stops the worker pool and closes the database.
func NewDependencies(cfg *config.Config, log zerolog.Logger) (*Dependencies, func(), error) {
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Migrate(migrateCtx); err != nil {
		db.Close()
		return nil, nil, err
	}

	mailboxRepo := persistence.NewMailboxAdapter(db.DB)
	promptRepo := persistence.NewPromptAdapter(db.DB)
	draftRepo := persistence.NewDraftAdapter(db.DB)

	if err := promptRepo.SeedDefaults(migrateCtx); err != nil {
		db.Close()
		return nil, nil, err
	}

	completer := llm.NewClient(llm.ClientConfig{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		Model:           cfg.LLMModel,
		MaxTokens:       cfg.LLMMaxTokens,
		Temperature:     cfg.LLMTemperature,
		Timeout:         cfg.LLMTimeout,
		MaxContentChars: cfg.LLMMaxContentChars,
	}, log)

	enrichService := enrich.NewService(mailboxRepo, promptRepo, draftRepo, completer, enrich.Config{
		MaxAttempts:  cfg.LLMMaxRetries,
		RetryBackoff: cfg.LLMRetryBackoff,
	}, log)

	mailboxService := mailbox.NewService(mailboxRepo, draftRepo, cfg.SeedInboxPath, log)
	promptService := service.NewPromptService(promptRepo)
	chatService := chat.NewService(mailboxRepo, completer, cfg.ChatContextLimit, log)

	enrichPool := worker.NewEnrichPool(enrichService, &worker.PoolConfig{
		Workers:    cfg.EnrichWorkers,
		QueueSize:  cfg.EnrichQueueSize,
		JobTimeout: 3 * time.Minute,
	}, log)

	if err := enrichPool.Start(); err != nil {
		db.Close()
		return nil, nil, err
	}

	deps := &Dependencies{
		Config:         cfg,
		DB:             db,
		MailboxRepo:    mailboxRepo,
		PromptRepo:     promptRepo,
		DraftRepo:      draftRepo,
		Completer:      completer,
		MailboxService: mailboxService,
		PromptService:  promptService,
		EnrichService:  enrichService,
		ChatService:    chatService,
		EnrichPool:     enrichPool,
	}

	cleanup := func() {
		enrichPool.Stop()
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing database")
		}
	}

	return deps, cleanup, nil
}
