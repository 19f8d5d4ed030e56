package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"zephvault-backend/internal/assistant"
	"zephvault-backend/internal/documents"
	"zephvault-backend/internal/llm"
	openai "zephvault-backend/internal/llm/openai"
	"zephvault-backend/internal/notices"
	"zephvault-backend/internal/properties"
	"zephvault-backend/internal/shared/config"
	"zephvault-backend/internal/shared/server"
	"zephvault-backend/internal/shared/storage/db"
	"zephvault-backend/internal/shared/storage/object"
	localstore "zephvault-backend/internal/shared/storage/object/local"
	s3store "zephvault-backend/internal/shared/storage/object/s3"
	"zephvault-backend/internal/tenants"
	"zephvault-backend/internal/units"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	DocumentsRepo documents.Repo
	TenantsRepo   tenants.Repo
	LogsRepo      notices.LogRepo

	DocumentsService  *documents.Service
	AssistantService  *assistant.Service
	PropertiesService *properties.Service
	UnitsService      *units.Service
	TenantsService    *tenants.Service
	NoticesService    *notices.Service

	ReminderRunner    *notices.Runner
	ReminderScheduler *notices.Scheduler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    buildLLM(cfg),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     cfg,
		DB:         sqlDB,
		Documents:  documents.NewHandler(app.DocumentsService),
		Assistant:  assistant.NewHandler(app.AssistantService),
		Properties: properties.NewHandler(app.PropertiesService),
		Units:      units.NewHandler(app.UnitsService),
		Tenants:    tenants.NewHandler(app.TenantsService),
		Notices:    notices.NewHandler(app.NoticesService, app.ReminderRunner, cfg.CronSecret),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) llm.Client {
	if cfg.LLMProvider != "openai" {
		return llm.PlaceholderClient{}
	}
	client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
	if err != nil {
		// Keep serving; AI endpoints report the missing key per request.
		log.Printf("bootstrap: openai client unavailable: %v", err)
		return llm.UnconfiguredClient{}
	}
	return client
}

func buildServices(app *App) {
	var (
		docRepo      documents.Repo
		propertyRepo properties.Repo
		unitRepo     units.Repo
		tenantRepo   tenants.Repo
		logRepo      notices.LogRepo
	)
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		propertyRepo = &properties.PGRepo{DB: app.DB}
		unitRepo = &units.PGRepo{DB: app.DB}
		tenantRepo = &tenants.PGRepo{DB: app.DB}
		logRepo = &notices.PGLogRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		propertyRepo = properties.NewMemoryRepo()
		unitRepo = units.NewMemoryRepo()
		tenantRepo = tenants.NewMemoryRepo()
		logRepo = notices.NewMemoryLogRepo()
	}

	docSvc := &documents.Service{
		Store:         app.Store,
		Repo:          docRepo,
		PublicBaseURL: app.Config.PublicStorageBaseURL,
	}

	noticeSvc := &notices.Service{
		Tenants: tenantRepo,
		Logs:    logRepo,
		Composer: notices.Composer{
			FirmName:  app.Config.FirmName,
			FirmEmail: app.Config.FirmEmail,
		},
		Sender: notices.LogSender{},
	}

	app.DocumentsRepo = docRepo
	app.TenantsRepo = tenantRepo
	app.LogsRepo = logRepo
	app.DocumentsService = docSvc
	app.AssistantService = &assistant.Service{
		Docs:     docSvc,
		Resolver: documents.ContentResolver{Store: app.Store},
		LLM:      app.LLM,
	}
	app.PropertiesService = &properties.Service{Repo: propertyRepo}
	app.UnitsService = &units.Service{Repo: unitRepo}
	app.TenantsService = &tenants.Service{Repo: tenantRepo}
	app.NoticesService = noticeSvc
	app.ReminderRunner = notices.NewRunner(tenantRepo, noticeSvc, sendInterval(app.Config.ReminderSendInterval))
	app.ReminderScheduler = notices.NewScheduler(app.ReminderRunner, app.Config.ReminderCron)
}

func sendInterval(raw string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
