package main

import (
	"go.uber.org/zap"

	"notes-service/internal/handler"
	"notes-service/internal/repository"
	"notes-service/internal/service"
	"notes-service/pkg/config"
	"notes-service/pkg/database"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/logger"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("notes-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting notes service...", zap.String("environment", cfg.Server.Env))

	// Initialize storage
	var (
		tenantRepo  repository.TenantRepository
		userRepo    repository.UserRepository
		provisioner repository.ProvisionRepository
		noteRepo    repository.NoteRepository
	)
	if cfg.Store == "memory" {
		store := repository.NewMemoryStore()
		tenantRepo = store.Tenants()
		userRepo = store.Users()
		provisioner = store.Provisioner()
		noteRepo = store.Notes()
		log.Info("Using in-memory store")
	} else {
		db, err := database.Initialize(database.DBConfig{
			DSN:             cfg.DB.GetDSN(),
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
			LogLevel:        cfg.DB.LogLevel,
		})
		if err != nil {
			log.Fatal("Failed to initialize database", zap.Error(err))
		}
		pgUsers := repository.NewPostgresUserRepository(db)
		tenantRepo = repository.NewPostgresTenantRepository(db)
		userRepo = pgUsers
		provisioner = pgUsers
		noteRepo = repository.NewPostgresNoteRepository(db)
		log.Info("Database connection established")
	}

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})

	// Wire services and handlers
	authService := service.NewAuthService(userRepo, tenantRepo, provisioner, jwtUtil, cfg.Quota.DefaultNoteLimit)
	tenantService := service.NewTenantService(tenantRepo)
	noteService := service.NewNoteService(noteRepo)

	e := handler.NewRouter(
		jwtUtil,
		handler.NewAuthHandler(authService),
		handler.NewNoteHandler(noteService),
		handler.NewTenantHandler(tenantService),
	)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
