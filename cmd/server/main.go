package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelar/wordflash/internal/api"
	"github.com/avelar/wordflash/internal/audio"
	"github.com/avelar/wordflash/internal/config"
	"github.com/avelar/wordflash/internal/db"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/maintenance"
	"github.com/avelar/wordflash/internal/repository/sqlite"
	"github.com/avelar/wordflash/internal/seed"
	"github.com/avelar/wordflash/internal/services"
	"github.com/avelar/wordflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("WordFlash Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("tts_base_url=%s", cfg.TTSBaseURL)
	log.Debug("audio_cache_bytes=%d", cfg.AudioCacheBytes)
	log.Debug("audio_worker_count=%d", cfg.AudioWorkerCount)
	log.Debug("audio_queue_size=%d", cfg.AudioQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	progressRepo := sqlite.NewProgressRepository(database)
	cardRepo := sqlite.NewCardRepository(database)
	deckRepo := sqlite.NewDeckRepository(database)
	groupRepo := sqlite.NewGroupRepository(database)
	sessionRepo := sqlite.NewSessionRepository(database)
	statsRepo := sqlite.NewStatsRepository(database)

	// Audio stack
	audioPool := worker.NewPool(cfg.AudioWorkerCount, cfg.AudioQueueSize)
	audioService := audio.NewService(
		audio.NewTTSClient(cfg.TTSBaseURL),
		audio.NewCache(cfg.AudioCacheBytes),
		audioPool,
	)

	// Services
	progressService := services.NewProgressService(progressRepo, statsRepo)
	deckService := services.NewDeckService(deckRepo, cardRepo)
	groupService := services.NewGroupService(groupRepo)
	importService := services.NewImportService(deckService)
	statsService := services.NewStatsService(progressService, statsRepo)
	sessionService := services.NewSessionService(deckRepo, cardRepo, groupRepo, sessionRepo, progressService, audioService)

	ctx, cancel := context.WithCancel(context.Background())
	audioPool.Start(ctx)

	// Install built-in content and recover any persisted session.
	if err := seed.Apply(ctx, deckService, groupService); err != nil {
		log.Error("failed to seed built-in content: %v", err)
		os.Exit(1)
	}
	if err := sessionService.ResumeFromStore(ctx); err != nil {
		log.Warn("could not restore previous study session: %v", err)
	}

	scheduler := maintenance.New(progressService, audioService, cfg.AudioPruneBytes)
	scheduler.Start()

	srv := &api.Server{
		DB:              database,
		DeckService:     deckService,
		SessionService:  sessionService,
		ProgressService: progressService,
		StatsService:    statsService,
		GroupService:    groupService,
		ImportService:   importService,
		AudioService:    audioService,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping maintenance scheduler")
	scheduler.Stop()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("waiting for audio pool")
	audioPool.Stop()

	log.Info("===========================================")
	log.Info("WordFlash Server Stopped")
	log.Info("===========================================")
}
