package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/kidtask/internal/backup"
	"github.com/dukerupert/kidtask/internal/config"
	"github.com/dukerupert/kidtask/internal/database"
	"github.com/dukerupert/kidtask/internal/logging"
	"github.com/dukerupert/kidtask/internal/server"
	"github.com/dukerupert/kidtask/internal/service"
	"github.com/dukerupert/kidtask/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	svc := service.New(
		store.NewChildStore(db),
		store.NewGuardianStore(db),
		store.NewTaskStore(db),
		store.NewWishStore(db),
		logger.With("component", "service"),
	)

	backupMgr := backup.NewManager(backup.Config{
		Endpoint:   cfg.Backup.Endpoint,
		Bucket:     cfg.Backup.Bucket,
		Region:     cfg.Backup.Region,
		AccessKey:  cfg.Backup.AccessKey,
		SecretKey:  cfg.Backup.SecretKey,
		Passphrase: cfg.Backup.Passphrase,
	}, db, logger.With("component", "backup"))

	srv := server.New(svc, backupMgr, logger)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("kidtask listening", "port", cfg.Port, "backup_enabled", backupMgr.Enabled())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
