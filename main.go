package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"GoRagServer/app/api"
	"GoRagServer/app/clients"
	"GoRagServer/app/configs"
	"GoRagServer/app/models"
	"GoRagServer/app/monitoring"
	"GoRagServer/app/rag"
	"GoRagServer/app/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()

	history, err := storage.NewSQLiteStorage(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("🚨 Failed to open storage: %v", err)
	}
	defer history.Close()

	model := models.NewLLMClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.EmbeddingModel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := rag.NewService(ctx, cfg, model, history)
	if err != nil {
		log.Fatalf("🚨 Failed to start RAG service: %v", err)
	}
	defer svc.Close()

	tracker := monitoring.NewTracker()
	server := api.NewServer(svc, tracker, history)

	registry := clients.NewRegistry()
	defer registry.CloseAll()
	if cfg.Discord.Enabled {
		discord, err := clients.NewDiscordClient(cfg.Discord.Token, cfg.Discord.ChannelID)
		if err != nil {
			log.Printf("⚠️ Discord client disabled: %v", err)
		} else {
			registry.Register(discord, svc)
		}
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Router(),
	}

	go func() {
		log.Printf("Serving on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("🚨 Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Shutdown error: %v", err)
	}
}

func loadConfig() *configs.Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := configs.LoadConfig(path)
	if err == nil {
		return cfg
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("No config file at %s, using defaults", path)
		return configs.Default()
	}
	log.Fatalf("🚨 Failed to load config %s: %v", path, err)
	return nil
}
