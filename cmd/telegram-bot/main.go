package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shedai/internal/clipper"
	"shedai/internal/config"
	"shedai/internal/database"
	"shedai/internal/llm"
	"shedai/internal/metrics"
	"shedai/internal/planner"
	"shedai/internal/store"
	"shedai/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize Infrastructure (LLMs)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	groqClient := llm.NewGroqClient(cfg)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 3. Initialize repositories
	patternRepo := store.NewPatternRepository(db.SQL)
	taskRepo := store.NewTaskRepository(db.SQL)
	appointmentRepo := store.NewAppointmentRepository(db.SQL)
	planRepo := store.NewPlanRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// 4. Initialize Services
	scheduler := planner.NewScheduler(geminiClient)
	clip := clipper.NewClipper(groqClient)

	// 5. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, scheduler, clip, metricsStore, patternRepo, taskRepo, appointmentRepo, planRepo)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 6. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
