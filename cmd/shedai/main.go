package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"shedai/internal/app"
	"shedai/internal/clipper"
	"shedai/internal/config"
	"shedai/internal/database"
	"shedai/internal/llm"
	"shedai/internal/metrics"
	"shedai/internal/planner"
	"shedai/internal/store"
)

const cliUserID = "default_user"

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	groqClient := llm.NewGroqClient(cfg)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	patternRepo := store.NewPatternRepository(db.SQL)
	taskRepo := store.NewTaskRepository(db.SQL)
	appointmentRepo := store.NewAppointmentRepository(db.SQL)
	planRepo := store.NewPlanRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	scheduler := planner.NewScheduler(geminiClient)
	clip := clipper.NewClipper(groqClient)

	application := app.NewApp(
		cfg,
		db,
		clip,
		scheduler,
		metricsStore,
		patternRepo,
		taskRepo,
		appointmentRepo,
		planRepo,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "submit":
		text := strings.Join(os.Args[2:], " ")
		if text == "" {
			stdin, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatalf("Failed to read stdin: %v", err)
			}
			text = string(stdin)
		}
		if err := application.SubmitText(ctx, cliUserID, text, time.Now()); err != nil {
			log.Fatalf("Submit failed: %v", err)
		}
	case "plan":
		request := strings.Join(os.Args[2:], " ")
		if err := application.GenerateWeeklyPlan(ctx, cliUserID, request, time.Now()); err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
	case "mix":
		if err := application.ShowMix(ctx, cliUserID); err != nil {
			log.Fatalf("Mix failed: %v", err)
		}
	case "usage":
		usageCmd := flag.NewFlagSet("usage", flag.ExitOnError)
		days := usageCmd.Int("days", 7, "Show usage for the last N days")
		usageCmd.Parse(os.Args[2:])

		if err := application.ShowUsage(*days); err != nil {
			log.Fatalf("Usage failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: shedai <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  submit [text]      Parse and store lifestyle patterns, a task, or an appointment")
	fmt.Println("  plan [request]     Generate next week's schedule")
	fmt.Println("  mix                Show the activity mix of the latest schedule")
	fmt.Println("  usage              Show recent LLM token usage")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
