package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ScreenerBot/internal/broker"
	"ScreenerBot/internal/config"
	"ScreenerBot/internal/notifier"
	"ScreenerBot/internal/recorder"
	"ScreenerBot/internal/scheduler"
	"ScreenerBot/internal/sheet"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ScreenerBot starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init sheet source
	src, err := sheet.NewGoogleSource(cfg.Sheets.CredentialsJSON, cfg.Sheets.SpreadsheetID, cfg.Sheets.Worksheet, cfg.Proxy)
	if err != nil {
		log.Fatalf("[FATAL] init sheet source: %v", err)
	}
	log.Printf("[INFO] sheet source: %s (worksheet %q)", src.Name(), cfg.Sheets.Worksheet)

	// Init broker
	brk := broker.NewAlpacaBroker(cfg.Alpaca.BaseURL, cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Proxy)
	log.Printf("[INFO] broker: %s (%s)", brk.Name(), brk.BaseURL)

	// Init notifier
	var nt notifier.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		nt = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		log.Println("[INFO] telegram notifier enabled")
	} else {
		nt = notifier.NewNoopNotifier()
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, src, brk, nt, rec, cfg.Trading.MinNotional)
	if err := sched.Register(cfg.Schedule.RunCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing screener task now")
		go sched.RunNow()
	}

	log.Println("[INFO] ScreenerBot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] ScreenerBot stopped")
}
