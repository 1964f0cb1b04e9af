package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"thriftbot-go/internal/config"
	"thriftbot-go/internal/database"
	"thriftbot-go/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	mux := http.NewServeMux()
	apiHandler := NewAPIHandler(log, db)

	mux.HandleFunc("/api/items", apiHandler.ItemsHandler)
	mux.HandleFunc("/api/statistics", apiHandler.StatisticsHandler)

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/templates/index.html")
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting dashboard server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("Dashboard server failed", zap.Error(err))
	}
}
