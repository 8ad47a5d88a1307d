package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/kktc-anket/server/audit"
	"github.com/kktc-anket/server/cliparse"
	"github.com/kktc-anket/server/db"
	"github.com/kktc-anket/server/engine"
	"github.com/kktc-anket/server/ledger"
	"github.com/kktc-anket/server/middleware"
	"github.com/kktc-anket/server/reputation"
	"github.com/kktc-anket/server/router"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Human-readable logs on a terminal, JSON otherwise
	if isatty.IsTerminal(os.Stderr.Fd()) {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Pick the vote store: SQL when a database is configured, otherwise the
	// in-memory store (demo mode, nothing survives a restart)
	var store ledger.Store
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, running with the in-memory store; votes are lost on restart")
		store = ledger.NewMemory(cfg.AttemptLogCap)
	} else {
		driver := "postgres"
		if cfg.DatabaseType == "sqlite" {
			driver = "sqlite"
		}
		dbConn, err := sql.Open(driver, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := dbConn.Ping(); err != nil {
			slog.Error("database ping failed", "error", err)
			os.Exit(1)
		}

		if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready")
		store = ledger.NewSQL(dbConn)
	}

	// IP reputation: advisory and fail-open; an empty URL disables it
	var checker reputation.Checker
	if cfg.ReputationURL == "" {
		slog.Warn("IP reputation check disabled")
		checker = reputation.Static{}
	} else {
		checker = reputation.NewIPAPI(cfg.ReputationURL, cfg.ReputationTimeout)
	}

	// Async attempt logger; closed after the server stops so pending entries drain
	auditor := audit.New(store, 256)
	defer auditor.Close()

	eng := engine.New(store, checker, auditor, cfg)

	// Create router
	mux := router.NewRouter(eng, store, auditor, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "poll_close", cfg.PollCloseTime, "test_mode", cfg.TestMode)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
