package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/somnathbasteai/jeni-bot/internal/completion"
	"github.com/somnathbasteai/jeni-bot/internal/config"
	"github.com/somnathbasteai/jeni-bot/internal/database"
	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
	"github.com/somnathbasteai/jeni-bot/internal/services"
)

// app is the wiring one command needs.
type app struct {
	aggregator *lifecontext.Aggregator
	chat       services.ChatServicer
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if sqlitePath != "" {
		cfg.DB = config.DatabaseConfig{Driver: database.DriverSQLite, Path: sqlitePath}
	}
	return cfg, nil
}

// withApp opens the store, brings the schema up to date and runs fn.
func withApp(fn func(*app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr, err := database.NewManager(cfg.DB)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.RunMigrations(); err != nil {
		return err
	}

	completer, err := completion.New(cfg.Completion)
	if err != nil {
		return fmt.Errorf("completion client: %w", err)
	}

	loc := cfg.Location()
	db := mgr.DB()
	records := services.NewRecordService(db, cfg.Timezone)
	entries := services.NewEntryService(records, services.NewAuditService(db))
	aggregator := lifecontext.NewAggregator(records, loc, nil)

	return fn(&app{
		aggregator: aggregator,
		chat: services.NewChatService(records, entries,
			interpreter.NewDefaultRouter(loc, nil), aggregator, completer,
			services.WithAuditSource(services.SourceCLI)),
	})
}

func joinArgs(args []string) (string, error) {
	msg := strings.TrimSpace(strings.Join(args, " "))
	if msg == "" {
		return "", fmt.Errorf("message is required")
	}
	return msg, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
