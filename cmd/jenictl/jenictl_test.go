package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/somnathbasteai/jeni-bot/internal/config"
	"github.com/somnathbasteai/jeni-bot/internal/database"
	"github.com/somnathbasteai/jeni-bot/internal/logger"
	"github.com/somnathbasteai/jeni-bot/internal/models"
	"github.com/somnathbasteai/jeni-bot/internal/services"
)

func init() {
	logger.Init("test")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("COMPLETION_PROVIDER", "groq")
	t.Setenv("COMPLETION_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("TIMEZONE", "Asia/Kolkata")

	sqlitePath, userID, chatSession = "", "", ""
	resetChanged(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetChanged clears flag state left over from earlier executions so
// required-flag checks see a fresh command line.
func resetChanged(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetChanged(sub)
	}
}

// seedUser creates a store at a temp path with one registered user.
func seedUser(t *testing.T) (string, *models.User) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jeni.db")
	mgr, err := database.NewManager(config.DatabaseConfig{Driver: database.DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer mgr.Close()
	if err := mgr.RunMigrations(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	user, err := services.NewUserService(mgr.DB()).CreateUser("cli@example.com", "password123", "Rahul")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return path, user
}

func TestRootHelp(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	for _, sub := range []string{"route", "chat", "snapshot", "prompt"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q", sub)
		}
	}
}

func TestRouteCommand(t *testing.T) {
	t.Run("command", func(t *testing.T) {
		out, err := execute(t, "route", "spent", "500", "on", "food")
		if err != nil {
			t.Fatalf("route: %v", err)
		}
		var res map[string]interface{}
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("invalid JSON %q: %v", out, err)
		}
		if res["intent"] != "record_expense" || res["matched"] != true || res["type"] != "interpreter.RecordExpense" {
			t.Errorf("unexpected route result %v", res)
		}
		mutation := res["mutation"].(map[string]interface{})
		if mutation["Amount"] != float64(500) || mutation["Category"] != "food" {
			t.Errorf("unexpected mutation %v", mutation)
		}
	})

	t.Run("hint", func(t *testing.T) {
		out, err := execute(t, "route", "add sub netflix")
		if err != nil {
			t.Fatalf("route: %v", err)
		}
		if !strings.Contains(out, `"hint": "Usage: add sub`) || strings.Contains(out, `"mutation"`) {
			t.Errorf("expected usage hint without mutation, got %s", out)
		}
	})

	t.Run("unmatched", func(t *testing.T) {
		out, err := execute(t, "route", "how am I doing?")
		if err != nil {
			t.Fatalf("route: %v", err)
		}
		if !strings.Contains(out, `"matched": false`) {
			t.Errorf("expected unmatched, got %s", out)
		}
	})
}

func TestChatCommand(t *testing.T) {
	path, user := seedUser(t)

	out, err := execute(t, "--sqlite", path, "chat", "--user", user.ID, "--session", "cli-1", "spent 250 on uber")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(out, "Expense logged") {
		t.Errorf("unexpected reply %q", out)
	}

	mgr, err := database.NewManager(config.DatabaseConfig{Driver: database.DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer mgr.Close()

	var audit models.AuditLog
	if err := mgr.DB().Where("user_id = ?", user.ID).First(&audit).Error; err != nil {
		t.Fatalf("audit entry missing: %v", err)
	}
	if audit.Source != services.SourceCLI {
		t.Errorf("expected cli source, got %s", audit.Source)
	}
	var turns int64
	mgr.DB().Model(&models.ChatMessage{}).Where("session_id = ?", "cli-1").Count(&turns)
	if turns != 2 {
		t.Errorf("expected 2 chat rows, got %d", turns)
	}
}

func TestSnapshotAndPromptCommands(t *testing.T) {
	path, user := seedUser(t)

	if _, err := execute(t, "--sqlite", path, "chat", "--user", user.ID, "my name is rahul sharma"); err != nil {
		t.Fatalf("chat: %v", err)
	}

	out, err := execute(t, "--sqlite", path, "snapshot", "--user", user.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var snap map[string]interface{}
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if snap["user_id"] != user.ID {
		t.Errorf("unexpected user %v", snap["user_id"])
	}

	out, err = execute(t, "--sqlite", path, "prompt", "--user", user.ID)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !strings.Contains(out, "RAHUL SHARMA'S CURRENT LIFE STATE") {
		t.Errorf("expected compiled prompt for the profile name, got %q", out)
	}
}

func TestUserFlagRequired(t *testing.T) {
	if _, err := execute(t, "snapshot"); err == nil {
		t.Fatal("expected error without --user")
	}
}
