package testutil_test

import (
	"testing"

	"github.com/somnathbasteai/jeni-bot/internal/errors"
	"github.com/somnathbasteai/jeni-bot/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "profiles", "income", "emis", "subscriptions", "expenses",
		"projects", "tasks", "goals", "health_logs", "schedule", "chat_history", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	income := testutil.CreateTestIncome(t, db, user.ID)
	if income.Net() != 86200 {
		t.Errorf("expected net 86200, got %v", income.Net())
	}

	emi := testutil.CreateTestEMI(t, db, user.ID, 4500)
	if emi.UserID != user.ID || emi.EMIAmount != 4500 {
		t.Errorf("unexpected emi %+v", emi)
	}

	task := testutil.CreateTestTask(t, db, user.ID, "Ship it", "")
	if task.DueDate != nil {
		t.Errorf("expected undated task, got %v", *task.DueDate)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrSessionNotFound, "custom message")
	testutil.AssertAppError(t, err, "SESSION_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertContainsAll(t *testing.T) {
	testutil.AssertContainsAll(t, "Net: ₹86,200/month", "₹86,200", "/month")
}
