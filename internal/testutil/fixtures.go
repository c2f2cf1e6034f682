package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/somnathbasteai/jeni-bot/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email and the
// password "password123".
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates a profile with the given display name.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID, name string) *models.Profile {
	t.Helper()

	profile := &models.Profile{UserID: userID, Name: name, Location: "Pune", Timezone: "Asia/Kolkata"}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestIncome creates a salary row with a 90,000 base and 3,800 of deductions.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID string) *models.Income {
	t.Helper()

	income := &models.Income{
		Owned:         models.Owned{UserID: userID},
		Month:         "October",
		Year:          2026,
		BaseSalary:    90000,
		DeductionsPF:  1800,
		DeductionsTax: 2000,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestEMI creates an active EMI with the given monthly amount.
func CreateTestEMI(t *testing.T, db *gorm.DB, userID string, amount float64) *models.EMI {
	t.Helper()

	emi := &models.EMI{
		Owned:           models.Owned{UserID: userID},
		Name:            fmt.Sprintf("Loan %d", nextID()),
		Lender:          "HDFC",
		EMIAmount:       amount,
		DueDay:          5,
		TotalMonths:     24,
		RemainingMonths: 18,
		Status:          models.EMIStatusActive,
	}
	if err := db.Create(emi).Error; err != nil {
		t.Fatalf("failed to create test emi: %v", err)
	}
	return emi
}

// CreateTestSubscription creates an active monthly subscription.
func CreateTestSubscription(t *testing.T, db *gorm.DB, userID, name string, amount float64) *models.Subscription {
	t.Helper()

	sub := &models.Subscription{
		Owned:        models.Owned{UserID: userID},
		Name:         name,
		Amount:       amount,
		BillingCycle: models.BillingCycleMonthly,
		Category:     "entertainment",
		Status:       models.SubscriptionStatusActive,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subscription: %v", err)
	}
	return sub
}

// CreateTestExpense creates an expense on the given date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, date string, amount float64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Owned:    models.Owned{UserID: userID},
		Amount:   amount,
		Category: "food",
		Date:     date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestTask creates an open task; an empty dueDate leaves it undated.
func CreateTestTask(t *testing.T, db *gorm.DB, userID, title, dueDate string) *models.Task {
	t.Helper()

	task := &models.Task{
		Owned:    models.Owned{UserID: userID},
		Title:    title,
		Priority: models.PriorityMedium,
	}
	if dueDate != "" {
		task.DueDate = &dueDate
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}
