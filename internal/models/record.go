package models

// RecordKind names one of the closed set of user-owned collections.
type RecordKind string

const (
	KindProfile      RecordKind = "profile"
	KindIncome       RecordKind = "income"
	KindEMI          RecordKind = "emi"
	KindSubscription RecordKind = "subscription"
	KindExpense      RecordKind = "expense"
	KindProject      RecordKind = "project"
	KindTask         RecordKind = "task"
	KindGoal         RecordKind = "goal"
	KindHealthLog    RecordKind = "health_log"
	KindSchedule     RecordKind = "schedule"
)

// Record is a user-owned row that the mutation executor can write. The set of
// implementations is closed: sealed is unexported.
type Record interface {
	Kind() RecordKind
	RecordID() string
	SetOwner(userID string)
	sealed()
}

// All returns every model, in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Income{},
		&EMI{},
		&Subscription{},
		&Expense{},
		&Project{},
		&Task{},
		&Goal{},
		&HealthLog{},
		&ScheduleItem{},
		&ChatMessage{},
		&AuditLog{},
	}
}
