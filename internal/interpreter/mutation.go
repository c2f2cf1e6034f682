package interpreter

import "github.com/somnathbasteai/jeni-bot/internal/models"

// Intent names a category of command.
type Intent string

const (
	IntentAddSubscription Intent = "add_subscription"
	IntentAddEMI          Intent = "add_emi"
	IntentRecordIncome    Intent = "record_income"
	IntentAddProject      Intent = "add_project"
	IntentAddTask         Intent = "add_task"
	IntentRecordExpense   Intent = "record_expense"
	IntentLogHealth       Intent = "log_health"
	IntentAddGoal         Intent = "add_goal"
	IntentUpdateProfile   Intent = "update_profile"
	IntentAddSchedule     Intent = "add_schedule"
)

// Mutation is a typed, validated write request. The set of variants is closed;
// the Executor dispatches on the concrete type.
type Mutation interface {
	Intent() Intent
	mutation()
}

// AddSubscription creates a recurring service charge.
type AddSubscription struct {
	Name        string
	Amount      float64
	Cycle       models.BillingCycle
	Category    string
	Essential   bool
	AutoRenew   bool
	RenewalDate string
}

// AddEMI creates an active loan installment.
type AddEMI struct {
	Name            string
	Lender          string
	LoanType        string
	Amount          float64
	DueDay          int
	RemainingMonths int
	TotalMonths     int
	Principal       float64
	InterestRate    float64
	StartDate       string
	AutoDebit       bool
}

// RecordIncome creates a monthly income row.
type RecordIncome struct {
	Month           string
	Year            int
	Base            float64
	Overtime        float64
	Bonus           float64
	Freelance       float64
	Passive         float64
	PF              float64
	Tax             float64
	OtherDeductions float64
	Notes           string
}

// AddProject creates a personal project.
type AddProject struct {
	Name         string
	Description  string
	TechStack    string
	TargetLaunch string
	Progress     int
	Status       models.ProjectStatus
	Priority     models.Priority
}

// AddTask creates an open to-do item.
type AddTask struct {
	Title            string
	Description      string
	DueDate          *string
	Priority         models.Priority
	ProjectID        *string
	EstimatedMinutes int
}

// RecordExpense creates a one-off spending entry.
type RecordExpense struct {
	Amount        float64
	Category      string
	SubCategory   string
	Description   string
	PaymentMethod string
	Date          string
	Recurring     bool
}

// LogHealth merges the provided metrics into the day's health log.
type LogHealth struct {
	Date  string
	Patch models.HealthPatch
}

// AddGoal creates an in-progress goal.
type AddGoal struct {
	Title       string
	Description string
	Category    string
	TargetValue *float64
	Deadline    *string
}

// UpdateProfile merges the provided fields into the user's profile.
type UpdateProfile struct {
	Patch models.ProfilePatch
}

// AddScheduleItem creates a calendar entry.
type AddScheduleItem struct {
	Date            string
	Time            string
	Event           string
	Type            string
	DurationMinutes int
	Priority        models.Priority
	Recurring       bool
}

func (AddSubscription) Intent() Intent { return IntentAddSubscription }
func (AddEMI) Intent() Intent          { return IntentAddEMI }
func (RecordIncome) Intent() Intent    { return IntentRecordIncome }
func (AddProject) Intent() Intent      { return IntentAddProject }
func (AddTask) Intent() Intent         { return IntentAddTask }
func (RecordExpense) Intent() Intent   { return IntentRecordExpense }
func (LogHealth) Intent() Intent       { return IntentLogHealth }
func (AddGoal) Intent() Intent         { return IntentAddGoal }
func (UpdateProfile) Intent() Intent   { return IntentUpdateProfile }
func (AddScheduleItem) Intent() Intent { return IntentAddSchedule }

func (AddSubscription) mutation() {}
func (AddEMI) mutation()          {}
func (RecordIncome) mutation()    {}
func (AddProject) mutation()      {}
func (AddTask) mutation()         {}
func (RecordExpense) mutation()   {}
func (LogHealth) mutation()       {}
func (AddGoal) mutation()         {}
func (UpdateProfile) mutation()   {}
func (AddScheduleItem) mutation() {}
