// Package lifecontext builds a point-in-time view of everything a user has
// recorded and renders it for the completion service.
package lifecontext

import (
	"github.com/somnathbasteai/jeni-bot/internal/models"
)

// Finance groups the money-related parts of a snapshot with their totals.
type Finance struct {
	LatestIncome       *models.Income        `json:"latest_income"`
	NetIncome          float64               `json:"net_income"`
	EMIs               []models.EMI          `json:"active_emis"`
	TotalEMI           float64               `json:"total_emi"`
	Subscriptions      []models.Subscription `json:"active_subscriptions"`
	TotalSubscriptions float64               `json:"total_subscriptions"`
	Expenses           []models.Expense      `json:"month_expenses"`
	ExpenseTotal       float64               `json:"month_expense_total"`
}

// FreeCash is net income minus the recurring loads.
func (f Finance) FreeCash() float64 {
	return f.NetIncome - f.TotalEMI - f.TotalSubscriptions
}

// ChatLine is one turn of the recent conversation excerpt.
type ChatLine struct {
	Role    models.ChatRole `json:"role"`
	Message string          `json:"message"`
}

// Snapshot is everything known about one user at one instant. It is built
// fresh per request and must not be modified after Build returns.
type Snapshot struct {
	UserID string `json:"user_id"`
	// CurrentTime is rendered once, in the configured timezone, when the
	// snapshot is built.
	CurrentTime string `json:"current_time"`
	Today       string `json:"today"`

	Profile    *models.Profile       `json:"profile"`
	Finance    Finance               `json:"finance"`
	Projects   []models.Project      `json:"projects"`
	Tasks      []models.Task         `json:"pending_tasks"`
	Goals      []models.Goal         `json:"goals"`
	Schedule   []models.ScheduleItem `json:"today_schedule"`
	Health     *models.HealthLog     `json:"today_health"`
	RecentChat []ChatLine            `json:"recent_chat"`
}

// Name returns the profile name, or def when unknown.
func (s *Snapshot) Name(def string) string {
	if s.Profile != nil && s.Profile.Name != "" {
		return s.Profile.Name
	}
	return def
}

// NetIncome is earnings minus deductions of inc, or 0 when inc is nil.
func NetIncome(inc *models.Income) float64 {
	if inc == nil {
		return 0
	}
	return inc.Net()
}

// TotalEMI sums active installment amounts.
func TotalEMI(emis []models.EMI) float64 {
	var total float64
	for _, e := range emis {
		if e.Status == models.EMIStatusActive || e.Status == "" {
			total += e.EMIAmount
		}
	}
	return total
}

// TotalSubscriptions sums active subscription amounts as billed.
func TotalSubscriptions(subs []models.Subscription) float64 {
	var total float64
	for _, s := range subs {
		if s.Status == models.SubscriptionStatusActive || s.Status == "" {
			total += s.Amount
		}
	}
	return total
}

// TotalExpenses sums expense amounts.
func TotalExpenses(exps []models.Expense) float64 {
	var total float64
	for _, e := range exps {
		total += e.Amount
	}
	return total
}
