package lifecontext

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/quick"
	"time"

	"github.com/somnathbasteai/jeni-bot/internal/models"
)

var errFetch = errors.New("connection reset")

// stubSource serves fixed data; any collection named in fail returns errFetch.
type stubSource struct {
	fail  map[string]bool
	calls atomic.Int32

	profile  *models.Profile
	income   *models.Income
	emis     []models.EMI
	subs     []models.Subscription
	expenses []models.Expense
	projects []models.Project
	tasks    []models.Task
	goals    []models.Goal
	schedule []models.ScheduleItem
	health   *models.HealthLog
	chat     []models.ChatMessage

	gotMonthStart string
	gotToday      string
}

func (s *stubSource) err(name string) error {
	s.calls.Add(1)
	if s.fail[name] {
		return errFetch
	}
	return nil
}

func (s *stubSource) Profile(context.Context, string) (*models.Profile, error) {
	return s.profile, s.err("profiles")
}
func (s *stubSource) LatestIncome(context.Context, string) (*models.Income, error) {
	if err := s.err("income"); err != nil {
		return nil, err
	}
	return s.income, nil
}
func (s *stubSource) ActiveEMIs(context.Context, string) ([]models.EMI, error) {
	if err := s.err("emis"); err != nil {
		return nil, err
	}
	return s.emis, nil
}
func (s *stubSource) ActiveSubscriptions(context.Context, string) ([]models.Subscription, error) {
	return s.subs, s.err("subscriptions")
}
func (s *stubSource) ExpensesSince(_ context.Context, _ string, from string) ([]models.Expense, error) {
	s.gotMonthStart = from
	return s.expenses, s.err("expenses")
}
func (s *stubSource) Projects(context.Context, string) ([]models.Project, error) {
	return s.projects, s.err("projects")
}
func (s *stubSource) OpenTasks(context.Context, string, int) ([]models.Task, error) {
	return s.tasks, s.err("tasks")
}
func (s *stubSource) OpenGoals(context.Context, string) ([]models.Goal, error) {
	return s.goals, s.err("goals")
}
func (s *stubSource) ScheduleFor(_ context.Context, _ string, date string) ([]models.ScheduleItem, error) {
	s.gotToday = date
	return s.schedule, s.err("schedule")
}
func (s *stubSource) HealthLogFor(context.Context, string, string) (*models.HealthLog, error) {
	return s.health, s.err("health_logs")
}
func (s *stubSource) RecentChat(context.Context, string, int) ([]models.ChatMessage, error) {
	return s.chat, s.err("chat_history")
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC) }

func fullSource() *stubSource {
	return &stubSource{
		profile: &models.Profile{Name: "Rahul", Location: "Pune"},
		income:  &models.Income{Month: "October", Year: 2026, BaseSalary: 85000, Overtime: 5000, DeductionsPF: 1800, DeductionsTax: 2000},
		emis: []models.EMI{
			{Name: "Bike", EMIAmount: 4500, DueDay: 5, RemainingMonths: 18, Lender: "HDFC", Status: models.EMIStatusActive},
			{Name: "Phone", EMIAmount: 2000, DueDay: 10, RemainingMonths: 6, Status: models.EMIStatusActive},
		},
		subs: []models.Subscription{
			{Name: "Netflix", Amount: 649, BillingCycle: models.BillingCycleMonthly, Status: models.SubscriptionStatusActive},
			{Name: "iCloud", Amount: 75, BillingCycle: models.BillingCycleMonthly, IsEssential: true, Status: models.SubscriptionStatusActive},
		},
		expenses: []models.Expense{{Amount: 500, Category: "food"}, {Amount: 1200.5, Category: "groceries"}},
		projects: []models.Project{
			{Name: "Zeta", Priority: models.PriorityLow, Progress: 10, Status: models.ProjectStatusPlanned},
			{Name: "DigiKaragir", Priority: models.PriorityHigh, Progress: 65, Status: models.ProjectStatusBuilding},
			{Name: "Alpha", Priority: models.PriorityHigh, Progress: 5, Status: models.ProjectStatusActive},
		},
		chat: []models.ChatMessage{
			{Role: models.ChatRoleAssistant, Message: "second"},
			{Role: models.ChatRoleUser, Message: "first"},
		},
	}
}

func TestBuild_DerivesTotals(t *testing.T) {
	src := fullSource()
	snap := NewAggregator(src, time.UTC, fixedNow).Build(context.Background(), "u1")

	if snap.Finance.NetIncome != 86200 {
		t.Errorf("expected net 86200, got %g", snap.Finance.NetIncome)
	}
	if snap.Finance.TotalEMI != 6500 {
		t.Errorf("expected EMI load 6500, got %g", snap.Finance.TotalEMI)
	}
	if snap.Finance.TotalSubscriptions != 724 {
		t.Errorf("expected subscription load 724, got %g", snap.Finance.TotalSubscriptions)
	}
	if snap.Finance.ExpenseTotal != 1700.5 {
		t.Errorf("expected expense total 1700.5, got %g", snap.Finance.ExpenseTotal)
	}
	if snap.Finance.FreeCash() != 86200-6500-724 {
		t.Errorf("unexpected free cash %g", snap.Finance.FreeCash())
	}
	if src.calls.Load() != 11 {
		t.Errorf("expected 11 fetches, got %d", src.calls.Load())
	}
}

func TestBuild_DatesUseLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	src := fullSource()
	// 20:00 UTC on Oct 31 is already Nov 1 in India.
	now := func() time.Time { return time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC) }
	snap := NewAggregator(src, ist, now).Build(context.Background(), "u1")

	if snap.Today != "2026-11-01" || src.gotToday != "2026-11-01" {
		t.Errorf("expected today 2026-11-01, got %s / %s", snap.Today, src.gotToday)
	}
	if src.gotMonthStart != "2026-11-01" {
		t.Errorf("expected month start 2026-11-01, got %s", src.gotMonthStart)
	}
	if snap.CurrentTime != "01/11/2026, 1:30:00 am" {
		t.Errorf("unexpected current time %q", snap.CurrentTime)
	}
}

func TestBuild_OrdersProjectsAndChat(t *testing.T) {
	snap := NewAggregator(fullSource(), time.UTC, fixedNow).Build(context.Background(), "u1")

	want := []string{"Alpha", "DigiKaragir", "Zeta"}
	for i, p := range snap.Projects {
		if p.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
	if len(snap.RecentChat) != 2 || snap.RecentChat[0].Message != "first" {
		t.Errorf("expected oldest-first chat, got %+v", snap.RecentChat)
	}
}

func TestBuild_PartialFailure(t *testing.T) {
	src := fullSource()
	src.fail = map[string]bool{"income": true, "emis": true, "chat_history": true}

	snap := NewAggregator(src, time.UTC, fixedNow).Build(context.Background(), "u1")

	if snap.Finance.LatestIncome != nil || snap.Finance.NetIncome != 0 {
		t.Errorf("failed income fetch must yield nil/0, got %+v", snap.Finance.LatestIncome)
	}
	if snap.Finance.EMIs != nil || snap.Finance.TotalEMI != 0 {
		t.Errorf("failed EMI fetch must yield empty, got %+v", snap.Finance.EMIs)
	}
	if len(snap.RecentChat) != 0 {
		t.Errorf("failed chat fetch must yield empty, got %+v", snap.RecentChat)
	}
	// The other fetches still completed.
	if snap.Profile == nil || snap.Profile.Name != "Rahul" {
		t.Errorf("expected profile despite other failures, got %+v", snap.Profile)
	}
	if snap.Finance.TotalSubscriptions != 724 {
		t.Errorf("expected subscriptions despite other failures, got %g", snap.Finance.TotalSubscriptions)
	}
	if src.calls.Load() != 11 {
		t.Errorf("expected all 11 fetches attempted, got %d", src.calls.Load())
	}
}

func TestBuild_EmptyStore(t *testing.T) {
	snap := NewAggregator(&stubSource{}, time.UTC, fixedNow).Build(context.Background(), "u1")
	if snap.Profile != nil || snap.Health != nil || snap.Finance.NetIncome != 0 || len(snap.Projects) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestNetIncome_Property(t *testing.T) {
	f := func(base, ot, bonus, freelance, passive, pf, tax, other uint16) bool {
		inc := &models.Income{
			BaseSalary: float64(base), Overtime: float64(ot), Bonus: float64(bonus),
			Freelance: float64(freelance), PassiveIncome: float64(passive),
			DeductionsPF: float64(pf), DeductionsTax: float64(tax), DeductionsOther: float64(other),
		}
		want := float64(base) + float64(ot) + float64(bonus) + float64(freelance) + float64(passive) -
			float64(pf) - float64(tax) - float64(other)

		// Reordering the earning components must not change the result.
		swapped := *inc
		swapped.BaseSalary, swapped.PassiveIncome = inc.PassiveIncome, inc.BaseSalary
		swapped.DeductionsPF, swapped.DeductionsOther = inc.DeductionsOther, inc.DeductionsPF

		return NetIncome(inc) == want && NetIncome(&swapped) == want
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
	if NetIncome(nil) != 0 {
		t.Error("expected 0 for missing income")
	}
}

func TestTotals_SkipInactive(t *testing.T) {
	emis := []models.EMI{{EMIAmount: 100, Status: models.EMIStatusActive}, {EMIAmount: 900, Status: models.EMIStatusClosed}}
	if got := TotalEMI(emis); got != 100 {
		t.Errorf("expected 100, got %g", got)
	}
	subs := []models.Subscription{{Amount: 50, Status: models.SubscriptionStatusActive}, {Amount: 500, Status: models.SubscriptionStatusCancelled}}
	if got := TotalSubscriptions(subs); got != 50 {
		t.Errorf("expected 50, got %g", got)
	}
}
