package interpreter

import (
	"context"
	"fmt"
	"strings"

	"github.com/somnathbasteai/jeni-bot/internal/models"
	"github.com/somnathbasteai/jeni-bot/internal/money"
)

// Store is the write side of the record store.
type Store interface {
	Create(ctx context.Context, userID string, rec models.Record) error
	// UpsertProfile merges patch into the user's profile, creating it when absent.
	UpsertProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, bool, error)
	// UpsertHealthLog merges patch into the (user, date) log, creating it when absent.
	UpsertHealthLog(ctx context.Context, userID, date string, patch models.HealthPatch) (*models.HealthLog, bool, error)
}

// Result describes a successful write.
type Result struct {
	Kind     models.RecordKind
	RecordID string
	// Created is false when an upsert updated an existing row.
	Created bool
	Message string
}

// WriteError is returned when the store rejects a mutation. Nothing is written.
type WriteError struct {
	Kind models.RecordKind
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not save %s: %v", e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Executor performs exactly one write per mutation.
type Executor struct {
	store Store
}

// NewExecutor creates an executor over store.
func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

// Execute writes m for userID and returns a confirmation built from the
// extracted fields.
func (e *Executor) Execute(ctx context.Context, userID string, m Mutation) (*Result, error) {
	switch m := m.(type) {
	case AddSubscription:
		return e.create(ctx, userID, &models.Subscription{
			Name:         m.Name,
			Amount:       m.Amount,
			BillingCycle: orDefault(m.Cycle, models.BillingCycleMonthly),
			Category:     orDefault(m.Category, DefaultCategory),
			RenewalDate:  m.RenewalDate,
			AutoRenew:    m.AutoRenew,
			IsEssential:  m.Essential,
			Status:       models.SubscriptionStatusActive,
		}, subscriptionMessage(m))

	case AddEMI:
		return e.create(ctx, userID, &models.EMI{
			Name:            m.Name,
			Lender:          m.Lender,
			LoanType:        m.LoanType,
			PrincipalAmount: m.Principal,
			InterestRate:    m.InterestRate,
			EMIAmount:       m.Amount,
			DueDay:          m.DueDay,
			TotalMonths:     m.TotalMonths,
			RemainingMonths: m.RemainingMonths,
			StartDate:       m.StartDate,
			AutoDebit:       m.AutoDebit,
			Status:          models.EMIStatusActive,
		}, emiMessage(m))

	case RecordIncome:
		inc := &models.Income{
			Month:           m.Month,
			Year:            m.Year,
			BaseSalary:      m.Base,
			Overtime:        m.Overtime,
			Bonus:           m.Bonus,
			Freelance:       m.Freelance,
			PassiveIncome:   m.Passive,
			DeductionsPF:    m.PF,
			DeductionsTax:   m.Tax,
			DeductionsOther: m.OtherDeductions,
			Notes:           m.Notes,
		}
		return e.create(ctx, userID, inc, incomeMessage(inc))

	case AddProject:
		return e.create(ctx, userID, &models.Project{
			Name:         m.Name,
			Description:  m.Description,
			TechStack:    m.TechStack,
			TargetLaunch: m.TargetLaunch,
			Progress:     models.ClampProgress(m.Progress),
			Status:       orDefault(m.Status, models.ProjectStatusActive),
			Priority:     orDefault(m.Priority, models.PriorityMedium),
		}, fmt.Sprintf("✅ Project added: %s · %d%% · %s · %s priority",
			m.Name, models.ClampProgress(m.Progress), orDefault(m.Status, models.ProjectStatusActive),
			orDefault(m.Priority, models.PriorityMedium)))

	case AddTask:
		msg := fmt.Sprintf("✅ Task added: %s [%s]", m.Title, orDefault(m.Priority, models.PriorityMedium))
		if m.DueDate != nil {
			msg += " · due " + *m.DueDate
		}
		return e.create(ctx, userID, &models.Task{
			ProjectID:        m.ProjectID,
			Title:            m.Title,
			Description:      m.Description,
			DueDate:          m.DueDate,
			Priority:         orDefault(m.Priority, models.PriorityMedium),
			EstimatedMinutes: m.EstimatedMinutes,
		}, msg)

	case RecordExpense:
		category := orDefault(m.Category, DefaultCategory)
		return e.create(ctx, userID, &models.Expense{
			Amount:        m.Amount,
			Category:      category,
			SubCategory:   m.SubCategory,
			Description:   m.Description,
			PaymentMethod: m.PaymentMethod,
			Date:          m.Date,
			IsRecurring:   m.Recurring,
		}, fmt.Sprintf("✅ Expense logged: %s on %s [%s]", money.INR(m.Amount), orDefault(m.Description, category), category))

	case AddGoal:
		msg := fmt.Sprintf("✅ Goal added: %s [%s]", m.Title, orDefault(m.Category, "personal"))
		if m.TargetValue != nil {
			msg += " · target " + money.Group(*m.TargetValue)
		}
		return e.create(ctx, userID, &models.Goal{
			Title:       m.Title,
			Description: m.Description,
			Category:    orDefault(m.Category, "personal"),
			TargetValue: m.TargetValue,
			Deadline:    m.Deadline,
			Status:      models.GoalStatusInProgress,
		}, msg)

	case AddScheduleItem:
		return e.create(ctx, userID, &models.ScheduleItem{
			Date:            m.Date,
			Time:            m.Time,
			Event:           m.Event,
			Type:            orDefault(m.Type, "general"),
			DurationMinutes: m.DurationMinutes,
			Status:          models.ScheduleStatusPending,
			IsRecurring:     m.Recurring,
			Priority:        orDefault(m.Priority, models.PriorityMedium),
		}, fmt.Sprintf("✅ Scheduled: %s %s on %s", m.Time, m.Event, m.Date))

	case LogHealth:
		log, created, err := e.store.UpsertHealthLog(ctx, userID, m.Date, m.Patch)
		if err != nil {
			return nil, &WriteError{Kind: models.KindHealthLog, Err: err}
		}
		return &Result{
			Kind:     models.KindHealthLog,
			RecordID: log.ID,
			Created:  created,
			Message:  healthMessage(m),
		}, nil

	case UpdateProfile:
		p, created, err := e.store.UpsertProfile(ctx, userID, m.Patch)
		if err != nil {
			return nil, &WriteError{Kind: models.KindProfile, Err: err}
		}
		msg := "✅ Profile updated."
		if m.Patch.Name != nil {
			msg = fmt.Sprintf("✅ Nice to meet you, %s! Profile saved.", *m.Patch.Name)
		}
		return &Result{Kind: models.KindProfile, RecordID: p.ID, Created: created, Message: msg}, nil
	}

	return nil, fmt.Errorf("unsupported mutation %T", m)
}

func (e *Executor) create(ctx context.Context, userID string, rec models.Record, msg string) (*Result, error) {
	if err := e.store.Create(ctx, userID, rec); err != nil {
		return nil, &WriteError{Kind: rec.Kind(), Err: err}
	}
	return &Result{Kind: rec.Kind(), RecordID: rec.RecordID(), Created: true, Message: msg}, nil
}

func orDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}

func subscriptionMessage(m AddSubscription) string {
	msg := fmt.Sprintf("✅ Subscription added: %s · %s/%s [%s]", m.Name, money.INR(m.Amount), orDefault(m.Cycle, models.BillingCycleMonthly), orDefault(m.Category, DefaultCategory))
	if m.Essential {
		msg += " · essential"
	}
	return msg
}

func emiMessage(m AddEMI) string {
	msg := fmt.Sprintf("✅ EMI added: %s · %s/month · due on %s · %d of %d months left",
		m.Name, money.INR(m.Amount), Ordinal(m.DueDay), m.RemainingMonths, m.TotalMonths)
	if m.Lender != "" {
		msg += " · " + m.Lender
	}
	return msg
}

func incomeMessage(inc *models.Income) string {
	return fmt.Sprintf("✅ Salary saved for %s %d. Net: %s/month (earnings %s, deductions %s)",
		inc.Month, inc.Year, money.INR(inc.Net()), money.INR(inc.Earnings()), money.INR(inc.Deductions()))
}

func healthMessage(m LogHealth) string {
	var parts []string
	p := m.Patch
	if p.SleepHours != nil {
		parts = append(parts, fmt.Sprintf("sleep %s hrs", money.Group(*p.SleepHours)))
	}
	if p.SleepQuality != nil {
		parts = append(parts, fmt.Sprintf("sleep quality %d/10", *p.SleepQuality))
	}
	if p.Steps != nil {
		parts = append(parts, fmt.Sprintf("%s steps", money.Group(float64(*p.Steps))))
	}
	if p.WaterGlasses != nil {
		parts = append(parts, fmt.Sprintf("%d glasses water", *p.WaterGlasses))
	}
	if p.ExerciseMinutes != nil {
		ex := fmt.Sprintf("%d min exercise", *p.ExerciseMinutes)
		if p.ExerciseType != nil {
			ex = fmt.Sprintf("%d min %s", *p.ExerciseMinutes, *p.ExerciseType)
		}
		parts = append(parts, ex)
	}
	if p.Mood != nil {
		parts = append(parts, fmt.Sprintf("mood %d/10", *p.Mood))
	}
	if p.EnergyLevel != nil {
		parts = append(parts, fmt.Sprintf("energy %d/10", *p.EnergyLevel))
	}
	if p.WeightKg != nil {
		parts = append(parts, fmt.Sprintf("weight %s kg", money.Group(*p.WeightKg)))
	}
	return fmt.Sprintf("✅ Health updated for %s: %s", m.Date, strings.Join(parts, " · "))
}
