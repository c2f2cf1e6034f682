package lifecontext

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/somnathbasteai/jeni-bot/internal/logger"
	"github.com/somnathbasteai/jeni-bot/internal/models"
)

const (
	// DefaultTaskLimit caps open tasks fetched per snapshot.
	DefaultTaskLimit = 20
	// DefaultChatLimit caps the recent conversation excerpt.
	DefaultChatLimit = 10

	dateLayout = "2006-01-02"
	timeLayout = "02/01/2006, 3:04:05 pm"
)

// Source is the read side of the record store. Every method is scoped to one
// owner; absent singletons are returned as nil with a nil error.
type Source interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	LatestIncome(ctx context.Context, userID string) (*models.Income, error)
	ActiveEMIs(ctx context.Context, userID string) ([]models.EMI, error)
	ActiveSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error)
	ExpensesSince(ctx context.Context, userID, fromDate string) ([]models.Expense, error)
	Projects(ctx context.Context, userID string) ([]models.Project, error)
	OpenTasks(ctx context.Context, userID string, limit int) ([]models.Task, error)
	OpenGoals(ctx context.Context, userID string) ([]models.Goal, error)
	ScheduleFor(ctx context.Context, userID, date string) ([]models.ScheduleItem, error)
	HealthLogFor(ctx context.Context, userID, date string) (*models.HealthLog, error)
	// RecentChat returns the newest turns first.
	RecentChat(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)
}

// Aggregator builds snapshots from a Source.
type Aggregator struct {
	src       Source
	loc       *time.Location
	now       func() time.Time
	taskLimit int
	chatLimit int
}

// NewAggregator creates an aggregator reading from src. Dates such as "today"
// and the current month are evaluated in loc. A nil clock means time.Now.
func NewAggregator(src Source, loc *time.Location, now func() time.Time) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Aggregator{src: src, loc: loc, now: now, taskLimit: DefaultTaskLimit, chatLimit: DefaultChatLimit}
}

// fetch runs fn in the group. A failure is logged and leaves *dst at its
// zero value; it never cancels the other fetches.
func fetch[T any](g *errgroup.Group, collection, userID string, dst *T, fn func() (T, error)) {
	g.Go(func() error {
		v, err := fn()
		if err != nil {
			logger.Get().Warnw("Context fetch failed", "collection", collection, "user_id", userID, "error", err)
			return nil
		}
		*dst = v
		return nil
	})
}

// Build fetches every collection concurrently and derives the totals. It
// performs no writes and never fails: missing data is simply empty.
func (a *Aggregator) Build(ctx context.Context, userID string) *Snapshot {
	now := a.now().In(a.loc)
	today := now.Format(dateLayout)
	monthStart := today[:7] + "-01"

	var (
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
	)

	g, gctx := errgroup.WithContext(ctx)
	fetch(g, "profiles", userID, &profile, func() (*models.Profile, error) { return a.src.Profile(gctx, userID) })
	fetch(g, "income", userID, &income, func() (*models.Income, error) { return a.src.LatestIncome(gctx, userID) })
	fetch(g, "emis", userID, &emis, func() ([]models.EMI, error) { return a.src.ActiveEMIs(gctx, userID) })
	fetch(g, "subscriptions", userID, &subs, func() ([]models.Subscription, error) {
		return a.src.ActiveSubscriptions(gctx, userID)
	})
	fetch(g, "expenses", userID, &expenses, func() ([]models.Expense, error) {
		return a.src.ExpensesSince(gctx, userID, monthStart)
	})
	fetch(g, "projects", userID, &projects, func() ([]models.Project, error) { return a.src.Projects(gctx, userID) })
	fetch(g, "tasks", userID, &tasks, func() ([]models.Task, error) { return a.src.OpenTasks(gctx, userID, a.taskLimit) })
	fetch(g, "goals", userID, &goals, func() ([]models.Goal, error) { return a.src.OpenGoals(gctx, userID) })
	fetch(g, "schedule", userID, &schedule, func() ([]models.ScheduleItem, error) {
		return a.src.ScheduleFor(gctx, userID, today)
	})
	fetch(g, "health_logs", userID, &health, func() (*models.HealthLog, error) {
		return a.src.HealthLogFor(gctx, userID, today)
	})
	fetch(g, "chat_history", userID, &chat, func() ([]models.ChatMessage, error) {
		return a.src.RecentChat(gctx, userID, a.chatLimit)
	})
	_ = g.Wait()

	sort.SliceStable(projects, func(i, j int) bool {
		ri, rj := projects[i].Priority.Rank(), projects[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return projects[i].Name < projects[j].Name
	})

	if len(tasks) > a.taskLimit {
		tasks = tasks[:a.taskLimit]
	}

	// Oldest first.
	lines := make([]ChatLine, 0, len(chat))
	for i := len(chat) - 1; i >= 0; i-- {
		lines = append(lines, ChatLine{Role: chat[i].Role, Message: chat[i].Message})
	}

	return &Snapshot{
		UserID:      userID,
		CurrentTime: now.Format(timeLayout),
		Today:       today,
		Profile:     profile,
		Finance: Finance{
			LatestIncome:       income,
			NetIncome:          NetIncome(income),
			EMIs:               emis,
			TotalEMI:           TotalEMI(emis),
			Subscriptions:      subs,
			TotalSubscriptions: TotalSubscriptions(subs),
			Expenses:           expenses,
			ExpenseTotal:       TotalExpenses(expenses),
		},
		Projects:   projects,
		Tasks:      tasks,
		Goals:      goals,
		Schedule:   schedule,
		Health:     health,
		RecentChat: lines,
	}
}
