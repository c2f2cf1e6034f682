package lifecontext

import (
	"fmt"
	"strings"

	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/models"
	"github.com/somnathbasteai/jeni-bot/internal/money"
)

// PromptTaskLimit is how many pending tasks the prompt lists.
const PromptTaskLimit = 10

// Compile renders s into the system instruction for the completion service.
// It is pure: the same snapshot always yields the same text.
func Compile(s *Snapshot) string {
	name := s.Name("User")
	location := "India"
	if s.Profile != nil && s.Profile.Location != "" {
		location = s.Profile.Location
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are Jeni, %s's personal life intelligence system.\n\n", name)

	b.WriteString("## YOUR PERSONALITY\n")
	b.WriteString("- Talk like a smart, caring friend, not a corporate assistant\n")
	b.WriteString("- Be SPECIFIC: use actual numbers from the data below\n")
	b.WriteString("- Be PROACTIVE: mention important things even if not asked\n")
	b.WriteString("- Use Hindi words occasionally if natural (bhai, yaar, chal)\n")
	fmt.Fprintf(&b, "- Challenge %s when needed and celebrate wins\n", name)
	b.WriteString("- Keep responses focused and actionable\n\n")

	fmt.Fprintf(&b, "## %s'S CURRENT LIFE STATE\n\n", strings.ToUpper(name))

	b.WriteString("### Identity\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Location: %s\n", location)
	fmt.Fprintf(&b, "- Current time: %s\n\n", s.CurrentTime)

	writeFinance(&b, &s.Finance)
	writeProjects(&b, s.Projects)
	writeTasks(&b, s.Tasks)
	writeGoals(&b, s.Goals)
	writeSchedule(&b, s.Schedule)
	writeHealth(&b, s.Health)

	b.WriteString("## IMPORTANT RULES\n")
	b.WriteString("1. ALWAYS use real numbers from the data above\n")
	b.WriteString("2. If data is missing, tell the user you don't have it yet and suggest adding it\n")
	b.WriteString("3. Mention concerning things proactively (low sleep, upcoming EMI, deadlines)\n")
	b.WriteString("4. Give SPECIFIC, ACTIONABLE advice, not generic tips\n")
	b.WriteString("5. Reference projects by name\n")
	b.WriteString("6. If the user asks about something not in the data, say so honestly\n")
	b.WriteString("7. Format financial amounts in Indian notation (₹XX,XXX)\n")
	b.WriteString("8. Keep responses concise but comprehensive\n")
	b.WriteString("9. If a section has no data, suggest adding it rather than making up data")

	return b.String()
}

func writeFinance(b *strings.Builder, f *Finance) {
	b.WriteString("### Finance\n")
	if inc := f.LatestIncome; inc != nil {
		fmt.Fprintf(b, "- Net Salary: %s/month (%s %d)\n", money.INR(f.NetIncome), inc.Month, inc.Year)
		fmt.Fprintf(b, "- Base: %s | OT: %s | Deductions: %s\n",
			money.INR(inc.BaseSalary), money.INR(inc.Overtime), money.INR(inc.Deductions()))
	} else {
		b.WriteString("- No income data yet. Ask the user to add their salary info.\n")
	}

	fmt.Fprintf(b, "- Total EMI: %s/month (%d active)\n", money.INR(f.TotalEMI), len(f.EMIs))
	if len(f.EMIs) == 0 {
		b.WriteString("  • No EMIs recorded yet. Ask the user if they have any loans.\n")
	}
	for _, e := range f.EMIs {
		lender := e.Lender
		if lender == "" {
			lender = "unknown lender"
		}
		fmt.Fprintf(b, "  • %s: %s/mo, due %s, %d months left, %s\n",
			e.Name, money.INR(e.EMIAmount), interpreter.Ordinal(e.DueDay), e.RemainingMonths, lender)
	}

	fmt.Fprintf(b, "- Total Subscriptions: %s/month (%d active)\n", money.INR(f.TotalSubscriptions), len(f.Subscriptions))
	if len(f.Subscriptions) == 0 {
		b.WriteString("  • No subscriptions recorded yet. Ask the user to add them.\n")
	}
	for _, sub := range f.Subscriptions {
		tag := "OPTIONAL"
		if sub.IsEssential {
			tag = "ESSENTIAL"
		}
		fmt.Fprintf(b, "  • %s: %s/%s [%s]\n", sub.Name, money.INR(sub.Amount), sub.BillingCycle, tag)
	}

	if len(f.Expenses) == 0 {
		b.WriteString("- Monthly Expenses so far: no expenses logged this month yet. Prompt the user to log spending.\n")
	} else {
		fmt.Fprintf(b, "- Monthly Expenses so far: %s (%d entries)\n", money.INR(f.ExpenseTotal), len(f.Expenses))
	}
	fmt.Fprintf(b, "- Free cash (salary - EMI - subs): %s\n\n", money.INR(f.FreeCash()))
}

func writeProjects(b *strings.Builder, projects []models.Project) {
	fmt.Fprintf(b, "### Projects (%d)\n", len(projects))
	if len(projects) == 0 {
		b.WriteString("- No projects yet. Help the user add their projects.\n\n")
		return
	}
	for _, p := range projects {
		fmt.Fprintf(b, "- %s: %d%% done | %s | Priority: %s", p.Name, p.Progress, p.Status, p.Priority)
		if p.TargetLaunch != "" {
			fmt.Fprintf(b, " | Launch: %s", p.TargetLaunch)
		}
		if p.TechStack != "" {
			fmt.Fprintf(b, " | Stack: %s", p.TechStack)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeTasks(b *strings.Builder, tasks []models.Task) {
	fmt.Fprintf(b, "### Pending Tasks (%d)\n", len(tasks))
	if len(tasks) == 0 {
		b.WriteString("- No pending tasks. Ask the user what needs doing.\n\n")
		return
	}
	for i, t := range tasks {
		if i == PromptTaskLimit {
			break
		}
		b.WriteString("- " + t.Title)
		if t.DueDate != nil {
			fmt.Fprintf(b, " (due: %s)", *t.DueDate)
		}
		fmt.Fprintf(b, " [%s]\n", t.Priority)
	}
	b.WriteString("\n")
}

func writeGoals(b *strings.Builder, goals []models.Goal) {
	b.WriteString("### Goals\n")
	if len(goals) == 0 {
		b.WriteString("- No goals set yet. Help the user define goals.\n\n")
		return
	}
	for _, g := range goals {
		target := "?"
		if g.TargetValue != nil {
			target = money.Group(*g.TargetValue)
		}
		deadline := "none"
		if g.Deadline != nil {
			deadline = *g.Deadline
		}
		fmt.Fprintf(b, "- %s: %s/%s | %s | Deadline: %s\n",
			g.Title, money.Group(g.CurrentValue), target, g.Category, deadline)
	}
	b.WriteString("\n")
}

func writeSchedule(b *strings.Builder, items []models.ScheduleItem) {
	b.WriteString("### Today's Schedule\n")
	if len(items) == 0 {
		b.WriteString("- No schedule for today. Help the user plan their day.\n\n")
		return
	}
	for _, s := range items {
		marker := "⏳"
		switch s.Status {
		case models.ScheduleStatusDone:
			marker = "✅"
		case models.ScheduleStatusActive:
			marker = "🔴 NOW"
		}
		fmt.Fprintf(b, "- %s %s [%s] %s\n", s.Time, s.Event, s.Type, marker)
	}
	b.WriteString("\n")
}

func writeHealth(b *strings.Builder, h *models.HealthLog) {
	b.WriteString("### Health Today\n")
	if h == nil {
		b.WriteString("- No health data logged today. Remind the user to log it.\n\n")
		return
	}
	sleep := "?"
	if h.SleepHours != nil {
		sleep = money.Group(*h.SleepHours)
	}
	fmt.Fprintf(b, "- Sleep: %s hrs | Steps: %s | Water: %d glasses | Exercise: %d min",
		sleep, money.Group(float64(h.Steps)), h.WaterGlasses, h.ExerciseMinutes)
	if h.Mood != nil {
		fmt.Fprintf(b, " | Mood: %d/10", *h.Mood)
	}
	b.WriteString("\n\n")
}
