package lifecontext

import (
	"fmt"
	"strings"

	"github.com/somnathbasteai/jeni-bot/internal/money"
)

// Fallback answers from snapshot data alone when the completion service is
// unavailable. It never performs I/O.
func Fallback(message string, s *Snapshot) string {
	q := strings.ToLower(message)
	name := s.Name("there")
	f := s.Finance

	switch {
	case strings.Contains(q, "salary") || strings.Contains(q, "income"):
		return fmt.Sprintf("Hey %s! Your net salary is %s/month. EMIs take %s and subscriptions %s. "+
			"(AI is temporarily offline, showing basic data)",
			name, money.INR(f.NetIncome), money.INR(f.TotalEMI), money.INR(f.TotalSubscriptions))

	case strings.Contains(q, "emi") || strings.Contains(q, "loan"):
		if len(f.EMIs) == 0 {
			return "You have no active EMIs recorded. (AI is temporarily offline, showing basic data)"
		}
		parts := make([]string, len(f.EMIs))
		for i, e := range f.EMIs {
			parts[i] = fmt.Sprintf("%s: %s", e.Name, money.INR(e.EMIAmount))
		}
		return fmt.Sprintf("You have %d active EMIs totaling %s/month. %s",
			len(f.EMIs), money.INR(f.TotalEMI), strings.Join(parts, ", "))

	case strings.Contains(q, "project"):
		if len(s.Projects) == 0 {
			return "You have no projects recorded yet. (AI is temporarily offline, showing basic data)"
		}
		parts := make([]string, len(s.Projects))
		for i, p := range s.Projects {
			parts[i] = fmt.Sprintf("%s (%d%%)", p.Name, p.Progress)
		}
		return "Your projects: " + strings.Join(parts, ", ")
	}

	return fmt.Sprintf("Hey %s! I'm having trouble connecting to my AI brain right now. "+
		"Your data is still available in the dashboard. Try again in a moment! 🙏", name)
}
