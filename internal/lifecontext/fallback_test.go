package lifecontext

import (
	"strings"
	"testing"
)

func TestFallback(t *testing.T) {
	snap := fullSnapshot()

	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"salary", "What's my SALARY looking like?", []string{"Hey Rahul!", "₹86,200/month", "EMIs take ₹6,500", "subscriptions ₹724"}},
		{"emi", "any loan due?", []string{"2 active EMIs totaling ₹6,500/month", "Bike: ₹4,500", "Phone: ₹2,000"}},
		{"project", "how are my projects", []string{"Your projects: Alpha (5%), DigiKaragir (65%), Zeta (10%)"}},
		{"generic", "what should I cook tonight", []string{"Hey Rahul!", "trouble connecting"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fallback(tc.message, snap)
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Errorf("expected %q in %q", w, got)
				}
			}
		})
	}
}

func TestFallback_UnknownUser(t *testing.T) {
	got := Fallback("hello", &Snapshot{})
	if !strings.HasPrefix(got, "Hey there!") {
		t.Errorf("expected generic greeting, got %q", got)
	}
	if got := Fallback("my projects?", &Snapshot{}); got == "" {
		t.Error("expected non-empty reply for empty snapshot")
	}
}
