package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type payload struct {
	Date     string `validate:"omitempty,iso_date"`
	Time     string `validate:"omitempty,clock_time"`
	Cycle    string `validate:"omitempty,billing_cycle"`
	Status   string `validate:"omitempty,project_status"`
	Priority string `validate:"omitempty,priority"`
	Schedule string `validate:"omitempty,schedule_status"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	tests := []struct {
		name  string
		in    payload
		valid bool
	}{
		{"empty_is_allowed", payload{}, true},
		{"all_valid", payload{"2026-10-19", "09:30", "yearly", "building", "critical", "done"}, true},
		{"bad_date", payload{Date: "2026-02-30"}, false},
		{"bad_date_format", payload{Date: "19/10/2026"}, false},
		{"bad_time", payload{Time: "24:00"}, false},
		{"short_time", payload{Time: "9:30"}, false},
		{"bad_cycle", payload{Cycle: "weekly"}, false},
		{"bad_status", payload{Status: "done"}, false},
		{"bad_priority", payload{Priority: "urgent"}, false},
		{"bad_schedule_status", payload{Schedule: "skipped"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.in)
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
