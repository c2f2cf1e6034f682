package testutil

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/somnathbasteai/jeni-bot/internal/errors"
)

// AssertAppError fails unless err unwraps to an *AppError carrying code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError %s, got %T: %v", code, err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertContainsAll reports every fragment missing from text, which is
// usually a compiled prompt or a reply.
func AssertContainsAll(t *testing.T, text string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(text, f) {
			t.Errorf("expected text to contain %q\n---\n%s", f, text)
		}
	}
}
