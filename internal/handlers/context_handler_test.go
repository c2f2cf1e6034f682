package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
	"github.com/somnathbasteai/jeni-bot/internal/models"
)

type stubSnapshotBuilder struct {
	gotUserID string
}

func (s *stubSnapshotBuilder) Build(_ context.Context, userID string) *lifecontext.Snapshot {
	s.gotUserID = userID
	return &lifecontext.Snapshot{
		UserID:      userID,
		CurrentTime: "Monday, October 19, 2026 at 10:00 AM",
		Today:       "2026-10-19",
		Profile:     &models.Profile{Name: "Rahul", Location: "Pune"},
		Finance:     lifecontext.Finance{NetIncome: 86200, TotalEMI: 12000},
	}
}

func setupContextRouter(handler *ContextHandler) *gin.Engine {
	r := gin.New()
	authed := r.Group("", injectUserID(testUserID))
	authed.GET("/context", handler.GetContext)
	authed.GET("/context/prompt", handler.GetPrompt)
	r.GET("/anon/context", handler.GetContext)
	return r
}

func TestContextHandler_GetContext(t *testing.T) {
	t.Run("returns 200 with the snapshot", func(t *testing.T) {
		builder := &stubSnapshotBuilder{}
		rec := doRequest(setupContextRouter(NewContextHandler(builder)), "GET", "/context", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if builder.gotUserID != testUserID {
			t.Errorf("expected snapshot for %s, got %s", testUserID, builder.gotUserID)
		}
		result := parseJSON(t, rec)
		if result["today"] != "2026-10-19" {
			t.Errorf("unexpected today %v", result["today"])
		}
		finance := result["finance"].(map[string]interface{})
		if finance["net_income"] != float64(86200) {
			t.Errorf("unexpected finance %v", finance)
		}
	})

	t.Run("returns 401 without identity", func(t *testing.T) {
		rec := doRequest(setupContextRouter(NewContextHandler(&stubSnapshotBuilder{})), "GET", "/anon/context", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestContextHandler_GetPrompt(t *testing.T) {
	rec := doRequest(setupContextRouter(NewContextHandler(&stubSnapshotBuilder{})), "GET", "/context/prompt", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain, got %s", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"You are Jeni, Rahul's personal life intelligence system.", "RAHUL'S CURRENT LIFE STATE", "Location: Pune"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}
