package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/somnathbasteai/jeni-bot/internal/config"
)

func testConfig(url string) config.CompletionConfig {
	return config.CompletionConfig{
		Provider:    config.ProviderGroq,
		APIKey:      "test-key",
		Model:       "llama-3.3-70b-versatile",
		BaseURL:     url,
		Temperature: 0.7,
		MaxTokens:   1500,
	}
}

func testRequest() Request {
	return Request{
		System: "You are Jeni.",
		History: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "hello!"},
		},
		Message: "how am I doing?",
	}
}

func TestRequest_Messages(t *testing.T) {
	msgs := testRequest().Messages()
	want := []Role{RoleSystem, RoleUser, RoleAssistant, RoleUser}
	if len(msgs) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(msgs))
	}
	for i, r := range want {
		if msgs[i].Role != r {
			t.Errorf("message %d: expected role %s, got %s", i, r, msgs[i].Role)
		}
	}
	if msgs[3].Content != "how am I doing?" {
		t.Errorf("expected new message last, got %q", msgs[3].Content)
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	reqs := make(chan chatRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		var body chatRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		reqs <- body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  You're doing great.  "}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(testConfig(srv.URL+"/"), srv.Client())
	reply, err := c.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "You're doing great." {
		t.Errorf("unexpected reply %q", reply)
	}
	got := <-reqs
	if got.Model != "llama-3.3-70b-versatile" || got.Temperature != 0.7 || got.MaxTokens != 1500 {
		t.Errorf("unexpected request params %+v", got)
	}
	if len(got.Messages) != 4 || got.Messages[0].Role != RoleSystem {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
	if c.Model() != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected model %s", c.Model())
	}
}

func TestOpenAIClient_RequestOverrides(t *testing.T) {
	reqs := make(chan chatRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		reqs <- body
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"text","text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	req := testRequest()
	req.Temperature = 0.2
	req.MaxTokens = 64
	reply, err := NewOpenAI(testConfig(srv.URL), srv.Client()).Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "ok" {
		t.Errorf("expected parts content to be joined, got %q", reply)
	}
	got := <-reqs
	if got.Temperature != 0.2 || got.MaxTokens != 64 {
		t.Errorf("expected overrides, got %+v", got)
	}
}

func TestOpenAIClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"rate_limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, func(t *testing.T, err error) {
			var se *StatusError
			if !errors.As(err, &se) || se.StatusCode != http.StatusTooManyRequests {
				t.Errorf("expected StatusError 429, got %v", err)
			}
		}},
		{"server_error", http.StatusInternalServerError, `oops`, func(t *testing.T, err error) {
			var se *StatusError
			if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
				t.Errorf("expected StatusError 500, got %v", err)
			}
		}},
		{"no_choices", http.StatusOK, `{"choices":[]}`, func(t *testing.T, err error) {
			if !errors.Is(err, ErrEmptyCompletion) {
				t.Errorf("expected ErrEmptyCompletion, got %v", err)
			}
		}},
		{"blank_content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`, func(t *testing.T, err error) {
			if !errors.Is(err, ErrEmptyCompletion) {
				t.Errorf("expected ErrEmptyCompletion, got %v", err)
			}
		}},
		{"bad_json", http.StatusOK, `not json`, func(t *testing.T, err error) {
			if err == nil {
				t.Error("expected decode error")
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			reply, err := NewOpenAI(testConfig(srv.URL), srv.Client()).Complete(context.Background(), testRequest())
			if reply != "" {
				t.Errorf("expected empty reply, got %q", reply)
			}
			tc.check(t, err)
			if calls.Load() != 1 {
				t.Errorf("expected exactly one attempt, got %d", calls.Load())
			}
		})
	}
}

func TestOpenAIClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	_, err := NewOpenAI(cfg, srv.Client()).Complete(context.Background(), testRequest())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNew(t *testing.T) {
	t.Run("no_key_is_disabled", func(t *testing.T) {
		c, err := New(config.CompletionConfig{Provider: config.ProviderGroq, Model: "m"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.Complete(context.Background(), testRequest()); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("expected ErrNotConfigured, got %v", err)
		}
		if c.Model() != "m" {
			t.Errorf("expected model m, got %s", c.Model())
		}
	})

	t.Run("groq_is_openai_compatible", func(t *testing.T) {
		c, err := New(testConfig("https://api.groq.com/openai/v1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := c.(*OpenAIClient); !ok {
			t.Errorf("expected *OpenAIClient, got %T", c)
		}
	})
}

func TestGeminiMapping(t *testing.T) {
	req := testRequest()
	contents := geminiContents(req)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	wantRoles := []string{"user", "model", "user"}
	for i, c := range contents {
		if c.Role != wantRoles[i] {
			t.Errorf("content %d: expected role %s, got %s", i, wantRoles[i], c.Role)
		}
	}

	cfg := geminiConfig(req, 0.7, 1500)
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "You are Jeni." {
		t.Errorf("expected system instruction, got %+v", cfg.SystemInstruction)
	}
	if cfg.MaxOutputTokens != 1500 || cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Errorf("unexpected generation config %+v", cfg)
	}
}

func TestNewGemini_RequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), config.CompletionConfig{Provider: config.ProviderGemini}); err == nil {
		t.Error("expected error without API key")
	}
}
