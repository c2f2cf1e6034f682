package services

import (
	"context"
	"strings"

	"github.com/somnathbasteai/jeni-bot/internal/interpreter"
	"github.com/somnathbasteai/jeni-bot/internal/models"
)

// entryService runs mutations through the executor so chat commands and
// form submissions share defaults and confirmation text.
type entryService struct {
	executor *interpreter.Executor
	audit    AuditServicer
}

// NewEntryService creates a new EntryServicer writing to records.
func NewEntryService(records RecordServicer, audit AuditServicer) EntryServicer {
	return &entryService{executor: interpreter.NewExecutor(records), audit: audit}
}

// Submit executes m for userID and audits the write. On error nothing was
// written and nothing is audited.
func (s *entryService) Submit(ctx context.Context, userID, source string, m interpreter.Mutation) (*interpreter.Result, error) {
	res, err := s.executor.Execute(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	s.audit.Log(userID, auditAction(res), string(res.Kind), res.RecordID, source,
		map[string]interface{}{"intent": string(m.Intent()), "created": res.Created})
	return res, nil
}

// auditAction names the write, e.g. CREATE_EXPENSE or UPSERT_HEALTH_LOG.
func auditAction(res *interpreter.Result) string {
	verb := "CREATE"
	if res.Kind == models.KindProfile || res.Kind == models.KindHealthLog {
		verb = "UPSERT"
	}
	return verb + "_" + strings.ToUpper(string(res.Kind))
}
