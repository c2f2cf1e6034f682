package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/somnathbasteai/jeni-bot/internal/lifecontext"
)

// SnapshotBuilder assembles a user's life snapshot.
type SnapshotBuilder interface {
	Build(ctx context.Context, userID string) *lifecontext.Snapshot
}

// ContextHandler exposes the aggregated life state for dashboards and inspection.
type ContextHandler struct {
	builder SnapshotBuilder
}

// NewContextHandler creates a new ContextHandler
func NewContextHandler(builder SnapshotBuilder) *ContextHandler {
	return &ContextHandler{builder: builder}
}

// GetContext returns the snapshot as JSON
// @Summary     Get life snapshot
// @Description Profile, finances with derived totals, projects, tasks, goals, today's schedule and health
// @Tags        context
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} lifecontext.Snapshot "Snapshot"
// @Failure     401 {object} MessageError "Unauthorized"
// @Router      /context [get]
func (h *ContextHandler) GetContext(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.builder.Build(c.Request.Context(), userID))
}

// GetPrompt returns the compiled assistant instructions
// @Summary     Get compiled prompt
// @Description The instruction document the assistant receives for this user
// @Tags        context
// @Produce     plain
// @Security    BearerAuth
// @Success     200 {string} string "Prompt"
// @Failure     401 {object} MessageError "Unauthorized"
// @Router      /context/prompt [get]
func (h *ContextHandler) GetPrompt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	prompt := lifecontext.Compile(h.builder.Build(c.Request.Context(), userID))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(prompt))
}
