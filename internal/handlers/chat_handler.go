package handlers

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	apperrors "github.com/somnathbasteai/jeni-bot/internal/errors"
	"github.com/somnathbasteai/jeni-bot/internal/pagination"
	"github.com/somnathbasteai/jeni-bot/internal/services"
)

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	chatService services.ChatServicer
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService services.ChatServicer) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// maxChatBodyBytes bounds the request body read for one chat message.
const maxChatBodyBytes = 64 << 10

// ChatRequest is one user message. An absent sessionId starts a new session.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId" binding:"max=64"`
}

// Chat runs one conversation turn
// @Summary     Send a chat message
// @Description Apply a recognized command, or answer from the user's life snapshot
// @Tags        chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Message"
// @Success     200 {object} services.ChatReply "Reply"
// @Failure     400 {object} MessageError "Message is required or too long"
// @Failure     401 {object} MessageError "Unauthorized"
// @Failure     500 {object} MessageError "Server error"
// @Router      /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, MessageError{Error: apperrors.ErrUnauthorized.Message})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxChatBodyBytes)
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, MessageError{Error: "Invalid request body"})
		return
	}
	if utf8.RuneCountInString(req.Message) > services.MaxMessageLength {
		c.JSON(http.StatusBadRequest, MessageError{Error: apperrors.ErrMessageTooLong.Message})
		return
	}

	reply, err := h.chatService.Send(c.Request.Context(), userID, req.SessionID, req.Message)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.StatusCode < http.StatusInternalServerError {
			c.JSON(appErr.StatusCode, MessageError{Error: appErr.Message})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, MessageError{Error: apperrors.ErrInternalServer.Message})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// GetSession lists the turns of one chat session
// @Summary     Get chat session
// @Description List one session's turns in conversation order
// @Tags        chat
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Session ID"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.ChatMessage] "Session turns"
// @Failure     401 {object} MessageError "Unauthorized"
// @Failure     404 {object} ErrorResponse "Session not found"
// @Router      /chat/sessions/{id} [get]
func (h *ChatHandler) GetSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.chatService.Session(c.Request.Context(), userID, c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
