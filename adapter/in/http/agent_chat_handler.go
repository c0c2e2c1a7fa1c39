package http

import (
	"agent_server/core/port/in"
	"agent_server/pkg/apperr"
	"agent_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles HTTP requests for inbox Q&A
type ChatHandler struct {
	chat in.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat in.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Register registers chat routes
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/chat", h.Ask)
}

// Ask answers a free-form question about the inbox
// @Summary Ask a question about the inbox
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body in.AskRequest true "Question and optional scope filter"
// @Success 200 {object} in.AskResponse
// @Router /api/v1/chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req in.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	resp, err := h.chat.Ask(c.Context(), &req)
	if err != nil {
		return err
	}
	return response.OK(c, resp)
}
