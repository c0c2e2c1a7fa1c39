package http

import (
	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/pkg/apperr"
	"agent_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PromptHandler handles HTTP requests for prompt template operations
type PromptHandler struct {
	prompts in.PromptService
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(prompts in.PromptService) *PromptHandler {
	return &PromptHandler{prompts: prompts}
}

// Register registers prompt routes
func (h *PromptHandler) Register(router fiber.Router) {
	prompts := router.Group("/prompts")

	prompts.Get("/:task", h.Get)
	prompts.Put("/:task", h.Update)
	prompts.Delete("/:task", h.Reset)
}

type updatePromptRequest struct {
	Content string `json:"content"`
}

// Get retrieves the active template for a task
// @Summary Get a prompt template
// @Tags Prompts
// @Produce json
// @Param task path string true "Task name"
// @Success 200 {object} domain.PromptTemplate
// @Router /api/v1/prompts/{task} [get]
func (h *PromptHandler) Get(c *fiber.Ctx) error {
	task := domain.TaskType(c.Params("task"))

	prompt, err := h.prompts.GetPrompt(c.Context(), task)
	if err != nil {
		return err
	}
	return response.OK(c, prompt)
}

// Update replaces the template for a task and bumps its revision
// @Summary Update a prompt template
// @Tags Prompts
// @Accept json
// @Produce json
// @Param task path string true "Task name"
// @Param request body updatePromptRequest true "New template content"
// @Success 200 {object} domain.PromptTemplate
// @Router /api/v1/prompts/{task} [put]
func (h *PromptHandler) Update(c *fiber.Ctx) error {
	task := domain.TaskType(c.Params("task"))

	var req updatePromptRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	prompt, err := h.prompts.UpdatePrompt(c.Context(), task, req.Content)
	if err != nil {
		return err
	}
	return response.OK(c, prompt)
}

// Reset restores the built-in template for a task
// @Summary Reset a prompt template to its default
// @Tags Prompts
// @Produce json
// @Param task path string true "Task name"
// @Success 200 {object} domain.PromptTemplate
// @Router /api/v1/prompts/{task} [delete]
func (h *PromptHandler) Reset(c *fiber.Ctx) error {
	task := domain.TaskType(c.Params("task"))

	prompt, err := h.prompts.ResetPrompt(c.Context(), task)
	if err != nil {
		return err
	}
	return response.OK(c, prompt)
}
