package http

import (
	"strconv"

	"agent_server/core/port/in"
	"agent_server/pkg/apperr"
	"agent_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DraftHandler handles HTTP requests for draft operations
type DraftHandler struct {
	mailbox in.MailboxService
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(mailbox in.MailboxService) *DraftHandler {
	return &DraftHandler{mailbox: mailbox}
}

// Register registers draft routes
func (h *DraftHandler) Register(router fiber.Router) {
	drafts := router.Group("/drafts")

	drafts.Get("/", h.List)
	drafts.Post("/", h.Create)
	drafts.Put("/:id", h.Update)
	drafts.Delete("/:id", h.Delete)
}

// List lists all drafts
// @Summary List drafts
// @Tags Drafts
// @Produce json
// @Success 200 {array} domain.Draft
// @Router /api/v1/drafts [get]
func (h *DraftHandler) List(c *fiber.Ctx) error {
	drafts, err := h.mailbox.ListDrafts(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, drafts)
}

// Create creates a new draft
// @Summary Create a draft
// @Tags Drafts
// @Accept json
// @Produce json
// @Param request body in.CreateDraftRequest true "Draft data"
// @Success 201 {object} domain.Draft
// @Router /api/v1/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var req in.CreateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	draft, err := h.mailbox.CreateDraft(c.Context(), &req)
	if err != nil {
		return err
	}
	return response.Created(c, draft)
}

// Update updates a draft
// @Summary Update a draft
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path int true "Draft ID"
// @Param request body in.UpdateDraftRequest true "Draft data"
// @Success 200 {object} domain.Draft
// @Router /api/v1/drafts/{id} [put]
func (h *DraftHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperr.InvalidInput("id", "must be a numeric draft ID")
	}

	var req in.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	draft, err := h.mailbox.UpdateDraft(c.Context(), id, &req)
	if err != nil {
		return err
	}
	return response.OK(c, draft)
}

// Delete deletes a draft
// @Summary Delete a draft
// @Tags Drafts
// @Param id path int true "Draft ID"
// @Success 204
// @Router /api/v1/drafts/{id} [delete]
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperr.InvalidInput("id", "must be a numeric draft ID")
	}

	if err := h.mailbox.DeleteDraft(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}
