package http

import (
	"strings"

	"agent_server/adapter/in/worker"
	"agent_server/core/domain"
	"agent_server/core/port/in"
	"agent_server/pkg/apperr"
	"agent_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmailHandler handles HTTP requests for mailbox and enrichment operations
type EmailHandler struct {
	mailbox  in.MailboxService
	enricher in.EnrichmentService
	pool     *worker.EnrichPool
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(mailbox in.MailboxService, enricher in.EnrichmentService, pool *worker.EnrichPool) *EmailHandler {
	return &EmailHandler{mailbox: mailbox, enricher: enricher, pool: pool}
}

// Register registers email routes
func (h *EmailHandler) Register(router fiber.Router) {
	emails := router.Group("/emails")

	emails.Get("/", h.List)
	emails.Post("/enrich-all", h.EnrichAll)
	emails.Get("/:id", h.Get)
	emails.Delete("/:id", h.Delete)
	emails.Post("/:id/enrich", h.Enrich)

	router.Post("/sync/mock", h.Sync)
}

// enrichRequest selects which task(s) to run. "all" or empty runs every task.
type enrichRequest struct {
	Task string `json:"task"`
}

// List lists emails with optional filters
// @Summary List emails
// @Tags Emails
// @Produce json
// @Param category query string false "Filter by category"
// @Param pending query bool false "Only emails with incomplete enrichment"
// @Param limit query int false "Limit (default 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} in.EmailListResponse
// @Router /api/v1/emails [get]
func (h *EmailHandler) List(c *fiber.Ctx) error {
	filter := &domain.EmailFilter{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}

	if raw := c.Query("category"); raw != "" {
		cat := domain.NormalizeCategory(raw)
		filter.Category = &cat
	}
	if raw := c.Query("pending"); raw != "" {
		pending := strings.EqualFold(raw, "true") || raw == "1"
		filter.Pending = &pending
	}

	resp, err := h.mailbox.ListEmails(c.Context(), filter)
	if err != nil {
		return err
	}

	return response.OKWithMeta(c, resp.Emails, &response.Meta{
		Total:  resp.Total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Get retrieves an email by ID
// @Summary Get an email by ID
// @Tags Emails
// @Produce json
// @Param id path string true "Email ID"
// @Success 200 {object} domain.Email
// @Router /api/v1/emails/{id} [get]
func (h *EmailHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperr.MissingField("id")
	}

	email, err := h.mailbox.GetEmail(c.Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, email)
}

// Delete removes an email and its dependent drafts
// @Summary Delete an email
// @Tags Emails
// @Param id path string true "Email ID"
// @Success 204
// @Router /api/v1/emails/{id} [delete]
func (h *EmailHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperr.MissingField("id")
	}

	if err := h.mailbox.DeleteEmail(c.Context(), id); err != nil {
		return err
	}

	return response.NoContent(c)
}

// Enrich runs one or all enrichment tasks for an email synchronously
// @Summary Enrich an email
// @Tags Emails
// @Accept json
// @Produce json
// @Param id path string true "Email ID"
// @Param request body enrichRequest false "Task selection"
// @Success 200 {object} domain.Email
// @Router /api/v1/emails/{id}/enrich [post]
func (h *EmailHandler) Enrich(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperr.MissingField("id")
	}

	var req enrichRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperr.BadRequest("invalid request body")
		}
	}

	var results []*in.TaskResult
	switch {
	case req.Task == "" || req.Task == "all":
		var err error
		results, err = h.enricher.EnrichEmail(c.Context(), id)
		if err != nil {
			return err
		}
	default:
		task := domain.TaskType(req.Task)
		if !domain.IsValidTask(req.Task) {
			return apperr.InvalidInput("task", "must be one of categorize, extract_actions, draft_reply, all")
		}
		result, err := h.enricher.EnrichTask(c.Context(), id, task)
		if result != nil {
			results = append(results, result)
		}
		if err != nil && !apperr.IsCode(err, apperr.CodeEnrichmentFailed) {
			return err
		}
	}

	email, err := h.mailbox.GetEmail(c.Context(), id)
	if err != nil {
		return err
	}

	return response.OK(c, fiber.Map{
		"email":   email,
		"results": results,
	})
}

// EnrichAll queues enrichment of every email with pending tasks
// @Summary Enrich all pending emails in the background
// @Tags Emails
// @Produce json
// @Success 202 {object} response.Response
// @Router /api/v1/emails/enrich-all [post]
func (h *EmailHandler) EnrichAll(c *fiber.Ctx) error {
	const pageSize = 200

	pending := true
	emails, queued := 0, 0

	// Page through the pending listing; the store caps a single page.
	for offset := 0; ; offset += pageSize {
		resp, err := h.mailbox.ListEmails(c.Context(), &domain.EmailFilter{
			Pending: &pending,
			Limit:   pageSize,
			Offset:  offset,
		})
		if err != nil {
			return err
		}

		emails += len(resp.Emails)
		for _, email := range resp.Emails {
			for _, task := range domain.AllTasks() {
				if email.StatusFor(task) == domain.EnrichmentDone {
					continue
				}
				if h.pool.Submit(email.ID, task) {
					queued++
				}
			}
		}

		if len(resp.Emails) < pageSize {
			break
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(response.Response{
		Success: true,
		Data: fiber.Map{
			"emails": emails,
			"queued": queued,
		},
	})
}

// Sync loads the seed inbox, inserting emails that are not yet stored
// @Summary Sync the seed inbox
// @Tags Emails
// @Produce json
// @Success 200 {object} in.SyncResult
// @Router /api/v1/sync/mock [post]
func (h *EmailHandler) Sync(c *fiber.Ctx) error {
	result, err := h.mailbox.SyncSeed(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, result)
}
