package handlers

import (
	"willeasy/internal/adapters/http/middleware"
	"willeasy/internal/core/domain"
	"willeasy/internal/core/services"
	"willeasy/internal/pkg/pagination"
	"willeasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WillHandler handles will endpoints for preparers and administrators
type WillHandler struct {
	wills services.DocumentRegistry
}

// NewWillHandler creates a new will handler
func NewWillHandler(wills services.DocumentRegistry) *WillHandler {
	return &WillHandler{wills: wills}
}

// CreateWillRequest starts a new draft
type CreateWillRequest struct {
	Language string `json:"language" validate:"required,oneof=English Marathi"`
}

// AdvanceWillRequest moves a will to its next status
type AdvanceWillRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListMine lists the signed-in account's wills
// @Summary List my wills
// @Description List the wills owned by the signed-in account, oldest first
// @Tags Wills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]WillResponse}
// @Failure 401 {object} response.Response
// @Router /wills [get]
func (h *WillHandler) ListMine(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	docs, err := h.wills.ListByOwner(c.UserContext(), session.AccountID)
	if err != nil {
		return respondError(c, err, "Failed to list wills")
	}

	return response.Success(c, "Wills retrieved successfully", NewWillResponses(docs))
}

// Create starts a new draft will
// @Summary Start a new will
// @Description Create a Draft will in English or Marathi for the signed-in preparer
// @Tags Wills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateWillRequest true "Language"
// @Success 201 {object} response.Response{data=WillResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /wills [post]
func (h *WillHandler) Create(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateWillRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err, "Failed to create will")
	}

	doc, err := h.wills.CreateDraft(c.UserContext(), session.AccountID, domain.Language(req.Language))
	if err != nil {
		return respondError(c, err, "Failed to create will")
	}

	return response.Created(c, "Will created successfully", NewWillResponse(doc))
}

// ListAll lists every will
// @Summary List all wills
// @Description Administrator view of every will, oldest first. Passing page or limit returns a paginated envelope.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response{data=[]WillResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/wills [get]
func (h *WillHandler) ListAll(c *fiber.Ctx) error {
	docs, err := h.wills.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to list wills")
	}

	items := NewWillResponses(docs)
	if pagination.Requested(c) {
		return response.Success(c, "Wills retrieved successfully", pagination.NewResponse(items, pagination.GetParams(c)))
	}
	return response.Success(c, "Wills retrieved successfully", items)
}

// Advance moves a will to its next status
// @Summary Advance will status
// @Description Move a will one step: Draft, Submitted, Fully Paid, Ready for Review, Finalized
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Will ID"
// @Param body body AdvanceWillRequest true "Target status"
// @Success 200 {object} response.Response{data=WillResponse}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/wills/{id}/status [post]
func (h *WillHandler) Advance(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AdvanceWillRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err, "Failed to update will")
	}

	doc, err := h.wills.Advance(c.UserContext(), session.Role, c.Params("id"), domain.Status(req.Status))
	if err != nil {
		return respondError(c, err, "Failed to update will")
	}

	return response.Success(c, "Will status updated", NewWillResponse(doc))
}
