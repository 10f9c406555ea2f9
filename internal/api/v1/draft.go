package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/api/dto"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/service"
)

// DraftHandler serves the create and edit forms
type DraftHandler struct {
	draftService service.DraftService
	logger       *logger.Logger
}

func NewDraftHandler(draftService service.DraftService, logger *logger.Logger) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		logger:       logger,
	}
}

// @Summary Open a blank invoice form
// @Tags Drafts
// @Produce json
// @Success 201 {object} dto.DraftResponse
// @Router /drafts [post]
func (h *DraftHandler) NewDraft(c *gin.Context) {
	resp, err := h.draftService.NewDraft(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Open the edit form of an invoice
// @Tags Drafts
// @Produce json
// @Param numero path int true "Invoice number"
// @Success 201 {object} dto.DraftResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /factures/{numero}/draft [post]
func (h *DraftHandler) EditDraft(c *gin.Context) {
	number, err := invoiceNumberParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.draftService.EditDraft(c.Request.Context(), number)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a draft
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.DraftResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	resp, err := h.draftService.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set header fields of a draft
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param fields body dto.UpdateDraftRequest true "Fields to set"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /drafts/{id} [patch]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.draftService.UpdateDraft(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Add a line to a draft
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.DraftResponse
// @Router /drafts/{id}/lines [post]
func (h *DraftHandler) AddLine(c *gin.Context) {
	resp, err := h.draftService.AddLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Change fields of a draft line
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param index path int true "Line index"
// @Param fields body dto.UpdateLineItemRequest true "Fields to set"
// @Success 200 {object} dto.DraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /drafts/{id}/lines/{index} [patch]
func (h *DraftHandler) UpdateLine(c *gin.Context) {
	index, err := lineIndexParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	resp, err := h.draftService.UpdateLine(c.Request.Context(), c.Param("id"), index, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Remove a draft line
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param index path int true "Line index"
// @Success 200 {object} dto.DraftResponse
// @Router /drafts/{id}/lines/{index} [delete]
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	index, err := lineIndexParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.draftService.RemoveLine(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Submit a draft
// @Description Creates or updates the invoice on the invoice API. The draft is kept when the API refuses it.
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.SubmitDraftResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /drafts/{id}/submit [post]
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	resp, err := h.draftService.SubmitDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Errorw("failed to submit draft", "draft_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// @Summary Discard a draft
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /drafts/{id} [delete]
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	if err := h.draftService.DiscardDraft(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "draft discarded"})
}
