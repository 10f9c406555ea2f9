package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// ListInvoices godoc
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /factures [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	resp, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SearchInvoices godoc
// @Summary Search invoices by number
// @Description An unknown number returns an empty list
// @Tags Invoices
// @Produce json
// @Param numero query string true "Invoice number"
// @Success 200 {object} dto.SearchInvoicesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /factures/search [get]
func (h *InvoiceHandler) SearchInvoices(c *gin.Context) {
	resp, err := h.invoiceService.SearchInvoices(c.Request.Context(), c.Query("numero"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoice godoc
// @Summary Get an invoice by number
// @Tags Invoices
// @Produce json
// @Param numero path int true "Invoice number"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /factures/{numero} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	number, err := invoiceNumberParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.GetInvoice(c.Request.Context(), number)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoicePDF godoc
// @Summary Download an invoice as PDF
// @Tags Invoices
// @Produce application/pdf
// @Param numero path int true "Invoice number"
// @Success 200 {file} file
// @Failure 404 {object} ierr.ErrorResponse
// @Router /factures/{numero}/pdf [get]
func (h *InvoiceHandler) GetInvoicePDF(c *gin.Context) {
	number, err := invoiceNumberParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	out, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), number)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=facture-%d.pdf", number))
	c.Data(http.StatusOK, "application/pdf", out)
}
