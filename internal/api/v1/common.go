package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/service"
)

// invoiceNumberParam reads the :numero path parameter
func invoiceNumberParam(c *gin.Context) (int64, error) {
	return service.ParseInvoiceNumber(c.Param("numero"))
}

// lineIndexParam reads the zero-based :index path parameter
func lineIndexParam(c *gin.Context) (int, error) {
	raw := c.Param("index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, ierr.NewErrorf("invalid line index %q", raw).
			WithHint("Please provide a valid line index").
			WithReportableDetails(map[string]any{"index": raw}).
			Mark(ierr.ErrValidation)
	}
	return index, nil
}

func bindError(err error) error {
	return ierr.WithError(err).
		WithHint("Please check the request payload").
		Mark(ierr.ErrValidation)
}
