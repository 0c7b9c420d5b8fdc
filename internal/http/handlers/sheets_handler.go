// README: Roster spreadsheet import endpoint.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RosterSource is the sheet-reading surface the handler consumes.
type RosterSource interface {
	Records(ctx context.Context, spreadsheetID string) ([]map[string]string, error)
}

type SheetsHandler struct {
	source        RosterSource
	spreadsheetID string
}

func NewSheetsHandler(source RosterSource, spreadsheetID string) *SheetsHandler {
	return &SheetsHandler{source: source, spreadsheetID: spreadsheetID}
}

func (h *SheetsHandler) Fetch(c *gin.Context) {
	if h.source == nil || h.spreadsheetID == "" {
		writeError(c, http.StatusServiceUnavailable, "roster import is not configured")
		return
	}
	records, err := h.source.Records(c.Request.Context(), h.spreadsheetID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}
