// README: Base handler utilities (JSON helpers, validation, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"carpools/internal/modules/drive"
	"carpools/internal/modules/rider"
)

var validate = validator.New()

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// bindAndValidate decodes JSON and runs struct validation; it writes the
// 400 itself and reports whether the handler may proceed.
func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := validate.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, drive.ErrBadRequest), errors.Is(err, rider.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, drive.ErrInvalidAddress), errors.Is(err, drive.ErrOutsideServiceArea):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, drive.ErrNotFound), errors.Is(err, rider.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, drive.ErrDriveFull):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
