package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motor-audit/internal/api/models"
	"motor-audit/internal/data"
	"motor-audit/internal/model"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondAuditError maps loader and engine errors onto HTTP responses.
func respondAuditError(c *gin.Context, err error) {
	var missing *data.MissingSourceError
	if errors.As(err, &missing) {
		respondError(c, http.StatusNotFound, "SOURCE_NOT_FOUND", err.Error(), map[string]interface{}{
			"path": missing.Path,
		})
		return
	}

	var malformed *model.MalformedRecordError
	if errors.As(err, &malformed) {
		details := map[string]interface{}{
			"source": malformed.Source,
			"line":   malformed.Line,
		}
		if malformed.Field != "" {
			details["field"] = malformed.Field
		}
		if malformed.Value != "" {
			details["value"] = malformed.Value
		}
		respondError(c, http.StatusUnprocessableEntity, "MALFORMED_RECORD", err.Error(), details)
		return
	}

	respondError(c, http.StatusInternalServerError, "AUDIT_ERROR", err.Error(), nil)
}
