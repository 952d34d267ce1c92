package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/apperror"
	"github.com/oksasatya/go-task-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/response"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

// HeaderResourceID names the header that carries the target resource id.
const HeaderResourceID = "id"

// writeError maps err onto the error taxonomy. Unexpected failures are logged
// with their detail and answered with a generic message.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"user_id":    middleware.UserID(c),
		})
	}
	response.Error(c, status, apperror.PublicMessage(err), nil)
}

func writeBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, apperror.ErrValidation.Error(), validation.ToDetails(err))
}

// resourceID reads and validates the id header. On failure the response is
// already written.
func resourceID(c *gin.Context) (string, bool) {
	id := c.GetHeader(HeaderResourceID)
	if id == "" {
		response.Error(c, http.StatusBadRequest, apperror.ErrValidation.Error(), map[string]string{HeaderResourceID: "is required"})
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.ErrValidation.Error(), map[string]string{HeaderResourceID: "must be a valid UUID"})
		return "", false
	}
	return id, true
}
