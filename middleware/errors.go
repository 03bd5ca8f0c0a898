package middleware

import (
	"log"
	"net/http"

	"geocheckin/errors"
	"geocheckin/response"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if appErr := errors.GetAppError(err); appErr != nil {
			response.Fail(c, StatusFor(appErr.Code), string(appErr.Code), appErr.Message, nil)
			return
		}

		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		response.ServerError(c)
	}
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken, errors.ErrCodeInvalidLogin:
		return http.StatusUnauthorized
	case errors.ErrCodeInvalidRole:
		return http.StatusForbidden
	case errors.ErrCodeUserNotFound, errors.ErrCodeSiteNotFound, errors.ErrCodeDBNotFound:
		return http.StatusNotFound
	case errors.ErrCodeEmailInUse, errors.ErrCodeSiteExists, errors.ErrCodeDBDuplicate, errors.ErrCodeScanInProgress:
		return http.StatusConflict
	case errors.ErrCodeInvalidPassword, errors.ErrCodeInvalidEmail, errors.ErrCodeInvalidSiteID,
		errors.ErrCodeInvalidPayload, errors.ErrCodeInvalidPos, errors.ErrCodeValidation,
		errors.ErrCodeRequiredField, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeSiteMisconfigured:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeOutOfRange:
		return http.StatusForbidden
	case errors.ErrCodeUploadFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
