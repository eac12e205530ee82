package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"person-registry-api/internal/domain/person"
)

const (
	msgValidation = "Validation failed for one or more fields."
	msgMalformed  = "Malformed JSON request or invalid data type. Please check your request body syntax and data types."
	msgUnexpected = "An unexpected error occurred."
)

var errMalformedBody = errors.New("malformed request body")

type (
	// ErrorResponse is the body of every 4xx/5xx answer.
	ErrorResponse struct {
		Status  int               `json:"status"`
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	}

	ValidationError struct {
		Fields map[string]string
	}
)

func (e *ValidationError) Error() string { return msgValidation }

func invalidField(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ToErrorResponse maps the closed set of request failures to their HTTP
// shape. Anything unknown becomes a 500 without internal detail.
func ToErrorResponse(err error) ErrorResponse {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		return ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   http.StatusText(http.StatusBadRequest),
			Message: msgValidation,
			Details: verr.Fields,
		}
	case errors.Is(err, errMalformedBody):
		return ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   http.StatusText(http.StatusBadRequest),
			Message: msgMalformed,
		}
	case errors.Is(err, person.ErrCPFAlreadyExists):
		return ErrorResponse{
			Status:  http.StatusConflict,
			Error:   "Data Conflict",
			Message: err.Error(),
		}
	case errors.Is(err, person.ErrCPFMismatch):
		return ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "CPF Mismatch Error",
			Message: err.Error(),
		}
	case errors.Is(err, person.ErrPersonNotFound):
		return ErrorResponse{
			Status:  http.StatusNotFound,
			Error:   http.StatusText(http.StatusNotFound),
			Message: err.Error(),
		}
	}

	return UnexpectedErrorResponse()
}

func UnexpectedErrorResponse() ErrorResponse {
	return ErrorResponse{
		Status:  http.StatusInternalServerError,
		Error:   http.StatusText(http.StatusInternalServerError),
		Message: msgUnexpected,
	}
}

// writeError is the single exit for failed requests.
func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	resp := ToErrorResponse(err)
	if resp.Status == http.StatusInternalServerError {
		logger.Error(op+" error",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(resp.Status, resp)
}
