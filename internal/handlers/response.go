package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domagg "github.com/renthaus/enlistd/internal/domain/aggregates"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondAggregateError translates the aggregate error taxonomy into HTTP
// statuses. Unknown errors surface as 500 without leaking internals.
func RespondAggregateError(c *gin.Context, err error) {
	code := domagg.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case domagg.CodeValidation:
		status = http.StatusBadRequest
	case domagg.CodeUnauthorized:
		status = http.StatusForbidden
	case domagg.CodeNotFound:
		status = http.StatusNotFound
	case domagg.CodeConflict, domagg.CodeInvariantViolation, domagg.CodePreconditionFailed:
		status = http.StatusConflict
	case domagg.CodeRetryable, domagg.CodeInternal:
		status = http.StatusInternalServerError
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    string(code),
		},
	})
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
