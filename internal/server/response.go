package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/export"
	"github.com/abhisek/teachteam/internal/llm"
	"github.com/abhisek/teachteam/internal/session"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondErr maps domain errors onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	var (
		rateLimit *llm.ErrRateLimit
		missing   *llm.ErrMissingCredential
	)
	switch {
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrConflict):
		RespondError(c, http.StatusConflict, "session_busy", err)
	case errors.Is(err, session.ErrEmptyInput):
		RespondError(c, http.StatusBadRequest, "empty_input", err)
	case errors.Is(err, session.ErrProgressOutOfRange):
		RespondError(c, http.StatusBadRequest, "progress_out_of_range", err)
	case errors.Is(err, agents.ErrUnknownAgent):
		RespondError(c, http.StatusNotFound, "unknown_agent", err)
	case errors.Is(err, export.ErrUnknownTarget):
		RespondError(c, http.StatusBadRequest, "unknown_target", err)
	case errors.As(err, &missing):
		RespondError(c, http.StatusServiceUnavailable, "missing_credential", err)
	case errors.As(err, &rateLimit):
		RespondError(c, http.StatusTooManyRequests, "rate_limited", err)
	default:
		RespondError(c, http.StatusBadGateway, "generation_failed", err)
	}
}
