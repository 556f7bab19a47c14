package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eurum-fi/eurum/forwarder"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/logger"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError is a helper function that combines logging and error response
// It logs the error with the given message and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	// Get correlation ID from context
	correlationID := ""
	if id, exists := c.Get("correlationID"); exists {
		correlationID, _ = id.(string)
	}

	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	)

	// Include correlation ID in error response for debugging
	response := struct {
		Error         string `json:"error"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}{
		Error:         message,
		CorrelationID: correlationID,
	}

	c.JSON(statusCode, response)
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage is a helper function that sends a success message
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// handleLedgerError maps the ledger's failure taxonomy onto HTTP statuses.
func handleLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized),
		errors.Is(err, ledger.ErrNotAuthorizedToResume):
		sendError(c, http.StatusForbidden, err.Error(), err)
	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrAllowanceExceeded):
		sendError(c, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, ledger.ErrBlacklisted),
		errors.Is(err, ledger.ErrPaused),
		errors.Is(err, ledger.ErrOperationsSuspended),
		errors.Is(err, ledger.ErrForwardingNotTrusted),
		errors.Is(err, ledger.ErrForwardedCallNotAllowed):
		sendError(c, http.StatusConflict, err.Error(), err)
	case errors.Is(err, ledger.ErrInvalidSignature),
		errors.Is(err, ledger.ErrExpired),
		errors.Is(err, ledger.ErrNonceMismatch),
		errors.Is(err, ledger.ErrInvalidRoleTransition),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, forwarder.ErrUnregisteredDomain),
		errors.Is(err, forwarder.ErrUnregisteredType):
		sendError(c, http.StatusBadRequest, err.Error(), err)
	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
