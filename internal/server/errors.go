package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/modiatoukalord/kheops-sub000/internal/activity/domain"
	bookingdomain "github.com/modiatoukalord/kheops-sub000/internal/booking/domain"
	contractdomain "github.com/modiatoukalord/kheops-sub000/internal/contract/domain"
	installmentdomain "github.com/modiatoukalord/kheops-sub000/internal/installment/domain"
	ledgerdomain "github.com/modiatoukalord/kheops-sub000/internal/ledger/domain"
	loyaltydomain "github.com/modiatoukalord/kheops-sub000/internal/loyalty/domain"
	"github.com/modiatoukalord/kheops-sub000/internal/observability/logger"
	"go.uber.org/zap"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

var ErrNotFound = &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "malformed request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// statusByErr maps domain sentinels to HTTP statuses. Everything unmapped is
// a persistence or programming failure and surfaces as a 500.
var statusByErr = map[error]int{
	activitydomain.ErrInvalidClientName:  http.StatusBadRequest,
	activitydomain.ErrClientRequired:     http.StatusBadRequest,
	activitydomain.ErrEmptyItems:         http.StatusBadRequest,
	activitydomain.ErrInvalidQuantity:    http.StatusBadRequest,
	activitydomain.ErrInvalidUnitPrice:   http.StatusBadRequest,
	activitydomain.ErrAmountMismatch:     http.StatusBadRequest,
	activitydomain.ErrInvalidPaymentType: http.StatusBadRequest,
	activitydomain.ErrInvalidPaidAmount:  http.StatusBadRequest,
	activitydomain.ErrUnknownCategory:    http.StatusUnprocessableEntity,
	activitydomain.ErrActivityNotFound:   http.StatusNotFound,
	activitydomain.ErrNothingToCancel:    http.StatusNotFound,

	installmentdomain.ErrInvalidAmount:    http.StatusBadRequest,
	installmentdomain.ErrOverpayment:      http.StatusConflict,
	installmentdomain.ErrActivityNotFound: http.StatusNotFound,
	installmentdomain.ErrNotInstallment:   http.StatusConflict,

	loyaltydomain.ErrInsufficientPoints: http.StatusPaymentRequired,
	loyaltydomain.ErrInvalidPoints:      http.StatusBadRequest,
	loyaltydomain.ErrClientNotFound:     http.StatusNotFound,

	bookingdomain.ErrBookingNotFound:   http.StatusNotFound,
	bookingdomain.ErrInvalidStatus:     http.StatusBadRequest,
	contractdomain.ErrContractNotFound: http.StatusNotFound,
	ledgerdomain.ErrInvalidType:        http.StatusBadRequest,
	ledgerdomain.ErrInvalidAmount:      http.StatusBadRequest,
	ledgerdomain.ErrInvalidOccurredAt:  http.StatusBadRequest,
}

// AbortWithError converts any error into the JSON error envelope. Operation
// failures never crash the session; unexpected ones are logged and hidden.
func AbortWithError(c *gin.Context, err error) {
	var typed *apiError
	if errors.As(err, &typed) {
		c.AbortWithStatusJSON(typed.Status, gin.H{"error": typed})
		return
	}

	for sentinel, status := range statusByErr {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
				"code":    sentinel.Error(),
				"message": sentinel.Error(),
			}})
			return
		}
	}

	logger.FromContext(c.Request.Context()).Error("unhandled request error", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":    "internal_error",
		"message": "internal error",
	}})
}
