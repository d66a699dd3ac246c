package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	activitydomain "github.com/modiatoukalord/kheops-sub000/internal/activity/domain"
)

type checkoutItemRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Amount      int64  `json:"amount"`
}

type checkoutRequest struct {
	ClientID    string                `json:"client_id"`
	ClientName  string                `json:"client_name"`
	Phone       string                `json:"phone"`
	PaymentType string                `json:"payment_type"`
	PaidAmount  int64                 `json:"paid_amount"`
	StartTime   string                `json:"start_time"`
	EndTime     string                `json:"end_time"`
	ContractID  string                `json:"contract_id"`
	BookingID   string                `json:"booking_id"`
	Items       []checkoutItemRequest `json:"items"`
}

// Checkout creates the activities for one client purchase, atomically with
// their ledger side effects.
func (s *Server) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	clientID, err := parseOptionalID(req.ClientID)
	if err != nil {
		AbortWithError(c, newValidationError("client_id", "invalid_client_id", "invalid client id"))
		return
	}
	contractID, err := parseOptionalID(req.ContractID)
	if err != nil {
		AbortWithError(c, newValidationError("contract_id", "invalid_contract_id", "invalid contract id"))
		return
	}
	bookingID, err := parseOptionalID(req.BookingID)
	if err != nil {
		AbortWithError(c, newValidationError("booking_id", "invalid_booking_id", "invalid booking id"))
		return
	}

	items := make([]activitydomain.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, activitydomain.CheckoutItem{
			Description: strings.TrimSpace(item.Description),
			Category:    strings.TrimSpace(item.Category),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	created, err := s.activitySvc.Checkout(c.Request.Context(), activitydomain.CheckoutRequest{
		ClientID:    clientID,
		ClientName:  strings.TrimSpace(req.ClientName),
		Phone:       strings.TrimSpace(req.Phone),
		PaymentType: activitydomain.PaymentType(strings.TrimSpace(req.PaymentType)),
		PaidAmount:  req.PaidAmount,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ContractID:  contractID,
		BookingID:   bookingID,
		Items:       items,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created, "count": len(created)})
}

// ListActivities returns the activity log, optionally filtered.
func (s *Server) ListActivities(c *gin.Context) {
	var query struct {
		Search string `form:"search"`
		Date   string `form:"date"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filter := activitydomain.Filter{Search: strings.TrimSpace(query.Search)}
	if raw := strings.TrimSpace(query.Date); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
			return
		}
		filter.Date = &day
	}

	records, err := s.activitySvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// DeleteActivity removes one activity. Irreversible; ledger entries remain.
func (s *Server) DeleteActivity(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_activity_id", "invalid activity id"))
		return
	}

	if err := s.activitySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TotalRevenue returns the aggregate revenue figure for the dashboard.
func (s *Server) TotalRevenue(c *gin.Context) {
	total, err := s.activitySvc.TotalRevenue(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_revenue": total})
}

// CancelBookingPayment deletes the booking's activities and resets its status.
func (s *Server) CancelBookingPayment(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_booking_id", "invalid booking id"))
		return
	}

	if err := s.activitySvc.CancelBookingPayment(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseOptionalID(raw string) (*snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
