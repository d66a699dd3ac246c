package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// ClientPoints returns a client's loyalty point balance.
func (s *Server) ClientPoints(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_client_id", "invalid client id"))
		return
	}

	balance, err := s.loyaltySvc.Balance(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_id": id.String(), "loyalty_points": balance})
}

type creditPointsRequest struct {
	Points int64 `json:"points"`
}

// CreditPoints grants loyalty points to a client and returns the new balance.
// Debits only ever happen through checkouts; this is the administrative
// counterpart for rewards and corrections.
func (s *Server) CreditPoints(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_client_id", "invalid client id"))
		return
	}

	var req creditPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.loyaltySvc.Credit(c.Request.Context(), id, req.Points); err != nil {
		AbortWithError(c, err)
		return
	}

	balance, err := s.loyaltySvc.Balance(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_id": id.String(), "loyalty_points": balance})
}
