package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type recordInstallmentRequest struct {
	Amount int64 `json:"amount"`
}

// RecordInstallment applies a partial payment to an installment activity.
func (s *Server) RecordInstallment(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_activity_id", "invalid activity id"))
		return
	}

	var req recordInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.installmentSvc.Record(c.Request.Context(), id, req.Amount); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
