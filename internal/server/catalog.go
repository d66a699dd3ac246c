package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCategories returns the activity category catalog.
func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.catalogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}
