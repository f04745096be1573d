package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
)

func (s *Server) ListReordersByOrder(c *gin.Context) {
	resp, err := s.reorderSvc.ListByOrder(c.Request.Context(), strings.TrimSpace(c.Param("orderId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateReorder(c *gin.Context) {
	var req reorderdomain.CreateReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reorderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateReorder(c *gin.Context) {
	var req reorderdomain.UpdateReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reorderSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteReorder(c *gin.Context) {
	if err := s.reorderSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reorder deleted"})
}
