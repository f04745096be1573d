package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ccemaildomain "github.com/signdesk/signdesk/internal/ccemail/domain"
)

func (s *Server) ListCCEmails(c *gin.Context) {
	var query struct {
		Page     string `form:"page"`
		Limit    string `form:"limit"`
		Search   string `form:"search"`
		OfficeID string `form:"officeId"`
		AgentID  string `form:"agentId"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	page, err := parseOptionalInt(query.Page)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	limit, err := parseOptionalInt(query.Limit)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ccemailSvc.List(c.Request.Context(), ccemaildomain.ListCCEmailsRequest{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(query.Search),
		OfficeID: strings.TrimSpace(query.OfficeID),
		AgentID:  strings.TrimSpace(query.AgentID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCCEmailByID(c *gin.Context) {
	resp, err := s.ccemailSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateCCEmail(c *gin.Context) {
	var req ccemaildomain.CreateCCEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ccemailSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateCCEmail(c *gin.Context) {
	var req ccemaildomain.UpdateCCEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ccemailSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCCEmail(c *gin.Context) {
	if err := s.ccemailSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "CC email removed"})
}
