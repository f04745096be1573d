package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
)

func (s *Server) ListSignRequests(c *gin.Context) {
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

	resp, err := s.orderSvc.ListSignRequests(c.Request.Context(), orderdomain.ListSignRequestsRequest{
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

func (s *Server) SignRequestStats(c *gin.Context) {
	resp, err := s.orderSvc.Stats(c.Request.Context(), orderdomain.StatsRequest{
		OfficeID: strings.TrimSpace(c.Query("officeId")),
		AgentID:  strings.TrimSpace(c.Query("agentId")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
