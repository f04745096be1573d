package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
)

func (s *Server) ListOrders(c *gin.Context) {
	var query struct {
		Page             string `form:"page"`
		Limit            string `form:"limit"`
		Search           string `form:"search"`
		OfficeID         string `form:"officeId"`
		AgentID          string `form:"agentId"`
		InstallationType string `form:"installationType"`
		Status           string `form:"status"`
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

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListOrdersRequest{
		Page:             page,
		Limit:            limit,
		Search:           strings.TrimSpace(query.Search),
		OfficeID:         strings.TrimSpace(query.OfficeID),
		AgentID:          strings.TrimSpace(query.AgentID),
		InstallationType: strings.TrimSpace(query.InstallationType),
		Status:           strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var req orderdomain.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOrder(c *gin.Context) {
	if err := s.orderSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

func (s *Server) CheckReorderEligibility(c *gin.Context) {
	eligible, err := s.orderSvc.CheckReorderEligibility(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"eligible": eligible}})
}
