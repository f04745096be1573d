package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	"github.com/signdesk/signdesk/internal/reference"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	vendordomain "github.com/signdesk/signdesk/internal/vendors/domain"
)

func (s *Server) ListOffices(c *gin.Context) {
	resp, err := s.officeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateOffice(c *gin.Context) {
	var req officedomain.CreateOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.officeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListAgents(c *gin.Context) {
	resp, err := s.userSvc.ListAgents(c.Request.Context(), userdomain.ListAgentsRequest{
		OfficeID: strings.TrimSpace(c.Query("officeId")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListVendors(c *gin.Context) {
	resp, err := s.vendorSvc.List(c.Request.Context(), vendordomain.ListVendorsRequest{
		ZipCode: strings.TrimSpace(c.Query("zip")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateVendor(c *gin.Context) {
	var req vendordomain.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vendorSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateVendor(c *gin.Context) {
	var req vendordomain.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vendorSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInstallationTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": reference.InstallationTypes()})
}

func (s *Server) ListPropertyTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": reference.PropertyTypes()})
}

func (s *Server) ListStates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": reference.States()})
}
