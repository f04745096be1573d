package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/signdesk/signdesk/internal/report"
)

type reportFilterRequest struct {
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	OfficeID         string `json:"officeId"`
	VendorID         string `json:"vendorId"`
	InstallationType string `json:"installationType"`
}

func (r reportFilterRequest) toFilter() (report.Filter, error) {
	startDate, err := parseOptionalTime(r.StartDate, false)
	if err != nil {
		return report.Filter{}, invalidRequestError()
	}
	endDate, err := parseOptionalTime(r.EndDate, true)
	if err != nil {
		return report.Filter{}, invalidRequestError()
	}

	return report.Filter{
		StartDate:        startDate,
		EndDate:          endDate,
		OfficeID:         strings.TrimSpace(r.OfficeID),
		VendorID:         strings.TrimSpace(r.VendorID),
		InstallationType: strings.TrimSpace(r.InstallationType),
	}, nil
}

func (s *Server) PreviewReport(c *gin.Context) {
	var req reportFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.Preview(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GenerateReport(c *gin.Context) {
	var req reportFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.reportSvc.Generate(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadReport(c *gin.Context) {
	path, err := s.reportSvc.Resolve(strings.TrimSpace(c.Param("filename")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.FileAttachment(path, strings.TrimSpace(c.Param("filename")))
}
