package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/signdesk/signdesk/internal/auth/domain"
	"github.com/signdesk/signdesk/internal/auth/token"
	"github.com/signdesk/signdesk/internal/authorization"
	ccemaildomain "github.com/signdesk/signdesk/internal/ccemail/domain"
	officedomain "github.com/signdesk/signdesk/internal/office/domain"
	orderdomain "github.com/signdesk/signdesk/internal/order/domain"
	reorderdomain "github.com/signdesk/signdesk/internal/reorder/domain"
	"github.com/signdesk/signdesk/internal/report"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	vendordomain "github.com/signdesk/signdesk/internal/vendors/domain"
	"gorm.io/gorm"
)

// errorResponse is the envelope every failed request gets: a human
// readable message plus a stable machine code clients can branch on.
type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return ErrInvalidRequest
}

func mapError(err error) (int, errorResponse) {
	switch {
	// 400
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorResponse{Message: "Invalid request body", Code: "INVALID_REQUEST"}
	case errors.Is(err, orderdomain.ErrOfficeRequired):
		return http.StatusBadRequest, errorResponse{Message: "Office is required", Code: "OFFICE_REQUIRED"}
	case errors.Is(err, reorderdomain.ErrNotEligible):
		return http.StatusBadRequest, errorResponse{Message: "Order is not eligible for reorder", Code: "INELIGIBLE_FOR_REORDER"}
	case isInvalidIDError(err):
		return http.StatusBadRequest, errorResponse{Message: "Invalid id", Code: "INVALID_ID"}
	case errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, reorderdomain.ErrInvalidStatus):
		return http.StatusBadRequest, errorResponse{Message: "Invalid status", Code: "INVALID_STATUS"}
	case errors.Is(err, orderdomain.ErrInvalidInstallationType),
		errors.Is(err, reorderdomain.ErrInvalidInstallationType):
		return http.StatusBadRequest, errorResponse{Message: "Invalid installation type", Code: "INVALID_INSTALLATION_TYPE"}
	case errors.Is(err, authdomain.ErrInvalidRole):
		return http.StatusBadRequest, errorResponse{Message: "Invalid role", Code: "INVALID_ROLE"}
	case errors.Is(err, authdomain.ErrInvalidOffice):
		return http.StatusBadRequest, errorResponse{Message: "Invalid office", Code: "INVALID_OFFICE"}
	case errors.Is(err, ccemaildomain.ErrInvalidEmail):
		return http.StatusBadRequest, errorResponse{Message: "Invalid email address", Code: "INVALID_EMAIL"}
	case errors.Is(err, officedomain.ErrInvalidName),
		errors.Is(err, vendordomain.ErrInvalidName):
		return http.StatusBadRequest, errorResponse{Message: "Name is required", Code: "INVALID_NAME"}
	case errors.Is(err, report.ErrInvalidFilename):
		return http.StatusBadRequest, errorResponse{Message: "Invalid report filename", Code: "INVALID_FILENAME"}

	// 401
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: "Invalid email or password", Code: "INVALID_CREDENTIALS"}
	case isUnauthenticatedError(err):
		return http.StatusUnauthorized, errorResponse{Message: "Authentication required", Code: "UNAUTHENTICATED"}

	// 403
	case errors.Is(err, orderdomain.ErrAccessDenied),
		errors.Is(err, reorderdomain.ErrAccessDenied),
		errors.Is(err, ccemaildomain.ErrAccessDenied):
		return http.StatusForbidden, errorResponse{Message: "Access denied", Code: "ACCESS_DENIED"}
	case errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authorization.ErrInvalidRole),
		errors.Is(err, authorization.ErrInvalidObject),
		errors.Is(err, authorization.ErrInvalidAction):
		return http.StatusForbidden, errorResponse{Message: "Forbidden", Code: "FORBIDDEN"}

	// 404
	case errors.Is(err, reorderdomain.ErrOriginalNotFound):
		return http.StatusNotFound, errorResponse{Message: "Original order not found", Code: "ORIGINAL_ORDER_NOT_FOUND"}
	case errors.Is(err, report.ErrNoData):
		return http.StatusNotFound, errorResponse{Message: "No data found for the selected filters", Code: "NO_REPORT_DATA"}
	case errors.Is(err, report.ErrFileNotFound):
		return http.StatusNotFound, errorResponse{Message: "Report file not found", Code: "FILE_NOT_FOUND"}
	case isNotFoundError(err):
		return http.StatusNotFound, errorResponse{Message: "Not found", Code: "NOT_FOUND"}

	// 409
	case errors.Is(err, authdomain.ErrEmailTaken):
		return http.StatusConflict, errorResponse{Message: "Email is already registered", Code: "EMAIL_TAKEN"}
	case errors.Is(err, ccemaildomain.ErrDuplicate):
		return http.StatusConflict, errorResponse{Message: "An active CC email already exists for this office and agent", Code: "DUPLICATE_CC_EMAIL"}

	default:
		return http.StatusInternalServerError, errorResponse{Message: "Internal server error", Code: "INTERNAL_ERROR"}
	}
}

func isInvalidIDError(err error) bool {
	switch {
	case errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, reorderdomain.ErrInvalidID),
		errors.Is(err, ccemaildomain.ErrInvalidID),
		errors.Is(err, officedomain.ErrInvalidID),
		errors.Is(err, vendordomain.ErrInvalidID),
		errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, report.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isUnauthenticatedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, authdomain.ErrUnauthenticated),
		errors.Is(err, orderdomain.ErrUnauthenticated),
		errors.Is(err, reorderdomain.ErrUnauthenticated),
		errors.Is(err, ccemaildomain.ErrUnauthenticated),
		errors.Is(err, userdomain.ErrUnauthenticated):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, reorderdomain.ErrNotFound),
		errors.Is(err, ccemaildomain.ErrNotFound),
		errors.Is(err, officedomain.ErrNotFound),
		errors.Is(err, vendordomain.ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
