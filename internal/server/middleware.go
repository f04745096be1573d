package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/signdesk/signdesk/internal/authctx"
)

const bearerPrefix = "Bearer "

// AuthRequired verifies the bearer token and injects the caller
// identity into the request context. Every handler behind it can rely
// on authctx.IdentityFromContext succeeding.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := snowflake.ParseString(claims.UserID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		identity := authctx.Identity{
			UserID: userID,
			Email:  claims.Email,
			Role:   claims.Role,
		}
		if claims.OfficeID != nil {
			officeID, err := snowflake.ParseString(*claims.OfficeID)
			if err != nil {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			identity.OfficeID = &officeID
		}

		c.Request = c.Request.WithContext(authctx.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// authorize gates a route on the enforcer decision for the caller role.
func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := authctx.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := s.authzSvc.Authorize(c.Request.Context(), identity.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
