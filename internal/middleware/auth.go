package middleware

import (
	"net/http"
	"strings"

	"shopflow/internal/dto"
	"shopflow/internal/service"
	"shopflow/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRequired validates the Bearer token and injects the bound user id into
// the request context. Role checks happen later, in the services, against the
// live user row.
func AuthRequired(tokens *token.HSProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		raw, ok := ExtractBearerToken(authz)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}

		userID, err := tokens.ParseAndValidate(raw)
		if err != nil {
			log.Debug("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		c.Request = c.Request.WithContext(service.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// ExtractBearerToken pulls the token out of an Authorization header,
// tolerating stray quotes around the value.
func ExtractBearerToken(authz string) (string, bool) {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.Trim(strings.TrimSpace(parts[1]), `"'`), true
}
