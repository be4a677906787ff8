package middleware

import (
	"net/http"

	"earnhub_backend/pkg/auth"
	"earnhub_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Authorization struct {
	adminSubjects map[string]struct{}
}

// NewAuthorization builds the admin gate from the configured subject list.
// The capability check lives in config, not in a hardcoded identity.
func NewAuthorization(adminSubjects []string) *Authorization {
	subjects := make(map[string]struct{}, len(adminSubjects))
	for _, s := range adminSubjects {
		subjects[s] = struct{}{}
	}
	return &Authorization{adminSubjects: subjects}
}

func (a *Authorization) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		identity, ok := auth.IdentityFromContext(c)
		if !ok {
			log.Error("identity not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if _, isAdmin := a.adminSubjects[identity.SubjectID]; !isAdmin {
			log.Info("unauthorized access attempt to admin endpoint",
				zap.String("subject_id", identity.SubjectID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}
