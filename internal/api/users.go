package api

import (
	"errors"
	"net/http"

	"earnhub_backend/internal/service"
	"earnhub_backend/pkg/auth"
	"earnhub_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type userRoutes struct {
	ps service.ProfileServiceI
	a  *auth.IdentityAuth
}

func NewUserRoutes(handler *gin.RouterGroup, ps service.ProfileServiceI, a *auth.IdentityAuth) {
	r := &userRoutes{ps: ps, a: a}
	h := handler.Group("/users")
	h.Use(a.IdentityMiddleware())
	{
		h.GET("/me", r.GetCurrentUser)
	}
}

func (r *userRoutes) GetCurrentUser(c *gin.Context) {
	log := logger.Logger()

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		log.Error("identity not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user, err := r.ps.GetUser(c.Request.Context(), identity.SubjectID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no user associated with the provided subject"})
			return
		}
		log.Error("failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"points_balance": user.PointsBalance,
		"created_at":     user.CreatedAt,
	})
}
