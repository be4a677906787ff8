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

type profileRoutes struct {
	ps service.ProfileServiceI
	a  *auth.IdentityAuth
}

func NewProfileRoutes(handler *gin.RouterGroup, ps service.ProfileServiceI, a *auth.IdentityAuth) {
	r := &profileRoutes{ps: ps, a: a}
	h := handler.Group("/profile")
	h.Use(a.IdentityMiddleware())
	{
		h.POST("/", r.ResolveProfile)
	}
}

// ResolveProfile exchanges the bearer assertion for the local profile,
// creating the user on first sight.
func (r *profileRoutes) ResolveProfile(c *gin.Context) {
	log := logger.Logger()

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		log.Error("identity not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	profile, err := r.ps.ResolveProfile(c.Request.Context(), identity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSeed):
			log.Info("could not derive username seed", zap.String("subject_id", identity.SubjectID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not generate username"})
		case errors.Is(err, service.ErrAllocationExhausted):
			log.Info("username allocation exhausted", zap.String("subject_id", identity.SubjectID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not generate a unique username after multiple attempts"})
		case errors.Is(err, service.ErrCreationConflict):
			log.Error("user creation conflict", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user profile"})
		default:
			log.Error("failed to resolve profile", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":              profile.Username,
		"created_at":            profile.CreatedAt,
		"points_balance":        profile.PointsBalance,
		"total_earned":          profile.TotalEarned,
		"completed_offers":      profile.CompletedOffers,
		"total_referrals":       profile.TotalReferrals,
		"earnings_last_30_days": profile.EarningsLast30Days,
		"earnings_in_progress":  profile.EarningsInProgress,
	})
}
