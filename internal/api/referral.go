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

type referralRoutes struct {
	rs service.ReferralServiceI
	a  *auth.IdentityAuth
}

func NewReferralRoutes(handler *gin.RouterGroup, rs service.ReferralServiceI, a *auth.IdentityAuth) {
	r := &referralRoutes{rs: rs, a: a}
	h := handler.Group("/referral")
	h.Use(a.IdentityMiddleware())
	{
		h.GET("/", r.GetReferralInfo)
	}
}

func (r *referralRoutes) GetReferralInfo(c *gin.Context) {
	log := logger.Logger()

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		log.Error("identity not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	info, err := r.rs.GetReferralInfo(c.Request.Context(), identity.SubjectID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to get referral info", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get referral info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referral_code": info.ReferralCode,
		"referral_link": info.ReferralLink,
	})
}
