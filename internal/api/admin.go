package api

import (
	"errors"
	"net/http"

	"earnhub_backend/internal/middleware"
	"earnhub_backend/internal/service"
	"earnhub_backend/pkg/auth"
	"earnhub_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type adminRoutes struct {
	ts service.TaskServiceI
	a  *auth.IdentityAuth
}

func NewAdminRoutes(handler *gin.RouterGroup, ts service.TaskServiceI, a *auth.IdentityAuth, authz *middleware.Authorization) {
	r := &adminRoutes{ts: ts, a: a}
	h := handler.Group("/admin")
	h.Use(a.IdentityMiddleware())
	h.Use(authz.AdminOnly())
	{
		h.POST("/credit", r.CreditTask)
	}
}

type CreditTaskRequest struct {
	Username string `json:"username" binding:"required"`
	Points   int64  `json:"points" binding:"required,min=1"`
	TaskName string `json:"task_name" binding:"required"`
}

// CreditTask records a fulfilled task and its earning for a user. This is
// the operator-side write path that feeds the ledger the profile view sums.
func (r *adminRoutes) CreditTask(c *gin.Context) {
	log := logger.Logger()

	var req CreditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := r.ts.CreditTask(c.Request.Context(), req.Username, req.Points, req.TaskName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredit):
			c.JSON(http.StatusBadRequest, gin.H{"error": "credit amount must be positive"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			log.Error("failed to credit task", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to credit task"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"username": req.Username,
		"points":   req.Points,
	})
}
