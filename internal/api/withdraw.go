package api

import (
	"errors"
	"net/http"

	"earnhub_backend/internal/model"
	"earnhub_backend/internal/service"
	"earnhub_backend/pkg/auth"
	"earnhub_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type withdrawRoutes struct {
	ws service.WithdrawServiceI
	a  *auth.IdentityAuth
}

func NewWithdrawRoutes(handler *gin.RouterGroup, ws service.WithdrawServiceI, a *auth.IdentityAuth, limit gin.HandlerFunc) {
	r := &withdrawRoutes{ws: ws, a: a}
	h := handler.Group("/withdraw")
	h.Use(a.IdentityMiddleware())
	h.Use(limit)
	{
		h.POST("/", r.SubmitWithdrawal)
	}
}

type WithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`

	Network        string `json:"network"`
	MobileNumber   string `json:"mobile_number"`
	AccountName    string `json:"account_name"`
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	BitcoinAddress string `json:"bitcoin_address"`
}

func (r *withdrawRoutes) SubmitWithdrawal(c *gin.Context) {
	log := logger.Logger()

	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		log.Error("identity not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	w := &model.WithdrawalRequest{
		SubjectID:      identity.SubjectID,
		Amount:         req.Amount,
		PaymentMethod:  model.PaymentMethod(req.PaymentMethod),
		Network:        req.Network,
		MobileNumber:   req.MobileNumber,
		AccountName:    req.AccountName,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		BitcoinAddress: req.BitcoinAddress,
	}

	err := r.ws.Submit(c.Request.Context(), w)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWithdrawal):
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			log.Error("failed to submit withdrawal", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process withdrawal, please try again later"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "withdrawal request submitted successfully",
	})
}
