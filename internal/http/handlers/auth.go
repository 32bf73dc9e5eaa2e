package handlers

import (
	"net/http"

	"rpsduel/internal/logger"
	"rpsduel/internal/service"

	"github.com/gin-gonic/gin"
)

type authRequest struct {
	Address string `json:"address" binding:"required"`
}

// Auth issues a bearer token for an address, creating the account with the
// starting balance on first sight.
func (h *Handler) Auth(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	created, err := h.Ledger.EnsureAccount(c.Request.Context(), req.Address, h.StartingBalance)
	if err != nil {
		logger.Error("auth: ensure account failed", "address", req.Address, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not provision account"})
		return
	}
	if created {
		logger.Info("account provisioned", "address", req.Address, "starting_balance", h.StartingBalance)
	}

	token, err := service.GenerateJWT(req.Address)
	if err != nil {
		logger.Error("auth: token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "address": req.Address, "created": created})
}

// Me returns the caller's address, balance, and play record.
func (h *Handler) Me(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	balance, err := h.Ledger.BalanceOf(c.Request.Context(), addr)
	if err != nil {
		logger.Error("me: balance lookup failed", "address", addr, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": addr,
		"balance": balance,
		"stats":   h.Engine.Stats(addr),
		"admin":   h.Admins.IsAdmin(addr),
	})
}

// Stats returns the play record for any address.
func (h *Handler) Stats(c *gin.Context) {
	addr := c.Param("address")
	if addr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	c.JSON(http.StatusOK, h.Engine.Stats(addr))
}
