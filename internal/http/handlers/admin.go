package handlers

import (
	"net/http"

	"rpsduel/internal/engine"
	"rpsduel/internal/logger"

	"github.com/gin-gonic/gin"
)

type configUpdateRequest struct {
	EntryFee           *int64 `json:"entry_fee"`
	SecondsUntilReveal *int64 `json:"seconds_until_reveal"`
}

// UpdateConfig applies policy changes. Each field is optional; bounds are
// checked up front so a bad pair changes nothing.
func (h *Handler) UpdateConfig(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req configUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.EntryFee == nil && req.SecondsUntilReveal == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	if req.EntryFee != nil && *req.EntryFee < 0 {
		fail(c, engine.ErrOutOfRange)
		return
	}
	if req.SecondsUntilReveal != nil &&
		(*req.SecondsUntilReveal < engine.MinRevealWindowSeconds || *req.SecondsUntilReveal > engine.MaxRevealWindowSeconds) {
		fail(c, engine.ErrOutOfRange)
		return
	}

	if req.EntryFee != nil {
		if err := h.Engine.SetEntryFee(addr, *req.EntryFee); err != nil {
			fail(c, err)
			return
		}
	}
	if req.SecondsUntilReveal != nil {
		if err := h.Engine.SetSecondsUntilReveal(addr, *req.SecondsUntilReveal); err != nil {
			fail(c, err)
			return
		}
	}

	logger.Info("config updated", "by", addr)
	c.JSON(http.StatusOK, h.Engine.Config())
}

type mintRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}

// Mint credits an account out of thin air. Faucet for development and for
// topping up play balances; admin only.
func (h *Handler) Mint(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	if err := h.Admins.RequireAdmin(addr); err != nil {
		fail(c, err)
		return
	}

	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address and amount are required"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	balance, err := h.Ledger.Mint(c.Request.Context(), req.Address, req.Amount)
	if err != nil {
		logger.Error("mint failed", "address", req.Address, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mint failed"})
		return
	}

	logger.Info("minted", "by", addr, "to", req.Address, "amount", req.Amount)
	c.JSON(http.StatusOK, gin.H{"address": req.Address, "balance": balance})
}

// Destroy halts the engine. Open games keep their settlement paths so
// escrowed funds can drain; creating and joining stop immediately.
func (h *Handler) Destroy(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	if err := h.Engine.Destroy(addr); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"halted": true})
}
