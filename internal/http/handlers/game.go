package handlers

import (
	"errors"
	"net/http"

	"rpsduel/internal/domain"
	"rpsduel/internal/game"
	"rpsduel/internal/logger"
	"rpsduel/internal/repository"

	"github.com/gin-gonic/gin"
)

type commitmentRequest struct {
	Move   string `json:"move" binding:"required"`
	Secret string `json:"secret"`
}

// Commitment computes the commitment ID for a move and secret, minting a
// fresh secret when the caller does not supply one. The server never stores
// either; the caller must keep the secret to reveal later.
func (h *Handler) Commitment(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req commitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "move is required"})
		return
	}
	if req.Secret == "" {
		req.Secret = game.NewSecret()
	}

	id, err := h.Engine.Commit(addr, domain.ParseMove(req.Move), req.Secret)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commitment": id, "secret": req.Secret})
}

type createRequest struct {
	Commitment        string `json:"commitment"`
	Opponent          string `json:"opponent"`
	SecondsLeftToJoin int64  `json:"seconds_left_to_join" binding:"required"`
	Wager             int64  `json:"wager"`
	UseWinnings       bool   `json:"use_winnings"`
}

// CreateGame opens a game under the caller's commitment ID.
func (h *Handler) CreateGame(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Commitment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commitment is required"})
		return
	}

	g, err := h.Engine.CreateGame(c.Request.Context(), addr, req.Commitment, req.Opponent, req.SecondsLeftToJoin, req.Wager, req.UseWinnings)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gameView(g))
}

type joinRequest struct {
	GameID      string `json:"game_id" binding:"required"`
	Move        string `json:"move" binding:"required"`
	Wager       int64  `json:"wager"`
	UseWinnings bool   `json:"use_winnings"`
}

// JoinGame plays the opponent's move into an open game.
func (h *Handler) JoinGame(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id and move are required"})
		return
	}

	g, err := h.Engine.JoinGame(c.Request.Context(), addr, req.GameID, domain.ParseMove(req.Move), req.Wager, req.UseWinnings)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gameView(g))
}

type revealRequest struct {
	Move   string `json:"move" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// RevealMove settles a joined game by reopening the caller's commitment.
func (h *Handler) RevealMove(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req revealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "move and secret are required"})
		return
	}

	g, err := h.Engine.RevealMove(c.Request.Context(), addr, domain.ParseMove(req.Move), req.Secret)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gameView(g))
}

type gameIDRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

// CancelGame refunds an unjoined game after its join deadline.
func (h *Handler) CancelGame(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req gameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id is required"})
		return
	}

	if err := h.Engine.CancelGame(c.Request.Context(), addr, req.GameID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": req.GameID, "cancelled": true})
}

// ClaimTotalWagered forfeits a silent creator after the reveal deadline.
func (h *Handler) ClaimTotalWagered(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req gameIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id is required"})
		return
	}

	if err := h.Engine.ClaimTotalWagered(c.Request.Context(), addr, req.GameID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": req.GameID, "claimed": true})
}

// GetGame returns a live game snapshot, falling back to the archive for
// games the engine has already settled and persisted.
func (h *Handler) GetGame(c *gin.Context) {
	id := c.Param("id")
	if g, ok := h.Engine.Game(id); ok {
		c.JSON(http.StatusOK, gameView(g))
		return
	}
	if h.Archive != nil {
		g, err := h.Archive.GetByID(c.Request.Context(), id)
		if err == nil {
			c.JSON(http.StatusOK, gameView(*g))
			return
		}
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Error("game lookup failed", "game_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load game"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
}

// ListGames returns the caller's archived games, newest first.
func (h *Handler) ListGames(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	if h.Archive == nil {
		c.JSON(http.StatusOK, gin.H{"games": []gin.H{}})
		return
	}

	games, err := h.Archive.ListByAccount(c.Request.Context(), addr, 50)
	if err != nil {
		logger.Error("game history failed", "address", addr, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load games"})
		return
	}
	views := make([]gin.H, 0, len(games))
	for _, g := range games {
		views = append(views, gameView(*g))
	}
	c.JSON(http.StatusOK, gin.H{"games": views})
}

// ListLedger returns the caller's recent ledger entries.
func (h *Handler) ListLedger(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	if h.Entries == nil {
		c.JSON(http.StatusOK, gin.H{"entries": []struct{}{}})
		return
	}

	entries, err := h.Entries.GetByAccount(c.Request.Context(), addr, 50)
	if err != nil {
		logger.Error("ledger history failed", "address", addr, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load ledger"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Config exposes the current policy so clients can validate before submitting.
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Config())
}
