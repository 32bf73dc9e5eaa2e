package handlers

import (
	"context"
	"errors"
	"net/http"

	"rpsduel/internal/domain"
	"rpsduel/internal/engine"
	"rpsduel/internal/game"
	"rpsduel/internal/repository"
	"rpsduel/internal/service"

	"github.com/gin-gonic/gin"
)

// Ledger is what the HTTP layer needs beyond the engine's escrow calls:
// balance queries plus the out-of-band mint used by first-auth grants and
// the admin faucet.
type Ledger interface {
	BalanceOf(ctx context.Context, account string) (int64, error)
	Mint(ctx context.Context, account string, amount int64) (int64, error)
	EnsureAccount(ctx context.Context, account string, starting int64) (bool, error)
}

type Handler struct {
	Engine *engine.Engine
	Ledger Ledger
	Admins *service.AdminList

	// Archive and Entries are nil when running without postgres.
	Archive *repository.GameArchiveRepository
	Entries *repository.LedgerEntryRepository

	// StartingBalance is granted to an account on first auth. 0 disables.
	StartingBalance int64
}

// caller extracts the authenticated address, aborting on failure.
func caller(c *gin.Context) (string, bool) {
	v, ok := c.Get("address")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return "", false
	}
	addr, ok := v.(string)
	if !ok || addr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return "", false
	}
	return addr, true
}

// fail maps engine rejections to HTTP statuses. Validation and balance
// problems are the caller's fault; state conflicts are 409s so clients can
// distinguish "retry with different input" from "this transition is gone".
func fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, engine.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrUnauthorized),
		errors.Is(err, engine.ErrNotCreator),
		errors.Is(err, engine.ErrNotTheDesignatedOpponent):
		status = http.StatusForbidden
	case errors.Is(err, engine.ErrDuplicateGame),
		errors.Is(err, engine.ErrAlreadyJoined),
		errors.Is(err, engine.ErrGameFinished),
		errors.Is(err, engine.ErrJoinDeadlineExpired),
		errors.Is(err, engine.ErrJoinDeadlineNotExpired),
		errors.Is(err, engine.ErrRevealDeadlineExpired),
		errors.Is(err, engine.ErrRevealDeadlineNotExpired):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, engine.ErrEngineHalted):
		status = http.StatusServiceUnavailable
	case errors.Is(err, engine.ErrInvalidOpponent),
		errors.Is(err, engine.ErrJoinWindowOutOfRange),
		errors.Is(err, engine.ErrOutOfRange),
		errors.Is(err, game.ErrInvalidMove),
		errors.Is(err, game.ErrInvalidSender):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// gameView shapes a snapshot for responses.
func gameView(g domain.Game) gin.H {
	return gin.H{
		"id":             g.ID,
		"creator":        g.Creator,
		"opponent":       g.Opponent,
		"opponent_move":  g.OpponentMove.String(),
		"payoff":         g.Payoff.String(),
		"creator_wager":  g.CreatorWager,
		"opponent_wager": g.OpponentWager,
		"deadline":       g.Deadline,
		"cancelled":      g.Cancelled,
	}
}
