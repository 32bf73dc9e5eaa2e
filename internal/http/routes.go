package http

import (
	"time"

	"rpsduel/internal/http/handlers"
	"rpsduel/internal/http/middleware"
	"rpsduel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the full HTTP surface onto the router. Everything
// under /api/v1 except auth requires a bearer token; the rate limiter runs
// before auth so unauthenticated floods are still bounded.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, hub *ws.Hub, pool *pgxpool.Pool, rateMax int, rateWindow time.Duration) {
	r.GET("/health", handlers.Health)
	r.GET("/ready", handlers.Readiness(pool))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", handlers.Watch(hub))

	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimit(rateMax, rateWindow))

	api.POST("/auth", h.Auth)

	authed := api.Group("")
	authed.Use(middleware.JWT())
	{
		authed.GET("/me", h.Me)
		authed.GET("/stats/:address", h.Stats)
		authed.GET("/games", h.ListGames)
		authed.GET("/ledger", h.ListLedger)

		authed.POST("/game/commitment", h.Commitment)
		authed.POST("/game/create", h.CreateGame)
		authed.POST("/game/join", h.JoinGame)
		authed.POST("/game/reveal", h.RevealMove)
		authed.POST("/game/cancel", h.CancelGame)
		authed.POST("/game/claim", h.ClaimTotalWagered)
		authed.GET("/game/config", h.Config)
		authed.GET("/game/:id", h.GetGame)

		authed.POST("/admin/config", h.UpdateConfig)
		authed.POST("/admin/mint", h.Mint)
		authed.POST("/admin/destroy", h.Destroy)
	}
}
