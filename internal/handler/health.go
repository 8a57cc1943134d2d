package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/cache"
)

// HealthHandler reports liveness of the store and cache connections.
// A down cache does not degrade the overall status below healthy: the
// cache is best-effort everywhere, so its absence is informational.
type HealthHandler struct {
	DB    *sql.DB
	Cache *cache.TicketCache
}

func NewHealthHandler(db *sql.DB, c *cache.TicketCache) *HealthHandler {
	return &HealthHandler{DB: db, Cache: c}
}

// Health answers GET /health for load balancers and monitoring.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	dbStatus := "connected"
	status := "healthy"
	code := http.StatusOK
	if err := h.DB.PingContext(ctx); err != nil {
		dbStatus = "disconnected"
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	redisStatus := "connected"
	if !h.Cache.Ping(ctx) {
		redisStatus = "disconnected"
	}

	return c.JSON(code, echo.Map{
		"status":   status,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
