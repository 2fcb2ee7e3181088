package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	driver string
}

func NewHealthHandler(store Pinger, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		logrus.WithError(err).WithField("store", h.driver).Warn("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "store": h.driver, "code": "unavailable", "error": "store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": h.driver})
}
