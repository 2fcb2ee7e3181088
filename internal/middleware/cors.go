package middleware

import (
	"time"

	"utsavdarshan/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORS allows every origin outside production and only the configured
// origins in production. With no origins configured, production rejects
// every cross-origin request.
func CORS(cfg *config.Config) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	switch {
	case !cfg.IsProduction():
		c.AllowAllOrigins = true
	case len(cfg.Server.AllowedOrigins) > 0:
		c.AllowOrigins = cfg.Server.AllowedOrigins
		c.AllowCredentials = true
	default:
		logrus.Warn("CORS_ALLOWED_ORIGINS is empty in production; cross-origin requests will be refused")
		c.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(c)
}
