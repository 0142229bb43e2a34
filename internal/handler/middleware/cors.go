package middleware

import (
	"log/slog"
	"slices"

	"room-reservation/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always lets browsers send and read X-Request-ID, whatever the configured lists say.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, RequestIDHeader),
		ExposeHeaders:    withHeader(cfg.ExposeHeaders, RequestIDHeader, "Location"),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"expose_headers", corsCfg.ExposeHeaders,
	)
	return cors.New(corsCfg)
}

func withHeader(headers []string, extra ...string) []string {
	out := slices.Clone(headers)
	for _, h := range extra {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
