package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"room-reservation/internal/handler/api"
	"room-reservation/internal/handler/middleware"
	"room-reservation/internal/infra/metrics"
	"room-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// NewRouter wires middleware and routes. m is nil when metrics are disabled.
func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, reservationHandler *api.ReservationHandler, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, logger, m)
	setupRoutes(engine, reservationHandler, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	if m != nil {
		engine.Use(middleware.Metrics(m))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, reservationHandler *api.ReservationHandler, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)

	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
			{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListAvailabilities},
			{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
			{Method: http.MethodPut, Path: "/:id", Handler: reservationHandler.UpdateReservation},
			{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.CancelReservation},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
