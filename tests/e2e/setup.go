//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"room-reservation/cmd/bootstrap"
	"room-reservation/cmd/bootstrap/components"
	"room-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// Application wired exactly like cmd/main.go, minus the listener
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App, error) {
	var router *gin.Engine

	app := fx.New(
		fx.Provide(func() config.Config { return cfg }),
		fx.Provide(bootstrap.NewBookingPolicy),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.MetricsModule,
		bootstrap.EventsModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		// start without fx's own logging
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start fx app: %w", err)
	}
	if router == nil {
		return nil, nil, fmt.Errorf("router was not populated")
	}
	return router, app, nil
}

func stopApp(app *fx.App) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		slog.Warn("Failed to stop fx app", "error", err.Error())
	}
}

// ------------------------------------------------------------
// Common setup shared by the E2E suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	Config config.Config

	app *fx.App
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s.Config = config.NewTestConfig()
	s.reset(t)
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) TearDownSuite() {
	if s.app != nil {
		stopApp(s.app)
	}
}

// SetupSubTest starts every subtest on an empty store.
func (s *SharedSuite) SetupSubTest() {
	s.reset(s.T())
}

func (s *SharedSuite) reset(t *testing.T) {
	if s.app != nil {
		stopApp(s.app)
	}
	router, app, err := buildE2EApp(s.Config)
	require.NoError(t, err, "Failed to build the application")
	s.Router = router
	s.app = app
}
