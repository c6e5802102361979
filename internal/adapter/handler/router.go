package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meetscribe/internal/adapter/dto/common"
	"github.com/johnquangdev/meetscribe/pkg/config"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	summaryHandler *Summary
	sessionHandler *Session
	checks         map[string]HealthCheck
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, summaryHandler *Summary, sessionHandler *Session, checks map[string]HealthCheck) *Router {
	return &Router{
		cfg:            cfg,
		summaryHandler: summaryHandler,
		sessionHandler: sessionHandler,
		checks:         checks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	rt.setupSummaryRoutes(api)
	rt.setupSessionRoutes(api)
}

// setupSummaryRoutes configures the stateless summary routes
func (rt *Router) setupSummaryRoutes(g *echo.Group) {
	h := rt.summaryHandler

	g.POST("/upload", h.Upload)
	g.GET("/templates", h.Templates)
	g.POST("/generate-summary", h.GenerateSummary)
	g.PATCH("/summaries/:id", h.UpdateSummary)
	g.GET("/summaries/:id", h.GetSummary)
	g.GET("/summaries/:id/shares", h.ListShares)
	g.POST("/send-email", h.SendEmail)
}

// setupSessionRoutes configures workflow session routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	h := rt.sessionHandler
	sessions := g.Group("/sessions")

	sessions.POST("", h.Create)
	sessions.GET("/:id", h.Get)
	sessions.DELETE("/:id", h.Delete)
	sessions.POST("/:id/transcript", h.UploadTranscript)
	sessions.POST("/:id/generate", h.Generate)
	sessions.POST("/:id/regenerate", h.Regenerate)
	sessions.POST("/:id/back", h.Back)
	sessions.POST("/:id/proceed", h.Proceed)
	sessions.POST("/:id/share", h.Share)
	sessions.POST("/:id/reset", h.Reset)
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Failure      503  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{
		Status:      "ok",
		Environment: rt.cfg.Server.Environment,
	}

	if len(rt.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		resp.Checks = make(map[string]string, len(rt.checks))
		for name, check := range rt.checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}
