package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/middleware"
	"github.com/sokofin/corebank/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-resource route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Posting, services.Account)
	registerPeriodRoutes(v1, services.Period)
	registerReportingRoutes(v1, services.Reporting, services.Account)
	registerLoanRoutes(v1, services.Loan)
	registerSavingsRoutes(v1, services.Savings)
	registerDepositRoutes(v1, services.Deposit)
}
