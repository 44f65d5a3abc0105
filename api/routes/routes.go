package routes

import (
	"time"

	"smcbi/api/handler"
	"smcbi/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo        *echo.Echo
	Recovery    *handler.RecoveryHandler
	IssueRate   *middleware.IPRateLimiter
	GeneralRate *middleware.IPRateLimiter
}

func NewRouter(e *echo.Echo, recoveryHandler *handler.RecoveryHandler) *Router {
	return &Router{
		Echo:        e,
		Recovery:    recoveryHandler,
		IssueRate:   middleware.NewIPRateLimiter(rate.Limit(1), 3, 10*time.Minute),
		GeneralRate: middleware.NewIPRateLimiter(rate.Limit(5), 10, 5*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/recovery/issue", r.Recovery.IssueCode, r.IssueRate.Middleware())
	e.POST("/auth/recovery/verify", r.Recovery.VerifyCode, r.GeneralRate.Middleware())
	e.POST("/auth/recovery/reset", r.Recovery.ResetPassword, r.GeneralRate.Middleware())
	e.GET("/auth/recovery/usage", r.Recovery.Usage)
}
