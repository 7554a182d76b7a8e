package router

import (
	"myWellnessCentre/internal/middleware"
	"myWellnessCentre/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc) {
	auth := api.Group("/auth")

	auth.POST("/signup", handler.SignUp)
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout, authRequired)

	api.GET("/referrals/check", handler.CheckReferral, authRequired)
}

func SetupServiceRoutes(api *echo.Group) {
	api.GET("/services", rest.ListServices)
}

func SetupMeRoutes(api *echo.Group, userHandler *rest.UserHandler, paymentsHandler *rest.PaymentsHandler, authRequired echo.MiddlewareFunc) {
	me := api.Group("/me", authRequired)

	me.GET("", userHandler.Me)
	me.GET("/payments", paymentsHandler.MyPayments)
	me.GET("/referrals", userHandler.MyReferrals)
}

func SetupAdminRoutes(
	api *echo.Group,
	authHandler *rest.AuthHandler,
	userHandler *rest.UserHandler,
	paymentsHandler *rest.PaymentsHandler,
	authRequired echo.MiddlewareFunc,
) {
	admin := api.Group("/admin", authRequired)
	staffOnly := middleware.StaffOnly()
	adminOnly := middleware.AdminOnly()

	users := admin.Group("/users")
	users.POST("", authHandler.AdminSignUp, adminOnly)
	users.GET("", userHandler.SearchUser, staffOnly)
	users.PUT("/:email/role", userHandler.UpdateRole, adminOnly)
	users.POST("/:email/funds", paymentsHandler.AddFunds, staffOnly)
	users.GET("/:email/payments", paymentsHandler.UserPayments, staffOnly)
	users.GET("/:email/referrals", userHandler.UserReferrals, staffOnly)

	payments := admin.Group("/payments", staffOnly)
	payments.POST("/preview", paymentsHandler.Preview)
	payments.POST("/confirm", paymentsHandler.Confirm)
}

func SetupMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
