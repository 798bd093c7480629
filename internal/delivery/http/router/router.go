// Package router contains routing setup for the HTTP delivery.
package router

import (
	"clubhouse/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers that need to be registered, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler *handler.AuthHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler *handler.AuthHandler
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler: params.AuthHandler,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", r.authHandler.Home)
	e.GET("/sign-up", r.authHandler.SignUpForm)
	e.POST("/sign-up", r.authHandler.SignUp)
	e.POST("/log-in", r.authHandler.LogIn)
	e.GET("/log-out", r.authHandler.LogOut)
}
