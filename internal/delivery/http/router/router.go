// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	ProductHandler    *handler.ProductHandler
	CategoryHandler   *handler.CategoryHandler
	StoreHandler      *handler.StoreHandler
	UploadHandler     *handler.UploadHandler
	StorefrontHandler *handler.StorefrontHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	productHandler    *handler.ProductHandler
	categoryHandler   *handler.CategoryHandler
	storeHandler      *handler.StoreHandler
	uploadHandler     *handler.UploadHandler
	storefrontHandler *handler.StorefrontHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		productHandler:    params.ProductHandler,
		categoryHandler:   params.CategoryHandler,
		storeHandler:      params.StoreHandler,
		uploadHandler:     params.UploadHandler,
		storefrontHandler: params.StorefrontHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Session lifecycle
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)

		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.POST("/logout/all", r.authHandler.LogoutEverywhere, r.authMiddleware.Authenticate)
		authGroup.POST("/refresh", r.authHandler.Refresh, r.authMiddleware.Authenticate)
		authGroup.GET("/session", r.authHandler.Session, r.authMiddleware.Authenticate)
	}

	// Public storefront, keyed by the merchant id in the path
	storeGroup := e.Group("/store/:userId")
	{
		storeGroup.GET("", r.storefrontHandler.Get)
		storeGroup.GET("/stream", r.storefrontHandler.Stream)
		storeGroup.POST("/checkout", r.storefrontHandler.Checkout)
	}

	// Merchant API, scoped to the session's identity
	api := e.Group("/api")
	api.Use(r.authMiddleware.Authenticate)

	products := api.Group("/products")
	{
		products.GET("", r.productHandler.List)
		products.POST("", r.productHandler.Create)
		products.GET("/stats", r.productHandler.Stats)
		products.GET("/stream", r.productHandler.Stream)
		products.GET("/:id", r.productHandler.Get)
		products.PATCH("/:id", r.productHandler.Update)
		products.DELETE("/:id", r.productHandler.Delete)
		products.PATCH("/:id/stock", r.productHandler.UpdateStock)
		products.PATCH("/:id/status", r.productHandler.UpdateStatus)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", r.categoryHandler.List)
		categories.POST("", r.categoryHandler.Create)
		categories.GET("/stream", r.categoryHandler.Stream)
		categories.GET("/templates", r.categoryHandler.Templates)
		categories.POST("/templates/:templateId", r.categoryHandler.ApplyTemplate)
		categories.PATCH("/:id", r.categoryHandler.Update)
		categories.DELETE("/:id", r.categoryHandler.Delete)
	}

	store := api.Group("/store")
	{
		store.GET("", r.storeHandler.Get)
		store.PUT("", r.storeHandler.Save)
		store.GET("/stream", r.storeHandler.Stream)
		store.GET("/link", r.storeHandler.Link)
		store.GET("/link/qr", r.storeHandler.LinkQR)
	}

	uploads := api.Group("/uploads")
	{
		uploads.POST("", r.uploadHandler.Upload)
		uploads.DELETE("", r.uploadHandler.Delete)
	}
}
