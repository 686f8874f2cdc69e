package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"teabloom-be/internal/catalog"
	"teabloom-be/internal/checkout"
	"teabloom-be/internal/imagehost"
	"teabloom-be/internal/logger"
	"teabloom-be/internal/middleware"
	"teabloom-be/internal/order"
	"teabloom-be/internal/product"
	"teabloom-be/internal/session"
	"teabloom-be/internal/user"
)

// Deps is everything the HTTP layer needs wired in.
type Deps struct {
	Catalog     *catalog.View
	Products    product.Service
	Orders      order.Service
	Checkout    checkout.Service
	Users       user.Service
	Uploader    imagehost.Uploader
	Sessions    *session.Manager
	TokenSecret string
}

// Server is the storefront and admin HTTP surface.
type Server struct {
	echo *echo.Echo
	deps Deps
}

func New(deps Deps) *Server {
	s := &Server{
		echo: echo.New(),
		deps: deps,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(logger.RequestIDMiddleware())
	s.echo.Use(logger.LoggingMiddleware())
	s.echo.Use(middleware.WithSession(deps.Sessions))
	s.echo.Use(middleware.Auth(deps.TokenSecret))
	s.echo.Use(middleware.NewRateLimiter().Middleware())

	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)

	api.GET("/cart", s.getCart)
	api.POST("/cart/items", s.addCartItem)
	api.PUT("/cart/items/:id", s.setCartItemQuantity)
	api.DELETE("/cart/items/:id", s.removeCartItem)
	api.DELETE("/cart", s.clearCart)

	api.POST("/checkout", s.beginCheckout)
	api.POST("/checkout/finalize", s.finalizeCheckout)

	api.GET("/orders", s.listMyOrders)
	api.GET("/orders/:id", s.getOrder)

	admin := api.Group("/admin")
	admin.GET("/products", s.adminListProducts)
	admin.POST("/products", s.adminCreateProduct)
	admin.PATCH("/products/:id", s.adminUpdateProduct)
	admin.DELETE("/products/:id", s.adminDeleteProduct)
	admin.GET("/orders", s.adminListOrders)
	admin.PATCH("/orders/:id/status", s.adminUpdateOrderStatus)
	admin.GET("/users", s.adminListUsers)
	admin.POST("/images", s.adminUploadImage)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// jsonError maps domain errors onto HTTP statuses.
func jsonError(c echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound):
		code = http.StatusNotFound
	case errors.Is(err, product.ErrUnauthorized),
		errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, user.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, product.ErrNameRequired),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, product.ErrNoFields),
		errors.Is(err, product.ErrIDRequired),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, checkout.ErrIncompleteAddress),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNotStarted):
		code = http.StatusBadRequest
	case errors.Is(err, checkout.ErrPaymentNotSettled):
		code = http.StatusPaymentRequired
	}

	return c.JSON(code, map[string]string{"error": err.Error()})
}
