package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teabloom-be/internal/cart"
	"teabloom-be/internal/middleware"
)

type cartView struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

func viewOf(c *cart.Cart) cartView {
	return cartView{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) getCart(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	return c.JSON(http.StatusOK, viewOf(sess.Cart))
}

// addCartItem looks the product up fresh so the cart line carries current
// price and stock. A rejected add is a conflict, not a server fault.
func (s *Server) addCartItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "productId is required"})
	}

	p, err := s.deps.Products.GetByID(c.Request().Context(), req.ProductID)
	if err != nil {
		return jsonError(c, err)
	}

	sess := middleware.SessionFrom(c)
	if !sess.Cart.Add(*p) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "not enough stock"})
	}

	return c.JSON(http.StatusOK, viewOf(sess.Cart))
}

func (s *Server) setCartItemQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	sess := middleware.SessionFrom(c)
	sess.Cart.SetQuantity(c.Param("id"), req.Quantity)

	return c.JSON(http.StatusOK, viewOf(sess.Cart))
}

func (s *Server) removeCartItem(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	sess.Cart.Remove(c.Param("id"))
	return c.JSON(http.StatusOK, viewOf(sess.Cart))
}

func (s *Server) clearCart(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	sess.Cart.Clear()
	return c.JSON(http.StatusOK, viewOf(sess.Cart))
}
