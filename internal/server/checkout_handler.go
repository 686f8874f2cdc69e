package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teabloom-be/internal/identity"
	"teabloom-be/internal/middleware"
	"teabloom-be/internal/order"
)

type beginCheckoutResponse struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingFee  float64 `json:"shippingFee"`
	Total        float64 `json:"total"`
	ClientSecret string  `json:"clientSecret"`
}

// beginCheckout freezes the session's cart into a payment attempt. The
// attempt lives on the session, so abandoning it costs nothing once the
// session is swept. Starting again before finalizing replaces it.
func (s *Server) beginCheckout(c echo.Context) error {
	var addr order.ShippingAddress
	if err := c.Bind(&addr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	sess := middleware.SessionFrom(c)
	customer := customerOf(sess.Identity, addr)

	chk, err := s.deps.Checkout.Begin(c.Request().Context(), customer, sess.Cart, addr)
	if err != nil {
		return jsonError(c, err)
	}

	sess.Checkout = chk

	return c.JSON(http.StatusOK, beginCheckoutResponse{
		Subtotal:     chk.Subtotal,
		ShippingFee:  chk.Fee,
		Total:        chk.Total,
		ClientSecret: chk.ClientSecret,
	})
}

func (s *Server) finalizeCheckout(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	chk := sess.Checkout
	if chk == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no checkout in progress"})
	}

	result, err := s.deps.Checkout.Finalize(c.Request().Context(), chk)
	if err != nil {
		// An unsettled payment keeps the attempt alive for a retry.
		return jsonError(c, err)
	}

	sess.Checkout = nil

	return c.JSON(http.StatusOK, result)
}

func customerOf(ident identity.Identity, addr order.ShippingAddress) order.Customer {
	if ident.Registered() {
		return order.Customer{UserID: ident.UserID, Name: ident.Name, Email: ident.Email}
	}
	return order.Customer{Name: addr.Name, Email: addr.Email}
}
