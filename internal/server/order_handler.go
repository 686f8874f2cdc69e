package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teabloom-be/internal/order"
)

type orderDetail struct {
	Order *order.Order `json:"order"`
	Items []order.Item `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) listMyOrders(c echo.Context) error {
	orders, err := s.deps.Orders.ListMine(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c echo.Context) error {
	o, items, err := s.deps.Orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, orderDetail{Order: o, Items: items})
}

func (s *Server) adminListOrders(c echo.Context) error {
	orders, err := s.deps.Orders.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) adminUpdateOrderStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	o, err := s.deps.Orders.UpdateStatus(c.Request().Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
