package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teabloom-be/internal/product"
)

// listProducts serves the storefront catalog from the realtime view, so a
// page load never waits on the record store.
func (s *Server) listProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.Catalog.Products())
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.deps.Products.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) adminListProducts(c echo.Context) error {
	products, err := s.deps.Products.ListAll(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) adminCreateProduct(c echo.Context) error {
	var input product.NewProduct
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	p, err := s.deps.Products.Create(c.Request().Context(), input)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) adminUpdateProduct(c echo.Context) error {
	var input product.UpdateProduct
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	p, err := s.deps.Products.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) adminDeleteProduct(c echo.Context) error {
	if err := s.deps.Products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
