package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teabloom-be/internal/identity"
)

func (s *Server) adminListUsers(c echo.Context) error {
	users, err := s.deps.Users.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// adminUploadImage pushes a product photo to the image host and returns
// its public URL for use in a product record.
func (s *Server) adminUploadImage(c echo.Context) error {
	if !identity.FromCtx(c.Request().Context()).IsAdmin() {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "unauthorized access"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable image file"})
	}
	defer file.Close()

	url, err := s.deps.Uploader.Upload(c.Request().Context(), fileHeader.Filename, file)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
