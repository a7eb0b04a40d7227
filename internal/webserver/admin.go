package webserver

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/minitill/minitill/internal/domain"
	"github.com/minitill/minitill/internal/store"
)

// adminUnlock opens the add-product panel. A plaintext comparison against
// the configured secret: this is a single-till convenience lock, not a
// security boundary.
func (s *Server) adminUnlock(c echo.Context) error {
	if c.FormValue("password") != s.app.Config().Admin.Password {
		addFlash(c, "error", "Wrong admin password.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	setAdmin(c, true)
	s.app.OprLog().Record(c.Request().Context(), "admin_unlock", "admin panel opened")
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) adminLock(c echo.Context) error {
	setAdmin(c, false)
	return c.Redirect(http.StatusSeeOther, "/")
}

// adminAddProduct validates the submission, stores the image when one was
// uploaded and appends the catalog row. Any failure leaves the catalog
// untouched.
func (s *Server) adminAddProduct(c echo.Context) error {
	if !isAdmin(c) {
		addFlash(c, "error", "Admin access required.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		addFlash(c, "error", "Product name is required.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	price, err := cast.ToFloat64E(c.FormValue("price"))
	if err != nil {
		addFlash(c, "error", "Price must be a number.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if price < 0 {
		addFlash(c, "error", "Price must not be negative.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	pid := store.NewProductID()
	imageName := ""

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			addFlash(c, "error", "Failed to read the uploaded image.")
			return c.Redirect(http.StatusSeeOther, "/")
		}
		imageName, err = s.app.Catalog().SaveImage(c.Request().Context(), src, pid)
		src.Close()
		if err != nil {
			zap.L().Warn("admin: image rejected", zap.String("upload", fh.Filename), zap.Error(err))
			addFlash(c, "error", "The uploaded image could not be decoded.")
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}

	product := domain.Product{ID: pid, Name: name, Price: price, ImageName: imageName}
	if err := s.app.Catalog().Append(c.Request().Context(), product); err != nil {
		zap.L().Error("admin: catalog append failed", zap.Error(err))
		s.discardImage(imageName)
		addFlash(c, "error", "Failed to save the product.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	s.app.OprLog().Record(c.Request().Context(), "product_add",
		fmt.Sprintf("id=%s name=%s price=%.2f", pid, name, price))
	addFlash(c, "info", "Product added")
	return c.Redirect(http.StatusSeeOther, "/")
}

// discardImage removes an image saved ahead of a catalog append that then
// failed, so no orphan file is left behind.
func (s *Server) discardImage(imageName string) {
	if imageName == "" {
		return
	}
	if err := os.Remove(s.app.Catalog().ImagePath(imageName)); err != nil {
		zap.L().Warn("admin: orphan image not removed", zap.String("image", imageName), zap.Error(err))
	}
}
