package webserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/minitill/minitill/internal/domain"
)

// index renders the whole till screen: gallery, cart and admin panel.
func (s *Server) index(c echo.Context) error {
	sid := sessionID(c)
	ct := s.app.Carts().Get(sid)

	products, err := s.app.Catalog().Load(c.Request().Context())
	if err != nil {
		zap.L().Error("catalog load failed", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "index.html", pageView{
			Errors: []string{"Failed to load the product catalog."},
		})
	}

	view := pageView{
		Tiles:    buildTiles(s.app.Catalog(), products),
		Lines:    ct.Lines(),
		Total:    ct.Total(),
		HasCart:  !ct.Empty(),
		Admin:    isAdmin(c),
		Errors:   takeFlashes(c, "error"),
		Messages: takeFlashes(c, "info"),
	}
	return c.Render(http.StatusOK, "index.html", view)
}

// addToCart consumes one tile click. The POST-redirect-GET cycle resets
// the gallery so a repeat click on the same tile is a fresh event.
func (s *Server) addToCart(c echo.Context) error {
	if s.dropDuplicate(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	pid := strings.TrimSpace(c.FormValue("id"))
	if pid == "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	products, err := s.app.Catalog().Load(c.Request().Context())
	if err != nil {
		addFlash(c, "error", "Failed to load the product catalog.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var product *domain.Product
	for i := range products {
		if products[i].ID == pid {
			product = &products[i]
			break
		}
	}
	if product == nil {
		addFlash(c, "error", "Unknown product.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	sid := sessionID(c)
	s.app.Carts().Get(sid).AddOne(product.ID, product.Name, product.Price)
	addFlash(c, "info", fmt.Sprintf("%s added", product.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) clearCart(c echo.Context) error {
	sid := sessionID(c)
	s.app.Carts().Get(sid).Clear()
	return c.Redirect(http.StatusSeeOther, "/")
}

// checkout appends one ledger row and clears the cart only after the row
// is durable. On a write failure the cart is kept so the sale is not lost.
func (s *Server) checkout(c echo.Context) error {
	sid := sessionID(c)
	ct := s.app.Carts().Get(sid)
	if ct.Empty() {
		// The page never offers checkout with an empty cart.
		return c.Redirect(http.StatusSeeOther, "/")
	}

	txn := domain.NewTransaction(time.Now(), ct.FlattenItemIDs(), ct.Total())
	if err := s.app.Ledger().Append(c.Request().Context(), txn); err != nil {
		zap.L().Error("checkout: ledger append failed", zap.Error(err))
		addFlash(c, "error", "Checkout failed, the sale was not recorded. Your cart is unchanged.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ct.Clear()
	s.app.OprLog().Record(c.Request().Context(), "checkout",
		fmt.Sprintf("items=%s total=%.2f", txn.Items, txn.Total))
	addFlash(c, "info", "Checkout completed")
	return c.Redirect(http.StatusSeeOther, "/")
}

// dropDuplicate applies the click debounce window from configuration.
func (s *Server) dropDuplicate(c echo.Context) bool {
	window := time.Duration(s.app.Config().Server.DebounceMs) * time.Millisecond
	if window <= 0 {
		return false
	}
	return debounced(c, window)
}
