package webserver

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/minitill/minitill/internal/cart"
	"github.com/minitill/minitill/internal/domain"
	"github.com/minitill/minitill/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	t := template.Must(template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).ParseFS(templateFS, "templates/*.html"))
	return &renderer{templates: t}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// tileView is one clickable product in the gallery.
type tileView struct {
	ProductID string
	Title     string
	ImageURI  template.URL
}

// pageView is the full till screen.
type pageView struct {
	Tiles    []tileView
	Lines    []cart.Line
	Total    float64
	HasCart  bool
	Admin    bool
	Errors   []string
	Messages []string
}

// buildTiles produces the display model of the gallery: only products
// whose image reference resolves to a file on disk are shown; the rest are
// skipped rather than rendered with a placeholder.
func buildTiles(catalog store.CatalogRepository, products []domain.Product) []tileView {
	var tiles []tileView
	for _, p := range products {
		if !catalog.HasImage(p.ImageName) {
			continue
		}
		uri, err := imageDataURI(catalog.ImagePath(p.ImageName))
		if err != nil {
			zap.L().Warn("gallery: unreadable image skipped",
				zap.String("product", p.ID), zap.String("image", p.ImageName), zap.Error(err))
			continue
		}
		tiles = append(tiles, tileView{
			ProductID: p.ID,
			Title:     fmt.Sprintf("%s (%.2f ฿)", p.Name, p.Price),
			ImageURI:  uri,
		})
	}
	return tiles
}

// imageDataURI inlines a stored PNG as a data URI so the page needs no
// separate image route.
func imageDataURI(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data)), nil
}
