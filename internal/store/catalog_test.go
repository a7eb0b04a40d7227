package store_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minitill/minitill/internal/domain"
	"github.com/minitill/minitill/internal/store"
)

func newCatalog(t *testing.T) (*store.CsvCatalogRepository, string) {
	t.Helper()
	dir := t.TempDir()
	return store.NewCsvCatalogRepository(filepath.Join(dir, "product.csv"), filepath.Join(dir, "images")), dir
}

func TestLoadCreatesEmptyTableOnFirstRun(t *testing.T) {
	repo, dir := newCatalog(t)

	products, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	raw, err := os.ReadFile(filepath.Join(dir, "product.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name,price,image_name\n", string(raw))
}

func TestAppendAndReload(t *testing.T) {
	repo, _ := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, domain.Product{ID: "p1", Name: "Coffee", Price: 45.00, ImageName: "p1.png"}))
	require.NoError(t, repo.Append(ctx, domain.Product{ID: "p2", Name: "Tea", Price: 20.00}))

	products, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "Coffee", products[0].Name)
	assert.InDelta(t, 45.00, products[0].Price, 1e-9)
	assert.Equal(t, "p1.png", products[0].ImageName)
	assert.Equal(t, "", products[1].ImageName)
}

func TestIDStaysText(t *testing.T) {
	repo, _ := newCatalog(t)
	ctx := context.Background()

	// ids that look numeric must survive as text, leading zero included
	require.NoError(t, repo.Append(ctx, domain.Product{ID: "00123456", Name: "Numeric", Price: 1}))

	products, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "00123456", products[0].ID)
}

func TestAppendValidation(t *testing.T) {
	repo, _ := newCatalog(t)
	ctx := context.Background()

	assert.Error(t, repo.Append(ctx, domain.Product{ID: "x", Name: "   ", Price: 1}))
	assert.Error(t, repo.Append(ctx, domain.Product{ID: "x", Name: "Tea", Price: -0.01}))

	products, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSaveImageNormalizesToPNG(t *testing.T) {
	repo, dir := newCatalog(t)
	ctx := context.Background()

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, nil))

	name, err := repo.SaveImage(ctx, &buf, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1.png", name)
	assert.True(t, repo.HasImage("p1.png"))

	f, err := os.Open(filepath.Join(dir, "images", "p1.png"))
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())
}

func TestSaveImageRejectsGarbage(t *testing.T) {
	repo, dir := newCatalog(t)

	_, err := repo.SaveImage(context.Background(), bytes.NewBufferString("not an image"), "p9")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "images", "p9.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestHasImage(t *testing.T) {
	repo, dir := newCatalog(t)

	assert.False(t, repo.HasImage(""))
	assert.False(t, repo.HasImage("missing.png"))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "p1.png"), []byte("x"), 0o644))
	assert.True(t, repo.HasImage("p1.png"))
}

func TestNewProductID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := store.NewProductID()
		assert.Len(t, id, 8)
		assert.NotContains(t, id, ",")
		seen[id] = true
	}
	// random tokens should essentially never repeat in a small sample
	assert.Greater(t, len(seen), 95)
}
