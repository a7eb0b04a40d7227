package store

import (
	"context"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SaveImage decodes the uploaded image and normalizes it to a PNG file
// named after the product id. Decode failures surface to the caller so a
// corrupt upload rejects the whole submission.
func (r *CsvCatalogRepository) SaveImage(ctx context.Context, src io.Reader, productID string) (string, error) {
	img, format, err := image.Decode(src)
	if err != nil {
		return "", errors.Wrap(err, "catalog: decode uploaded image")
	}

	if err := os.MkdirAll(r.imageDir, 0o755); err != nil {
		return "", errors.Wrap(err, "catalog: create image directory")
	}

	name := productID + ".png"
	path := filepath.Join(r.imageDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "catalog: create image file")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", errors.Wrap(err, "catalog: encode image")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "catalog: close image file")
	}

	zap.L().Debug("catalog: image saved",
		zap.String("file", name), zap.String("upload_format", format))
	return name, nil
}
