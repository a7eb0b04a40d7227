package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/minitill/minitill/internal/domain"
)

// CatalogRepository owns the product table and the product image files.
type CatalogRepository interface {
	// Load returns all products in table order, creating an empty table
	// on first run.
	Load(ctx context.Context) ([]domain.Product, error)

	// Append validates and appends one product row, rewriting the table.
	Append(ctx context.Context, p domain.Product) error

	// SaveImage decodes an uploaded image and writes it to the image
	// directory as <productID>.png, returning the stored filename.
	SaveImage(ctx context.Context, r io.Reader, productID string) (string, error)

	// HasImage reports whether an image reference resolves on disk.
	HasImage(name string) bool

	// ImagePath resolves an image reference to its on-disk path.
	ImagePath(name string) string
}

// CsvCatalogRepository is the CSV-file implementation of CatalogRepository.
// It assumes exclusive single-writer access to the table file.
type CsvCatalogRepository struct {
	tablePath string
	imageDir  string
}

func NewCsvCatalogRepository(tablePath, imageDir string) *CsvCatalogRepository {
	return &CsvCatalogRepository{tablePath: tablePath, imageDir: imageDir}
}

func (r *CsvCatalogRepository) Load(ctx context.Context) ([]domain.Product, error) {
	if err := ensureTable(r.tablePath, []domain.Product{}); err != nil {
		return nil, errors.Wrap(err, "catalog: init table")
	}

	f, err := os.Open(r.tablePath)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: open table")
	}
	defer f.Close()

	var products []domain.Product
	if err := gocsv.UnmarshalFile(f, &products); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []domain.Product{}, nil
		}
		return nil, errors.Wrap(err, "catalog: parse table")
	}
	return products, nil
}

func (r *CsvCatalogRepository) Append(ctx context.Context, p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("catalog: product name is required")
	}
	if p.Price < 0 {
		return errors.New("catalog: product price must not be negative")
	}

	products, err := r.Load(ctx)
	if err != nil {
		return err
	}
	products = append(products, p)

	if err := writeTable(r.tablePath, &products); err != nil {
		return errors.Wrap(err, "catalog: write table")
	}
	zap.L().Info("catalog: product appended",
		zap.String("id", p.ID), zap.String("name", p.Name), zap.Float64("price", p.Price))
	return nil
}

func (r *CsvCatalogRepository) HasImage(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(r.ImagePath(name))
	return err == nil && !info.IsDir()
}

func (r *CsvCatalogRepository) ImagePath(name string) string {
	return filepath.Join(r.imageDir, name)
}

// NewProductID returns a short random token: the first 8 hex characters of
// a random UUID. Collisions are not checked; at catalog scale the
// probability is negligible.
func NewProductID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ensureTable creates the table file with a header row when it is missing.
func ensureTable(path string, empty interface{}) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return writeTable(path, empty)
}

// writeTable rewrites the whole table file. Acceptable at the expected
// scale of tens to low thousands of rows, under the single-writer
// assumption.
func writeTable(path string, rows interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(rows, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
