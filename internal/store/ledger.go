package store

import (
	"context"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/minitill/minitill/internal/domain"
)

// LedgerRepository owns the append-only sales ledger. No update or delete
// operations exist.
type LedgerRepository interface {
	Load(ctx context.Context) ([]domain.Transaction, error)
	Append(ctx context.Context, txn domain.Transaction) error
}

// CsvLedgerRepository is the CSV-file implementation of LedgerRepository.
type CsvLedgerRepository struct {
	path string
}

func NewCsvLedgerRepository(path string) *CsvLedgerRepository {
	return &CsvLedgerRepository{path: path}
}

func (r *CsvLedgerRepository) Load(ctx context.Context) ([]domain.Transaction, error) {
	if err := ensureTable(r.path, []domain.Transaction{}); err != nil {
		return nil, errors.Wrap(err, "ledger: init table")
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrap(err, "ledger: open table")
	}
	defer f.Close()

	var txns []domain.Transaction
	if err := gocsv.UnmarshalFile(f, &txns); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []domain.Transaction{}, nil
		}
		return nil, errors.Wrap(err, "ledger: parse table")
	}
	return txns, nil
}

func (r *CsvLedgerRepository) Append(ctx context.Context, txn domain.Transaction) error {
	txns, err := r.Load(ctx)
	if err != nil {
		return err
	}
	txns = append(txns, txn)

	if err := writeTable(r.path, &txns); err != nil {
		return errors.Wrap(err, "ledger: write table")
	}
	zap.L().Info("ledger: transaction appended",
		zap.String("date", txn.Date), zap.String("time", txn.Datetime),
		zap.Float64("total", txn.Total))
	return nil
}
