package store

import (
	"context"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/minitill/minitill/internal/domain"
)

// OprLogWriter appends operator audit rows. Callers treat failures as
// non-fatal; Record logs and swallows them.
type OprLogWriter struct {
	path string
	node *snowflake.Node
}

func NewOprLogWriter(path string) (*OprLogWriter, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "oprlog: init snowflake node")
	}
	return &OprLogWriter{path: path, node: node}, nil
}

// Record appends one audit row. Best-effort: the caller's action has
// already happened, so a failed audit write is only logged.
func (w *OprLogWriter) Record(ctx context.Context, action, desc string) {
	entry := domain.OprLog{
		ID:        w.node.Generate().Int64(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := w.append(entry); err != nil {
		zap.L().Warn("oprlog: append failed", zap.String("action", action), zap.Error(err))
	}
}

func (w *OprLogWriter) append(entry domain.OprLog) error {
	if err := ensureTable(w.path, []domain.OprLog{}); err != nil {
		return err
	}
	f, err := os.Open(w.path)
	if err != nil {
		return err
	}
	var entries []domain.OprLog
	err = gocsv.UnmarshalFile(f, &entries)
	f.Close()
	if err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return err
	}
	entries = append(entries, entry)
	return writeTable(w.path, &entries)
}
