// Package csvfile persists transactions as RFC 4180 rows of
// id,date,kind,category,description,amount.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"smartspend/internal/core"
	applog "smartspend/internal/log"
)

const fieldsPerRow = 6

var errRowShape = errors.New("malformed row")

type Repository struct {
	path string
}

func New(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the backing file location.
func (r *Repository) Path() string {
	return r.path
}

// LoadAll implements ledger.Loader. A missing file is a fresh install and
// yields no transactions. Rows that do not parse are skipped.
func (r *Repository) LoadAll(ctx context.Context) ([]core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	txs, skipped, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if skipped > 0 {
		logger(ctx).DebugContext(ctx, "Skipped malformed rows", applog.FieldPath, r.path, "skipped", skipped)
	}
	return txs, nil
}

func logger(ctx context.Context) *applog.Logger {
	return applog.FromContext(ctx).WithComponent(applog.ComponentStorage)
}

// decode reads every record, returning the good ones and how many were
// dropped. Only I/O failures abort.
func decode(rd io.Reader) ([]core.Transaction, int, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	txs := []core.Transaction{}
	seen := map[int64]struct{}{}
	skipped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			skipped++
			continue
		}
		if err != nil {
			return nil, skipped, err
		}
		t, err := parseRow(rec)
		if err != nil {
			skipped++
			continue
		}
		if _, dup := seen[t.ID]; dup {
			skipped++
			continue
		}
		seen[t.ID] = struct{}{}
		txs = append(txs, t)
	}
	return txs, skipped, nil
}

func parseRow(rec []string) (core.Transaction, error) {
	if len(rec) != fieldsPerRow {
		return core.Transaction{}, fmt.Errorf("%w: %d fields", errRowShape, len(rec))
	}
	id, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %v", core.ErrInvalidID, err)
	}
	date, err := core.ParseDate(rec[1])
	if err != nil {
		return core.Transaction{}, err
	}
	kind, err := core.ParseKind(rec[2])
	if err != nil {
		return core.Transaction{}, err
	}
	cents, err := core.ParseDecimalToCents(rec[5])
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		ID:          id,
		Date:        date,
		Kind:        kind,
		Category:    rec[3],
		Description: rec[4],
		Amount:      core.Money{Cents: cents},
	}
	return t, t.Validate()
}

func encodeRow(t core.Transaction) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Date.String(),
		t.Kind.String(),
		t.Category,
		t.Description,
		t.Amount.String(),
	}
}

// SaveAll implements ledger.Saver. The rows are written to a temporary file
// next to the target and renamed over it once complete. The reader folds
// CRLF inside quoted text to LF, so text is only preserved exactly once it
// has been through core.NormalizeText.
func (r *Repository) SaveAll(ctx context.Context, txs []core.Transaction) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	for _, t := range txs {
		if err := w.Write(encodeRow(t)); err != nil {
			return fmt.Errorf("write transaction %d: %w", t.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}

	logger(ctx).DebugContext(ctx, "Saved transactions", applog.FieldPath, r.path, applog.FieldCount, len(txs))
	return nil
}
