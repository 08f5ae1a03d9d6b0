package services

import (
	"context"
	"fmt"
	"io"

	"smartspend/internal/core"
	"smartspend/internal/ledger"
	"smartspend/internal/ledger/memory"
	applog "smartspend/internal/log"
)

// EventPublisher announces ledger changes to other systems.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, t core.Transaction) error
	PublishTransactionDeleted(ctx context.Context, id int64) error
}

// LedgerService orchestrates the session store, the backing repository and
// the optional event publisher.
type LedgerService struct {
	store     *memory.Store
	repo      ledger.Repository
	publisher EventPublisher
	logger    *applog.Logger
	events    *applog.StructuredLogger
}

// NewLedgerService wires the service. publisher may be nil; logger nil
// falls back to the slog default.
func NewLedgerService(store *memory.Store, repo ledger.Repository, publisher EventPublisher, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	logger = logger.WithComponent(applog.ComponentLedger)
	return &LedgerService{
		store:     store,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		events:    applog.NewStructuredLogger(logger),
	}
}

// Load fills the store from the repository, replacing anything in memory.
func (s *LedgerService) Load(ctx context.Context) error {
	txs, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	s.store.Load(txs)
	s.logger.InfoContext(ctx, "Transactions loaded", applog.FieldCount, len(txs))
	return nil
}

// Add records a new transaction. Publishing failures are logged and do not
// undo the add.
func (s *LedgerService) Add(ctx context.Context, date core.Date, kind core.Kind, category, description string, amount core.Money) (core.Transaction, error) {
	id, err := s.store.Add(date, kind, category, description, amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add %s: %w", kind, err)
	}
	t, _ := s.store.Get(id)
	s.events.LogTransactionCreated(ctx, t.ID, t.Kind.String(), t.Category, t.Amount.Cents)

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionCreated(ctx, t); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish created event", publishFailure(id, err)...)
		}
	}
	return t, nil
}

// Delete removes the transaction with id and reports whether it existed.
func (s *LedgerService) Delete(ctx context.Context, id int64) bool {
	found := s.store.DeleteByID(id)
	s.events.LogTransactionDeleted(ctx, id, found)
	if !found {
		return false
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionDeleted(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish deleted event", publishFailure(id, err)...)
		}
	}
	return true
}

func publishFailure(id int64, err error) []any {
	return []any{
		applog.FieldTransactionID, id,
		applog.FieldOperation, applog.OpPublish,
		applog.FieldErrorType, applog.ErrorTypeNetwork,
		applog.FieldError, err,
	}
}

func (s *LedgerService) Get(id int64) (core.Transaction, bool) {
	return s.store.Get(id)
}

func (s *LedgerService) List() []core.Transaction {
	return s.store.List()
}

func (s *LedgerService) ListByCategory(category string) []core.Transaction {
	return s.store.ListByCategory(category)
}

func (s *LedgerService) Summary() core.Summary {
	return s.store.Summarize()
}

func (s *LedgerService) Len() int {
	return s.store.Len()
}

// Save writes the whole store back to the repository.
func (s *LedgerService) Save(ctx context.Context) error {
	txs := s.store.Snapshot()
	if err := s.repo.SaveAll(ctx, txs); err != nil {
		s.events.LogError(ctx, "Failed to save transactions", err, applog.ComponentStorage, applog.OpSave,
			applog.NewFields().WithErrorType(applog.ErrorTypeStorage))
		return fmt.Errorf("save transactions: %w", err)
	}
	s.logger.InfoContext(ctx, "Transactions saved", applog.FieldCount, len(txs))
	return nil
}

// Close releases the repository and publisher when they hold resources.
func (s *LedgerService) Close() error {
	var errs []error

	if c, ok := s.repo.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("repository: %w", err))
		}
	}

	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
