package backend

import (
	"context"
	"fmt"

	"smartspend/internal/amqp"
	"smartspend/internal/ledger"
	"smartspend/internal/ledger/csvfile"
	"smartspend/internal/ledger/memory"
	applog "smartspend/internal/log"
	"smartspend/internal/services"
	"smartspend/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config, store *memory.Store) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var repo ledger.Repository
	switch config.Type {
	case CSVBackend:
		repo = csvfile.New(config.DataFile)
		f.logger.InfoContext(ctx, "Initialized backend",
			applog.FieldBackend, config.Type.String(),
			applog.FieldOperation, applog.OpStartup,
			applog.FieldPath, config.DataFile)
	case SQLiteBackend:
		sqliteRepo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		repo = sqliteRepo
		f.logger.InfoContext(ctx, "Initialized backend",
			applog.FieldBackend, config.Type.String(),
			applog.FieldOperation, applog.OpStartup,
			applog.FieldPath, config.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	service := services.NewLedgerService(store, repo, f.createPublisher(ctx, config), f.logger)

	return &BackendResult{
		Service: service,
		Cleanup: service.Close,
	}, nil
}

// createPublisher returns nil when AMQP is not configured or unreachable;
// the ledger works without it.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) services.EventPublisher {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", applog.FieldError, err)
		return nil
	}
	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
