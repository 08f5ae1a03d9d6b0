package ledger

import (
	"context"

	"smartspend/internal/core"
)

// Ports for the backing store adapters.
type (
	// Loader reads every persisted transaction. A missing store yields an
	// empty slice and no error.
	Loader interface {
		LoadAll(ctx context.Context) ([]core.Transaction, error)
	}

	// Saver replaces the persisted collection with txs, in the given order.
	Saver interface {
		SaveAll(ctx context.Context, txs []core.Transaction) error
	}

	Repository interface {
		Loader
		Saver
	}
)
