// Package ledger defines the persistence and event ports the transaction
// service operates against.
package ledger

import (
	"context"
	"errors"

	"finease/internal/core"
)

// ErrNotFound is returned by FindByID when no record has the given id.
var ErrNotFound = errors.New("transaction not found")

// Event actions published after successful writes.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type (
	// Store is the narrow document-store port. Implementations assign the
	// record id on Insert; ids are opaque tokens to everything above the
	// store. FindByOwner returns records in insertion order, which the sort
	// engine's stability contract relies on for tie-breaking.
	Store interface {
		Insert(ctx context.Context, t core.Transaction) (id string, err error)
		FindByOwner(ctx context.Context, owner string) ([]core.Transaction, error)
		FindByID(ctx context.Context, id string) (core.Transaction, error)
		UpdateByID(ctx context.Context, id string, patch core.Patch) (modified int64, err error)
		DeleteByID(ctx context.Context, id string) (deleted int64, err error)
	}

	// EventPublisher receives a change notification after each successful
	// write. Publishing is best-effort; failures never surface to callers.
	EventPublisher interface {
		PublishLedgerEvent(ctx context.Context, e Event) error
	}
)

// Event describes a completed write to the ledger.
type Event struct {
	Action string
	ID     string
	Owner  string
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishLedgerEvent(context.Context, Event) error { return nil }
