// Package services coordinates the ledger operations exposed to transports.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"finease/internal/core"
	"finease/internal/ledger"
)

var (
	// ErrMissingOwner reports a request that omitted the owner identity.
	// Detected before any store call.
	ErrMissingOwner = errors.New("owner is required")

	// ErrInvalidID reports a record identifier that cannot be parsed.
	// Detected before any store call.
	ErrInvalidID = errors.New("invalid transaction id")
)

// LedgerService implements the transaction operations over an injected
// Store. It holds no state of its own; every call is a pure function of the
// request plus the store's current contents.
type LedgerService struct {
	store     ledger.Store
	publisher ledger.EventPublisher
	now       func() time.Time
}

func NewLedgerService(store ledger.Store, publisher ledger.EventPublisher) *LedgerService {
	if publisher == nil {
		publisher = ledger.NoopPublisher{}
	}
	return &LedgerService{
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// List returns the owner's transactions ordered by the requested field and
// direction. Unrecognized sortBy values fall back to date; unrecognized
// order values fall back to descending.
func (s *LedgerService) List(ctx context.Context, owner, sortBy, order string) ([]core.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrMissingOwner
	}
	txs, err := s.store.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	core.SortTransactions(txs, core.ParseSortField(sortBy), core.ParseSortOrder(order))
	return txs, nil
}

// Create normalizes the raw payload and persists it, returning the assigned
// id. Normalization never rejects, so the only failure mode is the store.
func (s *LedgerService) Create(ctx context.Context, raw core.RawTransaction) (string, error) {
	t := core.Normalize(raw, s.now())
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	s.publish(ctx, ledger.ActionCreated, id, t.Owner)
	return id, nil
}

// Get looks up one transaction. A missing record is a distinct absent state,
// not an error.
func (s *LedgerService) Get(ctx context.Context, id string) (core.Transaction, bool, error) {
	if err := checkID(id); err != nil {
		return core.Transaction{}, false, err
	}
	t, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("find transaction: %w", err)
	}
	return t, true, nil
}

// Update merges the recognized fields into the stored record and reports how
// many records changed. Zero means the id matched nothing; callers must
// inspect the count to detect a no-op.
func (s *LedgerService) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	if err := checkID(id); err != nil {
		return 0, err
	}
	patch := core.NormalizePatch(fields, s.now())
	if patch.IsZero() {
		// No recognized fields; nothing to send to the store.
		return 0, nil
	}
	n, err := s.store.UpdateByID(ctx, id, patch)
	if err != nil {
		return 0, fmt.Errorf("update transaction: %w", err)
	}
	if n > 0 {
		s.publish(ctx, ledger.ActionUpdated, id, "")
	}
	return n, nil
}

// Delete removes one transaction and reports how many records were deleted.
func (s *LedgerService) Delete(ctx context.Context, id string) (int64, error) {
	if err := checkID(id); err != nil {
		return 0, err
	}
	n, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	if n > 0 {
		s.publish(ctx, ledger.ActionDeleted, id, "")
	}
	return n, nil
}

// Overview computes the income/expense totals and balance for one owner.
func (s *LedgerService) Overview(ctx context.Context, owner string) (core.Overview, error) {
	txs, err := s.findForOwner(ctx, owner)
	if err != nil {
		return core.Overview{}, err
	}
	return core.Summarize(txs), nil
}

// CategoryReport computes the totals plus the per-category expense
// breakdown for one owner.
func (s *LedgerService) CategoryReport(ctx context.Context, owner string) (core.CategoryReport, error) {
	txs, err := s.findForOwner(ctx, owner)
	if err != nil {
		return core.CategoryReport{}, err
	}
	return core.Report(txs), nil
}

func (s *LedgerService) findForOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ErrMissingOwner
	}
	txs, err := s.store.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	return txs, nil
}

func (s *LedgerService) publish(ctx context.Context, action, id, owner string) {
	err := s.publisher.PublishLedgerEvent(ctx, ledger.Event{Action: action, ID: id, Owner: owner})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"error", err,
			"action", action,
			"id", id)
	}
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
