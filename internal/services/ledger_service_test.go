package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finease/internal/core"
	"finease/internal/ledger"
	"finease/internal/ledger/memory"
)

// recordingStore counts calls so tests can assert that validation failures
// never reach the store.
type recordingStore struct {
	ledger.Store
	calls int
}

func (r *recordingStore) Insert(ctx context.Context, t core.Transaction) (string, error) {
	r.calls++
	return r.Store.Insert(ctx, t)
}

func (r *recordingStore) FindByOwner(ctx context.Context, owner string) ([]core.Transaction, error) {
	r.calls++
	return r.Store.FindByOwner(ctx, owner)
}

func (r *recordingStore) FindByID(ctx context.Context, id string) (core.Transaction, error) {
	r.calls++
	return r.Store.FindByID(ctx, id)
}

func (r *recordingStore) UpdateByID(ctx context.Context, id string, patch core.Patch) (int64, error) {
	r.calls++
	return r.Store.UpdateByID(ctx, id, patch)
}

func (r *recordingStore) DeleteByID(ctx context.Context, id string) (int64, error) {
	r.calls++
	return r.Store.DeleteByID(ctx, id)
}

// failingStore simulates an unavailable backend.
type failingStore struct{}

var errStoreDown = errors.New("connection reset")

func (failingStore) Insert(context.Context, core.Transaction) (string, error) {
	return "", errStoreDown
}
func (failingStore) FindByOwner(context.Context, string) ([]core.Transaction, error) {
	return nil, errStoreDown
}
func (failingStore) FindByID(context.Context, string) (core.Transaction, error) {
	return core.Transaction{}, errStoreDown
}
func (failingStore) UpdateByID(context.Context, string, core.Patch) (int64, error) {
	return 0, errStoreDown
}
func (failingStore) DeleteByID(context.Context, string) (int64, error) {
	return 0, errStoreDown
}

type capturingPublisher struct {
	events []ledger.Event
}

func (p *capturingPublisher) PublishLedgerEvent(_ context.Context, e ledger.Event) error {
	p.events = append(p.events, e)
	return nil
}

func newTestService() (*LedgerService, *recordingStore, *capturingPublisher) {
	store := &recordingStore{Store: memory.New()}
	pub := &capturingPublisher{}
	svc := NewLedgerService(store, pub)
	return svc, store, pub
}

func TestListMissingOwnerSkipsStore(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.List(context.Background(), "", "", "")
	if !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("err = %v, want ErrMissingOwner", err)
	}
	if store.calls != 0 {
		t.Errorf("store called %d times for invalid request", store.calls)
	}
}

func TestListSortsTransactions(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, amount := range []any{10, 5, 20} {
		if _, err := svc.Create(ctx, core.RawTransaction{Owner: "a@x.com", Kind: "expense", Amount: amount}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	txs, err := svc.List(ctx, "a@x.com", "amount", "desc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 3 || txs[0].Amount != 20 || txs[1].Amount != 10 || txs[2].Amount != 5 {
		t.Errorf("unexpected order: %+v", txs)
	}
}

func TestCreateNormalizesAndPublishes(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.RawTransaction{
		Owner:  "a@x.com",
		Kind:   "income",
		Amount: "100",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty id")
	}

	got, found, err := svc.Get(ctx, id)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Amount != 100 {
		t.Errorf("amount not coerced: %v", got.Amount)
	}
	if got.CreatedAt.IsZero() {
		t.Error("createdAt not defaulted")
	}

	if len(pub.events) != 1 || pub.events[0].Action != ledger.ActionCreated || pub.events[0].ID != id {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestGetInvalidIDSkipsStore(t *testing.T) {
	svc, store, _ := newTestService()

	_, _, err := svc.Get(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
	if store.calls != 0 {
		t.Errorf("store called %d times for invalid id", store.calls)
	}
}

func TestGetMissingRecordIsNotAnError(t *testing.T) {
	svc, _, _ := newTestService()

	_, found, err := svc.Get(context.Background(), "2f1b649a-76cb-4b22-9d2c-4f3a15b6a001")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if found {
		t.Error("found = true for absent record")
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.RawTransaction{Owner: "a@x.com", Kind: "expense", Category: "food", Amount: 10})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := svc.Update(ctx, id, map[string]any{"amount": 25, "ignored": "x"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Fatalf("modified = %d, want 1", n)
	}

	got, _, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 25 {
		t.Errorf("amount = %v, want 25", got.Amount)
	}
	if got.Category != "food" || got.Kind != "expense" {
		t.Errorf("untouched fields changed: %+v", got)
	}

	if last := pub.events[len(pub.events)-1]; last.Action != ledger.ActionUpdated {
		t.Errorf("last event = %+v", last)
	}
}

func TestUpdateUnrecognizedFieldsOnlySkipsStore(t *testing.T) {
	svc, store, pub := newTestService()
	ctx := context.Background()

	id, err := svc.Create(ctx, core.RawTransaction{Owner: "a@x.com", Kind: "expense", Amount: 10})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	calls := store.calls

	n, err := svc.Update(ctx, id, map[string]any{"bogus": 1, "alsoBogus": "x"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 0 {
		t.Errorf("modified = %d, want 0", n)
	}
	if store.calls != calls {
		t.Errorf("store called %d times for an empty patch", store.calls-calls)
	}
	if last := pub.events[len(pub.events)-1]; last.Action != ledger.ActionCreated {
		t.Errorf("no-op update published events: %+v", pub.events)
	}

	got, _, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount != 10 {
		t.Errorf("amount = %v, want 10", got.Amount)
	}
}

func TestUpdateInvalidIDSkipsStore(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Update(context.Background(), "###", map[string]any{"amount": 1})
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
	if store.calls != 0 {
		t.Errorf("store called %d times for invalid id", store.calls)
	}
}

func TestDeleteMissingRecordReportsZero(t *testing.T) {
	svc, _, pub := newTestService()

	n, err := svc.Delete(context.Background(), "2f1b649a-76cb-4b22-9d2c-4f3a15b6a001")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if n != 0 {
		t.Errorf("deleted = %d, want 0", n)
	}
	if len(pub.events) != 0 {
		t.Errorf("no-op delete published events: %+v", pub.events)
	}
}

func TestOverviewAndReport(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	seed := []core.RawTransaction{
		{Owner: "a@x.com", Kind: "income", Amount: "100"},
		{Owner: "a@x.com", Kind: "expense", Amount: 50, Category: "food"},
		{Owner: "b@x.com", Kind: "income", Amount: 999},
	}
	for _, raw := range seed {
		if _, err := svc.Create(ctx, raw); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	o, err := svc.Overview(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if o.TotalIncome != 100 || o.TotalExpense != 50 || o.Balance != 50 {
		t.Errorf("overview = %+v", o)
	}

	rep, err := svc.CategoryReport(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.NetBalance != 50 || len(rep.CategoryData) != 1 || rep.CategoryData[0].Category != "food" {
		t.Errorf("report = %+v", rep)
	}
}

func TestOverviewMissingOwnerSkipsStore(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Overview(context.Background(), "")
	if !errors.Is(err, ErrMissingOwner) {
		t.Fatalf("err = %v, want ErrMissingOwner", err)
	}
	if store.calls != 0 {
		t.Errorf("store called %d times for invalid request", store.calls)
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	svc := NewLedgerService(failingStore{}, nil)
	ctx := context.Background()

	if _, err := svc.Overview(ctx, "a@x.com"); !errors.Is(err, errStoreDown) {
		t.Errorf("overview err = %v, want wrapped store error", err)
	}
	if _, err := svc.Create(ctx, core.RawTransaction{Owner: "a@x.com"}); !errors.Is(err, errStoreDown) {
		t.Errorf("create err = %v, want wrapped store error", err)
	}
}

func TestServiceClockInjection(t *testing.T) {
	svc, _, _ := newTestService()
	fixed := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	id, err := svc.Create(context.Background(), core.RawTransaction{Owner: "a@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, fixed)
	}
}
