package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type fakeBackend struct {
	orders   []model.Order
	reads    int
	writes   int
	readErr  error
	writeErr error
}

func (b *fakeBackend) Read(context.Context) ([]model.Order, error) {
	b.reads++
	if b.readErr != nil {
		return nil, b.readErr
	}
	return append([]model.Order{}, b.orders...), nil
}

func (b *fakeBackend) Write(_ context.Context, orders []model.Order) error {
	b.writes++
	if b.writeErr != nil {
		return b.writeErr
	}
	b.orders = append([]model.Order{}, orders...)
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%04d", prefix, n)
	}
}

func newTestRepository(t *testing.T, backend orderBackend, limit int) (*orderRepository, *OrderCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewOrderCache(backend, time.Minute, limit, testLogger())
	cache.now = clock.Now
	repo := newOrderRepository(cache, limit, testLogger())
	repo.now = clock.Now
	repo.newID = sequentialIDs("id-")
	return repo, cache, clock
}

func sampleDraft(submitter string) model.Order {
	return model.Order{
		SubmitterName: "Alice",
		SubmitterID:   submitter,
		SubjectName:   "Guild",
		Category:      "discord-bot",
		Budget:        "50",
		PaymentMethod: "paypal",
		Details:       "Moderation bot",
	}
}

func TestOrderStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewOrderStore(NewFile(filepath.Join(dir, ordersFileName), time.Second), testLogger())

	paidAt := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	created := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	want := []model.Order{
		{
			ID: "a1", Status: model.OrderStatusPending, PaymentState: model.PaymentUnpaid,
			SubmitterName: "Alice", SubmitterID: "123456789012345678", SubjectName: "Guild",
			SubjectReference: "https://discord.gg/x", Category: "website", Budget: model.BudgetCustom,
			PaymentMethod: "paypal", Details: "line1\nline2 \"quoted\"", Notes: "", CreatedAt: created,
		},
		{
			ID: "b2", Status: "In Progress", PaymentState: model.PaymentPaid, PaidAt: &paidAt,
			SubmitterName: "Bob", SubmitterID: "98765432109876543", SubjectName: "Shop",
			Category: "Unknown", Budget: "100", PaymentMethod: "card", Details: "ünïcode ✓",
			Notes: "call friday", CreatedAt: created.Add(time.Hour),
		},
	}

	if err := store.Write(context.Background(), want); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d orders, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if !g.CreatedAt.Equal(w.CreatedAt) {
			t.Fatalf("order %d created at mismatch: %v vs %v", i, g.CreatedAt, w.CreatedAt)
		}
		if (w.PaidAt == nil) != (g.PaidAt == nil) || (w.PaidAt != nil && !g.PaidAt.Equal(*w.PaidAt)) {
			t.Fatalf("order %d paid at mismatch: %v vs %v", i, g.PaidAt, w.PaidAt)
		}
		g.CreatedAt, w.CreatedAt = time.Time{}, time.Time{}
		g.PaidAt, w.PaidAt = nil, nil
		if g != w {
			t.Fatalf("order %d mismatch:\n got  %+v\n want %+v", i, g, w)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, ordersFileName))
	if err != nil {
		t.Fatalf("read raw file: %v", err)
	}
	if !strings.HasPrefix(string(raw), "[\n  {") {
		t.Fatalf("expected pretty-printed array, got %q", string(raw[:10]))
	}
}

func TestOrderStoreMissingFileReadsEmpty(t *testing.T) {
	store := NewOrderStore(NewFile(filepath.Join(t.TempDir(), ordersFileName), time.Second), testLogger())
	orders, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty collection, got %v", orders)
	}
}

func TestOrderStoreMalformedFileReadsEmptyAndIsMovedAside(t *testing.T) {
	cases := map[string]string{
		"not json":     "{not json",
		"wrong shape":  `{"id":"x"}`,
		"invalid item": `[{"id":"","createdAt":"2026-01-01T00:00:00Z","paymentState":"unpaid"}]`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ordersFileName)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("seed file: %v", err)
			}
			store := NewOrderStore(NewFile(path, time.Second), testLogger())
			store.now = func() time.Time { return time.Unix(1700000000, 0) }

			orders, err := store.Read(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(orders) != 0 {
				t.Fatalf("expected empty collection, got %v", orders)
			}
			if _, err := os.Stat(path + ".corrupt-1700000000"); err != nil {
				t.Fatalf("expected corrupt file to be preserved: %v", err)
			}
		})
	}
}

func TestFileOperationsHonourContext(t *testing.T) {
	file := NewFile(filepath.Join(t.TempDir(), "x.json"), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := file.Save(ctx, []int{1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled save, got %v", err)
	}
	var v []int
	if err := file.Load(ctx, &v); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled load, got %v", err)
	}
}

func TestFileWaitsForAbandonedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	file := NewFile(path, 20*time.Millisecond)

	release := make(chan struct{})
	finished := make(chan struct{})
	var calls atomic.Int32
	file.write = func(ctx context.Context, p string, data []byte) error {
		if calls.Add(1) == 1 {
			<-release
			err := writeReplace(ctx, p, data)
			close(finished)
			return err
		}
		return writeReplace(ctx, p, data)
	}

	if err := file.Save(context.Background(), "first"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected first write to time out, got %v", err)
	}
	if err := file.Save(context.Background(), "second"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected second write to wait for the first, got %v", err)
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected second write not to start, got %d writes", n)
	}

	close(release)
	<-finished
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected timed-out write not to replace the file, got %v", err)
	}

	file.timeout = time.Second
	if err := file.Save(context.Background(), "third"); err != nil {
		t.Fatalf("save after abandoned write failed: %v", err)
	}
	var got string
	if err := file.Load(context.Background(), &got); err != nil || got != "third" {
		t.Fatalf("expected latest write on disk, got %q err=%v", got, err)
	}
}

func TestWriteReplaceSkipsRenameAfterCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.json")
	if err := os.WriteFile(path, []byte(`"kept"`), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := writeReplace(ctx, path, []byte(`"late"`)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled replace, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `"kept"` {
		t.Fatalf("expected file untouched, got %s", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleaned up, got %d entries", len(entries))
	}
}

func TestCacheServesWithinTTLAndReloadsAfter(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{{ID: "a"}}}
	clock := &fakeClock{t: time.Now()}
	cache := NewOrderCache(backend, time.Minute, 10, testLogger())
	cache.now = clock.Now

	for i := 0; i < 3; i++ {
		if _, err := cache.Get(context.Background()); err != nil {
			t.Fatalf("get failed: %v", err)
		}
	}
	if backend.reads != 1 {
		t.Fatalf("expected single store read within ttl, got %d", backend.reads)
	}

	backend.orders = append(backend.orders, model.Order{ID: "b"})
	clock.Advance(time.Minute)
	orders, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if backend.reads != 2 || len(orders) != 2 {
		t.Fatalf("expected reload after ttl, reads=%d orders=%d", backend.reads, len(orders))
	}
}

func TestCacheGetReturnsCopy(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{{ID: "a", Status: "Pending"}}}
	cache := NewOrderCache(backend, time.Minute, 10, testLogger())

	orders, _ := cache.Get(context.Background())
	orders[0].Status = "mutated"

	again, _ := cache.Get(context.Background())
	if again[0].Status != "Pending" {
		t.Fatalf("expected snapshot to be isolated from callers, got %q", again[0].Status)
	}
}

func TestCacheWriteThroughVisibleImmediately(t *testing.T) {
	backend := &fakeBackend{}
	cache := NewOrderCache(backend, time.Hour, 10, testLogger())

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if err := cache.Put(context.Background(), []model.Order{{ID: "new"}}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if backend.writes != 1 || len(backend.orders) != 1 {
		t.Fatalf("expected synchronous write to store, writes=%d", backend.writes)
	}

	orders, _ := cache.Get(context.Background())
	if len(orders) != 1 || orders[0].ID != "new" {
		t.Fatalf("expected new value within ttl, got %v", orders)
	}
	if backend.reads != 1 {
		t.Fatalf("expected no reload after put, reads=%d", backend.reads)
	}
}

func TestCacheFailedWriteKeepsSnapshot(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{{ID: "old"}}}
	cache := NewOrderCache(backend, time.Hour, 10, testLogger())
	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	backend.writeErr = errors.New("disk full")
	if err := cache.Put(context.Background(), []model.Order{{ID: "old"}, {ID: "lost"}}); err == nil {
		t.Fatal("expected write error")
	}

	orders, _ := cache.Get(context.Background())
	if len(orders) != 1 || orders[0].ID != "old" {
		t.Fatalf("expected snapshot unchanged after failed write, got %v", orders)
	}
}

func TestCacheReadFailureServesPreviousSnapshot(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{{ID: "a"}}}
	clock := &fakeClock{t: time.Now()}
	cache := NewOrderCache(backend, time.Minute, 10, testLogger())
	cache.now = clock.Now

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	clock.Advance(2 * time.Minute)
	backend.readErr = errors.New("io error")

	orders, err := cache.Get(context.Background())
	if err == nil {
		t.Fatal("expected read error to be reported")
	}
	if len(orders) != 1 {
		t.Fatalf("expected previous snapshot, got %v", orders)
	}

	empty := NewOrderCache(&fakeBackend{readErr: errors.New("io error")}, time.Minute, 10, testLogger())
	orders, err = empty.Get(context.Background())
	if err == nil || orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty collection with error, got %v %v", orders, err)
	}
}

func TestCacheAppliesRetentionOnLoad(t *testing.T) {
	backend := &fakeBackend{}
	for i := 0; i < 12; i++ {
		backend.orders = append(backend.orders, model.Order{ID: fmt.Sprintf("o%02d", i)})
	}
	cache := NewOrderCache(backend, time.Minute, 10, testLogger())
	orders, _ := cache.Get(context.Background())
	if len(orders) != 10 || orders[0].ID != "o02" || orders[9].ID != "o11" {
		t.Fatalf("expected the 10 newest orders, got %d starting at %s", len(orders), orders[0].ID)
	}
	if backend.writes != 0 {
		t.Fatalf("expected trimming on load to stay in memory, writes=%d", backend.writes)
	}
}

func TestRepositoryCreateAssignsInitialState(t *testing.T) {
	backend := &fakeBackend{}
	repo, _, clock := newTestRepository(t, backend, 500)

	draft := sampleDraft("123456789012345678")
	draft.Status = "Accepted"
	draft.Notes = "should be cleared"
	order, err := repo.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.ID == "" || order.Status != model.OrderStatusPending || order.PaymentState != model.PaymentUnpaid || order.PaidAt != nil {
		t.Fatalf("unexpected initial state: %+v", order)
	}
	if order.Notes != "" || !order.CreatedAt.Equal(clock.Now()) {
		t.Fatalf("unexpected notes or created at: %+v", order)
	}
	if len(backend.orders) != 1 || backend.orders[0].ID != order.ID {
		t.Fatalf("expected order persisted, got %v", backend.orders)
	}
}

func TestRepositoryCreateSkipsExistingIDs(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{{ID: "id-0001", CreatedAt: time.Now(), PaymentState: model.PaymentUnpaid}}}
	repo, _, _ := newTestRepository(t, backend, 500)

	order, err := repo.Create(context.Background(), sampleDraft("123456789012345678"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.ID != "id-0002" {
		t.Fatalf("expected colliding id to be skipped, got %s", order.ID)
	}
}

func TestRepositoryRetentionEvictsOldest(t *testing.T) {
	backend := &fakeBackend{}
	repo, _, _ := newTestRepository(t, backend, 500)

	for i := 0; i < 510; i++ {
		if _, err := repo.Create(context.Background(), sampleDraft("123456789012345678")); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	if len(backend.orders) != 500 {
		t.Fatalf("expected 500 retained orders, got %d", len(backend.orders))
	}
	if backend.orders[0].ID != "id-0011" || backend.orders[499].ID != "id-0510" {
		t.Fatalf("expected oldest 10 evicted, first=%s last=%s", backend.orders[0].ID, backend.orders[499].ID)
	}
	for i := 1; i < len(backend.orders); i++ {
		if backend.orders[i-1].ID >= backend.orders[i].ID {
			t.Fatalf("expected original relative order at %d", i)
		}
	}
}

func TestRepositoryCreateReportsStorageFailure(t *testing.T) {
	backend := &fakeBackend{writeErr: errors.New("disk full")}
	repo, cache, _ := newTestRepository(t, backend, 500)

	if _, err := repo.Create(context.Background(), sampleDraft("123456789012345678")); !errors.Is(err, domainErrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	orders, _ := cache.Get(context.Background())
	if len(orders) != 0 {
		t.Fatalf("expected no phantom order in cache, got %v", orders)
	}

	backend.writeErr = nil
	backend.readErr = errors.New("io error")
	fresh, _, _ := newTestRepository(t, backend, 500)
	if _, err := fresh.Create(context.Background(), sampleDraft("123456789012345678")); !errors.Is(err, domainErrors.ErrStorage) {
		t.Fatalf("expected storage error on failed load, got %v", err)
	}
}

func TestRepositoryFindByIDPrefixFirstInsertedWins(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{
		{ID: "abc123ff", Status: model.OrderStatusPending},
		{ID: "abcd99ee", Status: model.OrderStatusPending},
	}}
	repo, _, _ := newTestRepository(t, backend, 500)

	order, err := repo.FindByIDPrefix(context.Background(), "abc")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if order.ID != "abc123ff" {
		t.Fatalf("expected first inserted match, got %s", order.ID)
	}
	if order, _ := repo.FindByIDPrefix(context.Background(), "abcd"); order.ID != "abcd99ee" {
		t.Fatalf("expected longer prefix to disambiguate, got %s", order.ID)
	}
	if _, err := repo.FindByIDPrefix(context.Background(), "ABC"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
	if _, err := repo.FindByIDPrefix(context.Background(), ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected empty prefix to miss, got %v", err)
	}
}

func TestRepositoryFindLatestPendingBySubmitter(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{
		{ID: "1", SubmitterID: "123", Status: model.OrderStatusPending},
		{ID: "2", SubmitterID: "123", Status: model.OrderStatusAccepted},
		{ID: "3", SubmitterID: "456", Status: model.OrderStatusPending},
		{ID: "4", SubmitterID: "123", Status: model.OrderStatusPending},
		{ID: "5", SubmitterID: "123", Status: model.OrderStatusDeclined},
	}}
	repo, _, _ := newTestRepository(t, backend, 500)

	order, err := repo.FindLatestPendingBySubmitter(context.Background(), "123")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if order.ID != "4" {
		t.Fatalf("expected most recent pending order, got %s", order.ID)
	}
	if _, err := repo.FindLatestPendingBySubmitter(context.Background(), "789"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepositoryFindLatestPendingIgnoresAcceptedNewer(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{
		{ID: "p", SubmitterID: "123", Status: model.OrderStatusPending},
		{ID: "a", SubmitterID: "123", Status: model.OrderStatusAccepted},
	}}
	repo, _, _ := newTestRepository(t, backend, 500)

	order, err := repo.FindLatestPendingBySubmitter(context.Background(), "123")
	if err != nil || order.ID != "p" {
		t.Fatalf("expected pending order p, got %v %v", order, err)
	}
}

func TestRepositoryListByStatus(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{
		{ID: "1", Status: "Pending"},
		{ID: "2", Status: "Accepted"},
		{ID: "3", Status: "pending"},
	}}
	repo, _, _ := newTestRepository(t, backend, 500)

	all, _ := repo.ListByStatus(context.Background(), "")
	if len(all) != 3 {
		t.Fatalf("expected all orders, got %d", len(all))
	}
	pending, _ := repo.ListByStatus(context.Background(), "PENDING")
	if len(pending) != 2 || pending[0].ID != "1" || pending[1].ID != "3" {
		t.Fatalf("expected case-insensitive chronological match, got %v", pending)
	}
	none, _ := repo.ListByStatus(context.Background(), "Shipped")
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %v", none)
	}
}

func TestRepositorySetNoteIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	repo, _, _ := newTestRepository(t, backend, 500)
	order, _ := repo.Create(context.Background(), sampleDraft("123456789012345678"))

	for i := 0; i < 2; i++ {
		updated, err := repo.SetNote(context.Background(), order.ID[:4], "x")
		if err != nil {
			t.Fatalf("set note failed: %v", err)
		}
		if updated.Notes != "x" {
			t.Fatalf("unexpected note %q", updated.Notes)
		}
	}
	if len(backend.orders) != 1 || backend.orders[0].Notes != "x" {
		t.Fatalf("expected single order with note, got %v", backend.orders)
	}
	if backend.writes != 3 {
		t.Fatalf("expected every call to write through, writes=%d", backend.writes)
	}
}

func TestRepositorySetPaymentToggle(t *testing.T) {
	backend := &fakeBackend{}
	repo, _, clock := newTestRepository(t, backend, 500)
	order, _ := repo.Create(context.Background(), sampleDraft("123456789012345678"))

	paid, err := repo.SetPayment(context.Background(), order.ID, true)
	if err != nil {
		t.Fatalf("set payment failed: %v", err)
	}
	if paid.PaymentState != model.PaymentPaid || paid.PaidAt == nil || !paid.PaidAt.Equal(clock.Now()) {
		t.Fatalf("unexpected paid state: %+v", paid)
	}

	unpaid, err := repo.SetPayment(context.Background(), order.ID, false)
	if err != nil {
		t.Fatalf("set payment failed: %v", err)
	}
	if unpaid.PaymentState != model.PaymentUnpaid || unpaid.PaidAt != nil {
		t.Fatalf("unexpected unpaid state: %+v", unpaid)
	}
	if backend.orders[0].PaidAt != nil {
		t.Fatal("expected paidAt cleared in store")
	}
}

func TestRepositoryUpdateStatusAndNotFound(t *testing.T) {
	backend := &fakeBackend{}
	repo, _, _ := newTestRepository(t, backend, 500)
	order, _ := repo.Create(context.Background(), sampleDraft("123456789012345678"))

	updated, err := repo.UpdateStatus(context.Background(), order.ID, "In Progress")
	if err != nil || updated.Status != "In Progress" {
		t.Fatalf("unexpected update result %v %v", updated, err)
	}
	if _, err := repo.UpdateStatus(context.Background(), "zzz", "Done"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.SetNote(context.Background(), "zzz", "x"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.SetPayment(context.Background(), "zzz", true); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepositoryUpdateFailureLeavesCacheUntouched(t *testing.T) {
	backend := &fakeBackend{}
	repo, cache, _ := newTestRepository(t, backend, 500)
	order, _ := repo.Create(context.Background(), sampleDraft("123456789012345678"))

	backend.writeErr = errors.New("disk full")
	if _, err := repo.UpdateStatus(context.Background(), order.ID, "Done"); !errors.Is(err, domainErrors.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	orders, _ := cache.Get(context.Background())
	if orders[0].Status != model.OrderStatusPending {
		t.Fatalf("expected cached status unchanged, got %q", orders[0].Status)
	}
}

func TestRepositoryDecideLatestPending(t *testing.T) {
	backend := &fakeBackend{orders: []model.Order{
		{ID: "1", SubmitterID: "123", Status: model.OrderStatusPending},
		{ID: "2", SubmitterID: "123", Status: model.OrderStatusPending},
	}}
	repo, _, _ := newTestRepository(t, backend, 500)

	order, err := repo.DecideLatestPending(context.Background(), "123", model.OrderStatusAccepted)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if order.ID != "2" || backend.orders[1].Status != model.OrderStatusAccepted || backend.orders[0].Status != model.OrderStatusPending {
		t.Fatalf("expected only newest pending order decided, got %v", backend.orders)
	}
	if _, err := repo.DecideLatestPending(context.Background(), "999", model.OrderStatusAccepted); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStorageEndToEndWithFiles(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(Options{Dir: dir, CacheTTL: time.Hour, MaxOrders: 500, Timeout: time.Second}, testLogger())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if err := storage.Warm(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}

	order, err := storage.Orders().Create(context.Background(), sampleDraft("123456789012345678"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reopened, err := New(Options{Dir: dir, CacheTTL: time.Hour, MaxOrders: 500, Timeout: time.Second}, testLogger())
	if err != nil {
		t.Fatalf("reopen storage: %v", err)
	}
	found, err := reopened.Orders().FindByIDPrefix(context.Background(), order.ID[:8])
	if err != nil {
		t.Fatalf("expected order to survive restart: %v", err)
	}
	if found.SubmitterID != "123456789012345678" || found.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order after restart: %+v", found)
	}
}

func TestSettingsRepository(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(Options{Dir: dir, CacheTTL: time.Minute, MaxOrders: 10, Timeout: time.Second}, testLogger())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	repo := storage.Settings()

	settings, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := settings.ChannelID(); ok {
		t.Fatal("expected missing config file to have no channel")
	}
	if _, err := os.Stat(filepath.Join(dir, settingsFileName)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected config file not to be created by a read, got %v", err)
	}

	channel := "112233445566778899"
	if err := repo.Save(context.Background(), model.Settings{NotifyChannelID: &channel}); err != nil {
		t.Fatalf("save: %v", err)
	}
	settings, err = repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, ok := settings.ChannelID(); !ok || got != channel {
		t.Fatalf("expected saved channel, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte("garbage"), 0o600); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}
	settings, err = repo.Load(context.Background())
	if err != nil {
		t.Fatalf("expected malformed settings to degrade, got %v", err)
	}
	if _, ok := settings.ChannelID(); ok {
		t.Fatal("expected malformed settings to read as unset")
	}
}
