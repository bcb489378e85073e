package protocol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/louisbranch/sharedstate/internal/platform/errors"
	"github.com/louisbranch/sharedstate/internal/platform/requestctx"
	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

type failingGroups struct{ Groups }

func (failingGroups) Join(string, Watcher) error { return errors.New("transport refused") }

func TestJoinPushesCurrentState(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	w := newFakeWatcher("a")

	snap, err := h.Join(context.Background(), w, "  room ")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !snap.IsEmpty() {
		t.Fatalf("snapshot = %+v, want empty", snap)
	}
	n, ok := w.last()
	if !ok {
		t.Fatal("expected push after join")
	}
	if n.Room != "room" || !n.IsEmpty() {
		t.Fatalf("push = %+v, want empty state for room", n)
	}
}

func TestJoinFailureReadsNothing(t *testing.T) {
	registry := scriptedRegistry()
	h := NewHandler(registry, failingGroups{NewHub()})
	w := newFakeWatcher("a")

	_, err := h.Join(context.Background(), w, "room")
	if code := apperrors.CodeOf(err); code != apperrors.CodeJoinError {
		t.Fatalf("code = %q, want %q", code, apperrors.CodeJoinError)
	}
	if !apperrors.CodeOf(err).Retryable() {
		t.Fatal("expected join error to be retryable")
	}
	if len(w.notifications()) != 0 {
		t.Fatal("expected no push on join failure")
	}
	if registry.Rooms() != 0 {
		t.Fatalf("rooms = %d, want 0", registry.Rooms())
	}
}

func TestJoinRoomFullIsJoinError(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub(WithMaxWatchers(1)))
	if _, err := h.Join(context.Background(), newFakeWatcher("a"), "room"); err != nil {
		t.Fatalf("join a: %v", err)
	}
	_, err := h.Join(context.Background(), newFakeWatcher("b"), "room")
	if !errors.Is(err, ErrRoomFull) {
		t.Fatalf("err = %v, want ErrRoomFull in chain", err)
	}
	if apperrors.CodeOf(err) != apperrors.CodeJoinError {
		t.Fatalf("code = %q, want JOIN_ERROR", apperrors.CodeOf(err))
	}
}

func TestGetPushesToRequesterOnly(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	a, b := newFakeWatcher("a"), newFakeWatcher("b")
	ctx := context.Background()
	_, _ = h.Join(ctx, a, "room")
	_, _ = h.Join(ctx, b, "room")
	if _, err := h.Update(ctx, a, "room", store.NoVersion, raw(`{"x":1}`)); err != nil {
		t.Fatalf("update: %v", err)
	}
	before := len(b.notifications())

	snap, err := h.Get(ctx, a, "room")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if snap.Version != "v1" {
		t.Fatalf("version = %s, want v1", snap.Version)
	}
	n, _ := a.last()
	if n.Version != "v1" || string(n.Value) != `{"x":1}` {
		t.Fatalf("push = %s/%s, want v1/{\"x\":1}", n.Version, n.Value)
	}
	if len(b.notifications()) != before {
		t.Fatal("get must not notify other watchers")
	}
}

func TestGetWithoutWatcher(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	if _, err := h.Get(context.Background(), nil, "room"); err != nil {
		t.Fatalf("get: %v", err)
	}
}

func TestUpdateBroadcastsToOthers(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	a, b, c := newFakeWatcher("a"), newFakeWatcher("b"), newFakeWatcher("c")
	for _, w := range []*fakeWatcher{a, b, c} {
		if _, err := h.Join(ctx, w, "room"); err != nil {
			t.Fatalf("join %s: %v", w.id, err)
		}
	}
	outsider := newFakeWatcher("d")
	_, _ = h.Join(ctx, outsider, "other")
	before := testutil.ToFloat64(h.metrics.notifications.WithLabelValues(kindBroadcast))

	snap, err := h.Update(ctx, a, "room", store.NoVersion, raw(`[1,2]`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if snap.Version != "v1" || string(snap.Value) != `[1,2]` {
		t.Fatalf("reply = %s/%s, want v1/[1,2]", snap.Version, snap.Value)
	}
	if got := len(a.notifications()); got != 1 {
		t.Fatalf("requester notifications = %d, want only the join push", got)
	}
	for _, w := range []*fakeWatcher{b, c} {
		n, _ := w.last()
		if n.Version != "v1" || string(n.Value) != `[1,2]` || n.Room != "room" {
			t.Fatalf("%s notification = %+v, want v1/[1,2]", w.id, n)
		}
	}
	if got := len(outsider.notifications()); got != 1 {
		t.Fatalf("outsider notifications = %d, want only its join push", got)
	}
	if got := testutil.ToFloat64(h.metrics.notifications.WithLabelValues(kindBroadcast)) - before; got != 2 {
		t.Fatalf("broadcast counter delta = %v, want 2", got)
	}
}

func TestUpdateStaleIsOutdatedWithoutBroadcast(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	a, b := newFakeWatcher("a"), newFakeWatcher("b")
	_, _ = h.Join(ctx, a, "room")
	_, _ = h.Join(ctx, b, "room")
	if _, err := h.Update(ctx, a, "room", store.NoVersion, raw(`1`)); err != nil {
		t.Fatalf("first update: %v", err)
	}
	before := len(a.notifications())
	outdatedBefore := testutil.ToFloat64(h.metrics.requests.WithLabelValues(OpUpdate, outcomeOutdated))

	_, err := h.Update(ctx, b, "room", store.NoVersion, raw(`2`))
	if apperrors.CodeOf(err) != apperrors.CodeOutdatedUpdate {
		t.Fatalf("code = %q, want OUTDATED_UPDATE", apperrors.CodeOf(err))
	}
	if len(a.notifications()) != before {
		t.Fatal("rejected update must not broadcast")
	}
	if got := h.Registry().Get("room"); got.Version != "v1" {
		t.Fatalf("version = %s, want v1", got.Version)
	}
	if got := testutil.ToFloat64(h.metrics.requests.WithLabelValues(OpUpdate, outcomeOutdated)) - outdatedBefore; got != 1 {
		t.Fatalf("outdated counter delta = %v, want 1", got)
	}

	if _, err := h.Update(ctx, b, "room", "v1", raw(`2`)); err != nil {
		t.Fatalf("retry with fresh version: %v", err)
	}
}

func TestUpdateInvalidValue(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	_, err := h.Update(context.Background(), nil, "room", store.NoVersion, raw(`null`))
	if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("code = %q, want INVALID_ARGUMENT", apperrors.CodeOf(err))
	}
}

func TestUpdateGeneratorFailureIsInternal(t *testing.T) {
	registry := store.NewRegistry(store.WithGenerator(store.GeneratorFunc(func() (store.Version, error) {
		return store.NoVersion, errors.New("secret detail")
	})))
	h := NewHandler(registry, NewHub())
	b := newFakeWatcher("b")
	_, _ = h.Join(context.Background(), b, "room")

	_, err := h.Update(context.Background(), nil, "room", store.NoVersion, raw(`1`))
	if apperrors.CodeOf(err) != apperrors.CodeInternalError {
		t.Fatalf("code = %q, want INTERNAL_ERROR", apperrors.CodeOf(err))
	}
	if msg := apperrors.PublicMessage(err); msg != "internal error" {
		t.Fatalf("public message = %q, want generic", msg)
	}
	if len(b.notifications()) != 1 {
		t.Fatal("failed update must not broadcast")
	}
	if !h.Registry().Get("room").IsEmpty() {
		t.Fatal("failed update must not change state")
	}
}

func TestEmptyRoomIsInvalidArgument(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	checks := map[string]error{}
	_, checks[OpJoin] = h.Join(ctx, newFakeWatcher("a"), " ")
	_, checks[OpGet] = h.Get(ctx, nil, "")
	_, checks[OpUpdate] = h.Update(ctx, nil, "", store.NoVersion, raw(`1`))
	checks[OpLeave] = h.Leave(ctx, newFakeWatcher("a"), "")
	checks[OpCleanup] = h.Cleanup(ctx, "")
	for op, err := range checks {
		if apperrors.CodeOf(err) != apperrors.CodeInvalidArgument {
			t.Fatalf("%s code = %q, want INVALID_ARGUMENT", op, apperrors.CodeOf(err))
		}
	}
}

func TestLeaveLastWatcherCleansUp(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	a, b := newFakeWatcher("a"), newFakeWatcher("b")
	_, _ = h.Join(ctx, a, "room")
	_, _ = h.Join(ctx, b, "room")
	_, _ = h.Update(ctx, a, "room", store.NoVersion, raw(`1`))

	_ = h.Leave(ctx, a, "room")
	if h.Registry().Get("room").IsEmpty() {
		t.Fatal("state dropped while b is still watching")
	}
	_ = h.Leave(ctx, b, "room")
	if h.Registry().Rooms() != 0 {
		t.Fatalf("rooms = %d, want 0 after last leave", h.Registry().Rooms())
	}
}

func TestLeaveRetainsStateWhenConfigured(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub(), WithCleanupOnEmpty(false))
	ctx := context.Background()
	a := newFakeWatcher("a")
	_, _ = h.Join(ctx, a, "room")
	_, _ = h.Update(ctx, a, "room", store.NoVersion, raw(`1`))
	_ = h.Leave(ctx, a, "room")

	if got := h.Registry().Get("room"); got.Version != "v1" {
		t.Fatalf("version = %s, want v1 retained", got.Version)
	}
}

func TestCleanupResetsForMembers(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	a := newFakeWatcher("a")
	_, _ = h.Join(ctx, a, "room")
	_, _ = h.Update(ctx, a, "room", store.NoVersion, raw(`1`))

	if err := h.Cleanup(ctx, "room"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	snap, _ := h.Get(ctx, a, "room")
	if !snap.IsEmpty() {
		t.Fatalf("snapshot = %+v, want empty after cleanup", snap)
	}
	if _, err := h.Update(ctx, a, "room", store.NoVersion, raw(`2`)); err != nil {
		t.Fatalf("update after cleanup: %v", err)
	}
}

func TestNullGeneratorAcceptsAllUpdates(t *testing.T) {
	h := NewHandler(store.NewRegistry(store.WithGenerator(store.NullGenerator())), NewHub())
	ctx := context.Background()
	for i := range 3 {
		snap, err := h.Update(ctx, nil, "room", store.NoVersion, raw(fmt.Sprint(i)))
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if snap.Version != store.NoVersion {
			t.Fatalf("version = %s, want null", snap.Version)
		}
	}
}

func TestConcurrentUpdatesOneWinnerAndBroadcasts(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	observer := newFakeWatcher("observer")
	_, _ = h.Join(ctx, observer, "room")

	const writers = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := newFakeWatcher(fmt.Sprintf("w%d", i))
			if _, err := h.Join(ctx, w, "room"); err != nil {
				t.Errorf("join: %v", err)
				return
			}
			_, err := h.Update(ctx, w, "room", store.NoVersion, raw(fmt.Sprint(i)))
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			if apperrors.CodeOf(err) != apperrors.CodeOutdatedUpdate {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("wins = %d, want 1", wins)
	}
	n, _ := observer.last()
	if n.Version != "v1" {
		t.Fatalf("observer last version = %s, want v1", n.Version)
	}
}

func TestHandlerSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	h := NewHandler(scriptedRegistry(), NewHub(), WithTracerProvider(tp))
	ctx := context.Background()

	_, _ = h.Update(ctx, nil, "room", store.NoVersion, raw(`1`))
	_, _ = h.Update(ctx, nil, "room", store.NoVersion, raw(`2`))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	want := []string{outcomeOK, outcomeOutdated}
	for i, span := range spans {
		if span.Name() != "state.update" {
			t.Fatalf("span name = %q, want state.update", span.Name())
		}
		attrs := map[attribute.Key]attribute.Value{}
		for _, kv := range span.Attributes() {
			attrs[kv.Key] = kv.Value
		}
		if got := attrs["state.room"].AsString(); got != "room" {
			t.Fatalf("state.room = %q, want room", got)
		}
		if got := attrs["state.outcome"].AsString(); got != want[i] {
			t.Fatalf("state.outcome = %q, want %q", got, want[i])
		}
	}
}

func TestHandlerSpanCarriesRequestContext(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	h := NewHandler(scriptedRegistry(), NewHub(), WithTracerProvider(tp))
	ctx := requestctx.WithWatcherID(context.Background(), "w-1")
	ctx = requestctx.WithRequestID(ctx, "req-9")

	if _, err := h.Get(ctx, nil, "room"); err != nil {
		t.Fatalf("get: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	if attrs["state.watcher"] != "w-1" {
		t.Fatalf("state.watcher = %q, want w-1", attrs["state.watcher"])
	}
	if attrs["state.request_id"] != "req-9" {
		t.Fatalf("state.request_id = %q, want req-9", attrs["state.request_id"])
	}
}

// joinAfterLeaveGroups runs afterLeave once the hub has processed a Leave and
// before the handler sees the result.
type joinAfterLeaveGroups struct {
	*Hub
	afterLeave func()
}

func (g *joinAfterLeaveGroups) Leave(room string, w Watcher, onEmpty func()) bool {
	empty := g.Hub.Leave(room, w, onEmpty)
	if fn := g.afterLeave; fn != nil {
		g.afterLeave = nil
		fn()
	}
	return empty
}

func TestLeaveCleanupKeepsUpdateFromLaterJoiner(t *testing.T) {
	hub := NewHub()
	groups := &joinAfterLeaveGroups{Hub: hub}
	h := NewHandler(scriptedRegistry(), groups)
	ctx := context.Background()
	a, b := newFakeWatcher("a"), newFakeWatcher("b")
	if _, err := h.Join(ctx, a, "room"); err != nil {
		t.Fatalf("join a: %v", err)
	}

	var accepted store.Snapshot
	groups.afterLeave = func() {
		snap, err := h.Join(ctx, b, "room")
		if err != nil {
			t.Errorf("join b: %v", err)
			return
		}
		accepted, err = h.Update(ctx, b, "room", snap.Version, raw(`{"b":1}`))
		if err != nil {
			t.Errorf("update b: %v", err)
		}
	}
	if err := h.Leave(ctx, a, "room"); err != nil {
		t.Fatalf("leave a: %v", err)
	}

	if accepted.Version != "v1" {
		t.Fatalf("accepted version = %s, want v1", accepted.Version)
	}
	got := h.Registry().Get("room")
	if got.Version != accepted.Version || string(got.Value) != `{"b":1}` {
		t.Fatalf("room = %s/%s, want accepted update v1/{\"b\":1}", got.Version, got.Value)
	}
	if members := hub.Members("room"); members != 1 {
		t.Fatalf("members = %d, want b still joined", members)
	}
}

// gatedWatcher holds its first notification after arming until release is
// closed.
type gatedWatcher struct {
	*fakeWatcher
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (w *gatedWatcher) Notify(ctx context.Context, n Notification) error {
	if w.armed.CompareAndSwap(true, false) {
		close(w.entered)
		<-w.release
	}
	return w.fakeWatcher.Notify(ctx, n)
}

func TestBroadcastsReachWatchersInCommitOrder(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	c := &gatedWatcher{fakeWatcher: newFakeWatcher("c"), entered: make(chan struct{}), release: make(chan struct{})}
	if _, err := h.Join(ctx, c, "room"); err != nil {
		t.Fatalf("join c: %v", err)
	}
	c.armed.Store(true)

	first := make(chan error, 1)
	go func() {
		_, err := h.Update(ctx, newFakeWatcher("a"), "room", store.NoVersion, raw(`{"n":1}`))
		first <- err
	}()
	<-c.entered

	second := make(chan error, 1)
	go func() {
		_, err := h.Update(ctx, newFakeWatcher("b"), "room", "v1", raw(`{"n":2}`))
		second <- err
	}()
	select {
	case err := <-second:
		t.Fatalf("second update finished during the first broadcast: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(c.release)
	if err := <-first; err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("second update: %v", err)
	}

	got := c.notifications()
	if len(got) != 3 || got[1].Version != "v1" || got[2].Version != "v2" {
		t.Fatalf("notifications = %+v, want join push then v1 then v2", got)
	}
	if current := h.Registry().Get("room"); current.Version != got[2].Version {
		t.Fatalf("store at %s, watcher ended on %s", current.Version, got[2].Version)
	}
}

func TestRoomLocksAreReleased(t *testing.T) {
	h := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()
	a := newFakeWatcher("a")
	_, _ = h.Join(ctx, a, "room")
	_, _ = h.Get(ctx, a, "room")
	_, _ = h.Update(ctx, a, "room", store.NoVersion, raw(`1`))
	_, _ = h.Update(ctx, a, "room", store.NoVersion, raw(`2`))
	_ = h.Leave(ctx, a, "room")

	if got := h.dispatch.size(); got != 0 {
		t.Fatalf("room locks = %d, want 0", got)
	}
}

func TestHandlerMetricsArePerInstance(t *testing.T) {
	first := NewHandler(scriptedRegistry(), NewHub())
	second := NewHandler(scriptedRegistry(), NewHub())
	ctx := context.Background()

	_, _ = first.Get(ctx, nil, "room")
	_, _ = first.Get(ctx, nil, "room")

	if got := testutil.ToFloat64(first.metrics.requests.WithLabelValues(OpGet, outcomeOK)); got != 2 {
		t.Fatalf("first get count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(second.metrics.requests.WithLabelValues(OpGet, outcomeOK)); got != 0 {
		t.Fatalf("second get count = %v, want 0", got)
	}
	if got := len(first.Collectors()); got != 3 {
		t.Fatalf("collectors = %d, want requests, notifications, and hub watchers", got)
	}
}
