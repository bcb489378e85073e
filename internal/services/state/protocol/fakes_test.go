package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

type fakeWatcher struct {
	id string

	mu   sync.Mutex
	got  []Notification
	fail error
}

func newFakeWatcher(id string) *fakeWatcher { return &fakeWatcher{id: id} }

func (w *fakeWatcher) ID() string { return w.id }

func (w *fakeWatcher) Notify(_ context.Context, n Notification) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.got = append(w.got, n)
	return nil
}

func (w *fakeWatcher) notifications() []Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Notification(nil), w.got...)
}

func (w *fakeWatcher) last() (Notification, bool) {
	got := w.notifications()
	if len(got) == 0 {
		return Notification{}, false
	}
	return got[len(got)-1], true
}

func scriptedRegistry() *store.Registry {
	var n atomic.Int64
	return store.NewRegistry(store.WithGenerator(store.GeneratorFunc(func() (store.Version, error) {
		return store.Version(fmt.Sprintf("v%d", n.Add(1))), nil
	})))
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }
