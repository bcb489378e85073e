// Package protocol connects the versioned store to room fan-out: it serves
// join, get, update, leave, and cleanup requests from any transport.
package protocol

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/sharedstate/internal/platform/errors"
	"github.com/louisbranch/sharedstate/internal/platform/logging"
	"github.com/louisbranch/sharedstate/internal/platform/requestctx"
	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

const tracerName = "github.com/louisbranch/sharedstate/internal/services/state/protocol"

// Operation names used for spans and metrics.
const (
	OpJoin    = "join"
	OpGet     = "get"
	OpUpdate  = "update"
	OpLeave   = "leave"
	OpCleanup = "cleanup"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCleanupOnEmpty controls whether a room's state is dropped when its last
// watcher leaves. Enabled by default.
func WithCleanupOnEmpty(enabled bool) Option {
	return func(h *Handler) { h.cleanupOnEmpty = enabled }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Handler) {
		if tp != nil {
			h.tracer = tp.Tracer(tracerName)
		}
	}
}

// Handler serves state requests against one registry and one set of groups.
// Within a room, state reads and commits are handed to watchers in the order
// they happened.
type Handler struct {
	registry       *store.Registry
	groups         Groups
	logger         *log.Logger
	tracer         trace.Tracer
	cleanupOnEmpty bool
	dispatch       *roomLocks
	metrics        handlerMetrics
}

// NewHandler builds a handler over registry and groups.
func NewHandler(registry *store.Registry, groups Groups, opts ...Option) *Handler {
	if registry == nil {
		registry = store.NewRegistry()
	}
	if groups == nil {
		groups = NewHub()
	}
	h := &Handler{
		registry:       registry,
		groups:         groups,
		logger:         logging.Discard(),
		tracer:         otel.Tracer(tracerName),
		cleanupOnEmpty: true,
		dispatch:       newRoomLocks(),
		metrics:        newHandlerMetrics(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Registry exposes the backing store for metrics.
func (h *Handler) Registry() *store.Registry {
	return h.registry
}

// Collectors returns the handler's metrics, plus the groups' own when they
// export any.
func (h *Handler) Collectors() []prometheus.Collector {
	cs := []prometheus.Collector{h.metrics.requests, h.metrics.notifications}
	if src, ok := h.groups.(collectorSource); ok {
		cs = append(cs, src.Collectors()...)
	}
	return cs
}

// Join adds w to room, pushes the current state to w, and returns it. No state
// is read when the join is refused.
func (h *Handler) Join(ctx context.Context, w Watcher, room string) (snap store.Snapshot, err error) {
	ctx, finish := h.start(ctx, OpJoin, &room)
	defer func() { finish(err) }()

	if room == "" {
		return store.Snapshot{}, errRoomRequired
	}
	if w == nil {
		return store.Snapshot{}, apperrors.New(apperrors.CodeInvalidArgument, "watcher is required")
	}
	unlock := h.dispatch.lock(room)
	defer unlock()
	if joinErr := h.groups.Join(room, w); joinErr != nil {
		h.logger.Debug("join refused", "room", room, "watcher", w.ID(), "err", joinErr)
		return store.Snapshot{}, apperrors.WrapWithMetadata(apperrors.CodeJoinError, "unable to join room", map[string]string{"room": room}, joinErr)
	}
	snap = h.registry.Get(room)
	h.push(ctx, w, room, snap)
	return snap, nil
}

// Get returns the room's current state and pushes it to w when w is set.
func (h *Handler) Get(ctx context.Context, w Watcher, room string) (snap store.Snapshot, err error) {
	ctx, finish := h.start(ctx, OpGet, &room)
	defer func() { finish(err) }()

	if room == "" {
		return store.Snapshot{}, errRoomRequired
	}
	if w == nil {
		return h.registry.Get(room), nil
	}
	unlock := h.dispatch.lock(room)
	defer unlock()
	snap = h.registry.Get(room)
	h.push(ctx, w, room, snap)
	return snap, nil
}

// Update applies value when expected matches the room's version. On success
// the new state is returned to the caller and broadcast to every other member
// of the room; the requester is not notified again.
func (h *Handler) Update(ctx context.Context, w Watcher, room string, expected store.Version, value []byte) (snap store.Snapshot, err error) {
	ctx, finish := h.start(ctx, OpUpdate, &room)
	defer func() { finish(err) }()

	if room == "" {
		return store.Snapshot{}, errRoomRequired
	}
	unlock := h.dispatch.lock(room)
	defer unlock()
	snap, err = h.registry.Update(room, expected, value)
	switch {
	case err == nil:
	case stderrors.Is(err, store.ErrOutdatedVersion):
		h.logger.Debug("update rejected", "room", room, "watcher", watcherID(ctx, w), "err", err)
		return store.Snapshot{}, apperrors.WithMetadata(apperrors.CodeOutdatedUpdate, "outdated update", map[string]string{"room": room})
	case stderrors.Is(err, store.ErrInvalidValue), stderrors.Is(err, store.ErrValueTooLarge):
		return store.Snapshot{}, apperrors.New(apperrors.CodeInvalidArgument, err.Error())
	default:
		h.logger.Error("update failed", "room", room, "watcher", watcherID(ctx, w), "err", err)
		return store.Snapshot{}, apperrors.Wrap(apperrors.CodeInternalError, "update failed", err)
	}

	delivered := h.groups.Broadcast(ctx, room, w, Notification{Room: room, Snapshot: snap})
	h.metrics.notifications.WithLabelValues(kindBroadcast).Add(float64(delivered))
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("state.delivered", delivered))
	return snap, nil
}

// Leave removes w from room. When the room is left empty and cleanup on empty
// is enabled, its state is dropped before anyone can join it again.
func (h *Handler) Leave(ctx context.Context, w Watcher, room string) (err error) {
	_, finish := h.start(ctx, OpLeave, &room)
	defer func() { finish(err) }()

	if room == "" {
		return errRoomRequired
	}
	if w == nil {
		return nil
	}
	var onEmpty func()
	if h.cleanupOnEmpty {
		onEmpty = func() { h.registry.Cleanup(room) }
	}
	if h.groups.Leave(room, w, onEmpty) && h.cleanupOnEmpty {
		h.logger.Debug("room released", "room", room)
	}
	return nil
}

// Cleanup drops room's state. Members stay joined and observe null/null on
// their next read.
func (h *Handler) Cleanup(ctx context.Context, room string) (err error) {
	_, finish := h.start(ctx, OpCleanup, &room)
	defer func() { finish(err) }()

	if room == "" {
		return errRoomRequired
	}
	h.registry.Cleanup(room)
	h.logger.Info("room cleaned up", "room", room)
	return nil
}

var errRoomRequired = apperrors.New(apperrors.CodeInvalidArgument, "room is required")

func (h *Handler) push(ctx context.Context, w Watcher, room string, snap store.Snapshot) {
	if err := w.Notify(ctx, Notification{Room: room, Snapshot: snap}); err != nil {
		h.logger.Warn("notify failed", "room", room, "watcher", w.ID(), "err", err)
		return
	}
	h.metrics.notifications.WithLabelValues(kindPush).Inc()
}

// start trims room in place and opens the request span. The returned func
// records the outcome.
func (h *Handler) start(ctx context.Context, op string, room *string) (context.Context, func(error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	*room = strings.TrimSpace(*room)
	ctx, span := h.tracer.Start(ctx, "state."+op, trace.WithAttributes(attribute.String("state.room", *room)))
	if id := requestctx.WatcherIDFromContext(ctx); id != "" {
		span.SetAttributes(attribute.String("state.watcher", id))
	}
	if id := requestctx.RequestIDFromContext(ctx); id != "" {
		span.SetAttributes(attribute.String("state.request_id", id))
	}
	return ctx, func(err error) {
		outcome := outcomeOf(err)
		h.metrics.requests.WithLabelValues(op, outcome).Inc()
		span.SetAttributes(attribute.String("state.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, apperrors.PublicMessage(err))
		}
		span.End()
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeOK
	}
	switch apperrors.CodeOf(err) {
	case apperrors.CodeOutdatedUpdate:
		return outcomeOutdated
	case apperrors.CodeJoinError:
		return outcomeJoin
	case apperrors.CodeInvalidArgument:
		return outcomeInvalid
	default:
		return outcomeInternal
	}
}

func watcherID(ctx context.Context, w Watcher) string {
	if w != nil {
		return w.ID()
	}
	return requestctx.WatcherIDFromContext(ctx)
}
