// Package state exposes the state protocol over gRPC.
package state

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	statev1 "github.com/louisbranch/sharedstate/api/gen/go/state/v1"
	apperrors "github.com/louisbranch/sharedstate/internal/platform/errors"
	"github.com/louisbranch/sharedstate/internal/platform/id"
	"github.com/louisbranch/sharedstate/internal/platform/logging"
	"github.com/louisbranch/sharedstate/internal/platform/requestctx"
	"github.com/louisbranch/sharedstate/internal/services/state/protocol"
	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

// ServiceName is the fully qualified gRPC service name, also used for health.
const ServiceName = "state.v1.StateService"

// watchBuffer bounds notifications queued for one WatchRoom stream.
const watchBuffer = 32

var errWatcherLagging = errors.New("watcher fell behind")

// Service implements statev1.StateServiceServer over a protocol handler.
type Service struct {
	statev1.UnimplementedStateServiceServer
	handler *protocol.Handler
	logger  *log.Logger
}

// NewService builds the gRPC state service.
func NewService(handler *protocol.Handler, logger *log.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{handler: handler, logger: logger}
}

// GetState returns a room's current state.
func (s *Service) GetState(ctx context.Context, in *statev1.GetStateRequest) (*statev1.GetStateResponse, error) {
	room := strings.TrimSpace(in.GetRoom())
	snap, err := s.handler.Get(ctx, nil, room)
	if err != nil {
		return nil, toStatus(err)
	}
	state, err := roomStateToProto(room, snap)
	if err != nil {
		return nil, toStatus(err)
	}
	return &statev1.GetStateResponse{State: state}, nil
}

// UpdateState applies a compare-and-swap write. Every watcher of the room is
// notified on success.
func (s *Service) UpdateState(ctx context.Context, in *statev1.UpdateStateRequest) (*statev1.UpdateStateResponse, error) {
	room := strings.TrimSpace(in.GetRoom())
	value, err := valueFromProto(in.GetNewValue())
	if err != nil {
		return nil, toStatus(apperrors.New(apperrors.CodeInvalidArgument, err.Error()))
	}
	snap, err := s.handler.Update(ctx, nil, room, store.Version(in.GetExpectedVersion()), value)
	if err != nil {
		return nil, toStatus(err)
	}
	state, err := roomStateToProto(room, snap)
	if err != nil {
		return nil, toStatus(err)
	}
	return &statev1.UpdateStateResponse{State: state}, nil
}

// CleanupRoom drops a room's state.
func (s *Service) CleanupRoom(ctx context.Context, in *statev1.CleanupRoomRequest) (*statev1.CleanupRoomResponse, error) {
	room := strings.TrimSpace(in.GetRoom())
	if err := s.handler.Cleanup(ctx, room); err != nil {
		return nil, toStatus(err)
	}
	return &statev1.CleanupRoomResponse{Room: room}, nil
}

// WatchRoom joins the room for the life of the stream. The first message is
// the current state; later messages are accepted updates. A watcher that
// cannot keep up is disconnected and should watch again.
func (s *Service) WatchRoom(in *statev1.WatchRoomRequest, stream statev1.StateService_WatchRoomServer) error {
	watcherID, err := id.NewID()
	if err != nil {
		return toStatus(apperrors.Wrap(apperrors.CodeInternalError, "assign watcher id", err))
	}
	ctx, cancel := context.WithCancelCause(requestctx.WithWatcherID(stream.Context(), watcherID))
	defer cancel(nil)

	room := strings.TrimSpace(in.GetRoom())
	w := &streamWatcher{id: watcherID, updates: make(chan protocol.Notification, watchBuffer), cancel: cancel}
	if _, err := s.handler.Join(ctx, w, room); err != nil {
		return toStatus(err)
	}
	defer func() {
		if err := s.handler.Leave(context.WithoutCancel(ctx), w, room); err != nil {
			s.logger.Warn("leave watch", "watcher", watcherID, "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if cause := context.Cause(ctx); errors.Is(cause, errWatcherLagging) {
				s.logger.Warn("dropping lagging watcher", "watcher", watcherID, "room", room)
				return toStatus(apperrors.New(apperrors.CodeResourceExhausted, "watcher fell behind"))
			}
			return nil
		case n := <-w.updates:
			state, err := roomStateToProto(n.Room, n.Snapshot)
			if err != nil {
				return toStatus(err)
			}
			if err := stream.Send(&statev1.WatchRoomResponse{State: state}); err != nil {
				return err
			}
		}
	}
}

// streamWatcher queues notifications for one WatchRoom stream so broadcasts
// never wait on a slow client.
type streamWatcher struct {
	id      string
	updates chan protocol.Notification
	cancel  context.CancelCauseFunc

	mu     sync.Mutex
	closed bool
}

func (w *streamWatcher) ID() string { return w.id }

func (w *streamWatcher) Notify(_ context.Context, n protocol.Notification) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errWatcherLagging
	}
	select {
	case w.updates <- n:
		return nil
	default:
		w.closed = true
		w.cancel(errWatcherLagging)
		return errWatcherLagging
	}
}

func toStatus(err error) error {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.ToGRPCStatus()
	}
	return apperrors.Wrap(apperrors.CodeInternalError, "internal error", err).ToGRPCStatus()
}
