package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/websocket"

	apperrors "github.com/louisbranch/sharedstate/internal/platform/errors"
	"github.com/louisbranch/sharedstate/internal/platform/id"
	"github.com/louisbranch/sharedstate/internal/platform/requestctx"
	"github.com/louisbranch/sharedstate/internal/services/state/protocol"
)

// transport carries what each connection needs from the server.
type transport struct {
	handler         *protocol.Handler
	logger          *log.Logger
	defaultRoom     string
	maxPayloadBytes int
}

// NewHandler creates the state routes over handler. A nil gatherer leaves
// /metrics unrouted.
func NewHandler(handler *protocol.Handler, logger *log.Logger, gatherer prometheus.Gatherer, defaultRoom string) http.Handler {
	t := &transport{
		handler:         handler,
		logger:          logger,
		defaultRoom:     strings.TrimSpace(defaultRoom),
		maxPayloadBytes: framePayloadLimit(handler.Registry().MaxValueBytes()),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	wsHandler := websocket.Handler(t.serveConn)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wsHandler.ServeHTTP(w, r)
	})
	return mux
}

func framePayloadLimit(maxValueBytes int) int {
	if maxValueBytes <= 0 {
		return 0
	}
	return maxValueBytes + framePayloadOverhead
}

func (t *transport) serveConn(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	if t.maxPayloadBytes > 0 {
		conn.MaxPayloadBytes = t.maxPayloadBytes + maxFrameEnvelopeBytes
	}

	watcherID, err := id.NewID()
	if err != nil {
		t.logger.Error("assign watcher id", "err", err)
		return
	}
	ctx := context.Background()
	if request := conn.Request(); request != nil {
		ctx = request.Context()
	}
	ctx = requestctx.WithWatcherID(ctx, watcherID)

	session := newWSSession(newWSPeer(watcherID, json.NewEncoder(conn), conn))
	t.logger.Debug("watcher connected", "watcher", watcherID)
	defer func() {
		for _, room := range session.joined() {
			if err := t.handler.Leave(context.WithoutCancel(ctx), session.peer, room); err != nil {
				t.logger.Warn("leave on disconnect", "watcher", watcherID, "room", room, "err", err)
			}
		}
		t.logger.Debug("watcher disconnected", "watcher", watcherID)
	}()

	if t.defaultRoom != "" {
		if _, err := t.handler.Join(ctx, session.peer, t.defaultRoom); err != nil {
			_ = writeWSError(session.peer, "", err)
		} else {
			session.join(t.defaultRoom)
		}
	}

	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var frame wsFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			if !isFrameDecodeError(err) {
				return
			}
			decodeErrors++
			_ = writeWSError(session.peer, "", invalidArgument("invalid frame payload"))
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if t.maxPayloadBytes > 0 && len(frame.Payload) > t.maxPayloadBytes {
			_ = writeWSError(session.peer, frame.RequestID, invalidArgument("payload too large"))
			continue
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = writeWSError(session.peer, frame.RequestID, apperrors.New(apperrors.CodeResourceExhausted, "rate limit exceeded"))
			return
		}

		reqCtx := requestctx.WithRequestID(ctx, frame.RequestID)
		switch frame.Type {
		case frameJoin:
			t.handleJoinFrame(reqCtx, session, frame)
		case frameGet:
			t.handleGetFrame(reqCtx, session, frame)
		case frameUpdate:
			t.handleUpdateFrame(reqCtx, session, frame)
		case frameLeave:
			t.handleLeaveFrame(reqCtx, session, frame)
		default:
			_ = writeWSError(session.peer, frame.RequestID, invalidArgument("unsupported frame type"))
		}
	}
}

func (t *transport) handleJoinFrame(ctx context.Context, session *wsSession, frame wsFrame) {
	var payload roomPayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("invalid join payload"))
		return
	}
	room := strings.TrimSpace(payload.Room)
	if room == "" {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("room is required"))
		return
	}
	snap, err := t.handler.Join(ctx, session.peer, room)
	if err != nil {
		_ = writeWSError(session.peer, frame.RequestID, err)
		return
	}
	session.join(room)
	_ = writeWSAck(session.peer, frame.RequestID, newStatePayload(room, snap))
}

func (t *transport) handleGetFrame(ctx context.Context, session *wsSession, frame wsFrame) {
	var payload roomPayload
	if err := decodeOptional(frame.Payload, &payload); err != nil {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("invalid get payload"))
		return
	}
	room := session.resolve(strings.TrimSpace(payload.Room))
	if room == "" {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("room is required before joining"))
		return
	}
	snap, err := t.handler.Get(ctx, session.peer, room)
	if err != nil {
		_ = writeWSError(session.peer, frame.RequestID, err)
		return
	}
	_ = writeWSAck(session.peer, frame.RequestID, newStatePayload(room, snap))
}

func (t *transport) handleUpdateFrame(ctx context.Context, session *wsSession, frame wsFrame) {
	var payload updatePayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("invalid update payload"))
		return
	}
	room := session.resolve(strings.TrimSpace(payload.Room))
	if room == "" {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("room is required before joining"))
		return
	}
	snap, err := t.handler.Update(ctx, session.peer, room, payload.ExpectedVersion, payload.NewValue)
	if err != nil {
		_ = writeWSError(session.peer, frame.RequestID, err)
		return
	}
	_ = writeWSAck(session.peer, frame.RequestID, newStatePayload(room, snap))
}

func (t *transport) handleLeaveFrame(ctx context.Context, session *wsSession, frame wsFrame) {
	var payload roomPayload
	if err := decodeOptional(frame.Payload, &payload); err != nil {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("invalid leave payload"))
		return
	}
	room := session.resolve(strings.TrimSpace(payload.Room))
	if room == "" {
		_ = writeWSError(session.peer, frame.RequestID, invalidArgument("room is required"))
		return
	}
	if err := t.handler.Leave(ctx, session.peer, room); err != nil {
		_ = writeWSError(session.peer, frame.RequestID, err)
		return
	}
	session.leave(room)
	_ = writeWSAck(session.peer, frame.RequestID, roomPayload{Room: room})
}

// isFrameDecodeError separates a malformed message from a broken or closed
// connection.
func isFrameDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, websocket.ErrFrameTooLarge)
}

// decodeOptional accepts an absent or null payload as the zero value.
func decodeOptional(raw json.RawMessage, v any) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func invalidArgument(message string) error {
	return apperrors.New(apperrors.CodeInvalidArgument, message)
}

func writeWSAck(peer *wsPeer, requestID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return peer.writeFrame(wsFrame{Type: frameAck, RequestID: requestID, Payload: body})
}

func writeWSError(peer *wsPeer, requestID string, err error) error {
	code := apperrors.CodeOf(err)
	body, marshalErr := json.Marshal(wsErrorEnvelope{
		Error: wsError{
			Reason:    string(code),
			Message:   apperrors.PublicMessage(err),
			Retryable: code.Retryable(),
		},
	})
	if marshalErr != nil {
		return marshalErr
	}
	return peer.writeFrame(wsFrame{Type: frameError, RequestID: requestID, Payload: body})
}
