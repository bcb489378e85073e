package state

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	gogrpc "google.golang.org/grpc"

	statev1 "github.com/louisbranch/sharedstate/api/gen/go/state/v1"
	apperrors "github.com/louisbranch/sharedstate/internal/platform/errors"
	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

// Client calls the state service over an existing connection. Errors are
// returned as *errors.Error rebuilt from the gRPC status.
type Client struct {
	api statev1.StateServiceClient
}

// NewClient wraps conn.
func NewClient(conn gogrpc.ClientConnInterface) *Client {
	return &Client{api: statev1.NewStateServiceClient(conn)}
}

// Get fetches a room's state.
func (c *Client) Get(ctx context.Context, room string, opts ...gogrpc.CallOption) (RoomState, error) {
	resp, err := c.api.GetState(ctx, &statev1.GetStateRequest{Room: room}, opts...)
	if err != nil {
		return RoomState{}, apperrors.FromGRPCStatus(err)
	}
	return RoomStateFromProto(resp.GetState())
}

// Update writes value when expected is the room's current version.
func (c *Client) Update(ctx context.Context, room string, expected store.Version, value json.RawMessage, opts ...gogrpc.CallOption) (RoomState, error) {
	newValue, err := valueToProto(value)
	if err != nil {
		return RoomState{}, apperrors.New(apperrors.CodeInvalidArgument, err.Error())
	}
	resp, err := c.api.UpdateState(ctx, &statev1.UpdateStateRequest{
		Room:            room,
		ExpectedVersion: string(expected),
		NewValue:        newValue,
	}, opts...)
	if err != nil {
		return RoomState{}, apperrors.FromGRPCStatus(err)
	}
	return RoomStateFromProto(resp.GetState())
}

// Cleanup drops a room's state.
func (c *Client) Cleanup(ctx context.Context, room string, opts ...gogrpc.CallOption) error {
	if _, err := c.api.CleanupRoom(ctx, &statev1.CleanupRoomRequest{Room: room}, opts...); err != nil {
		return apperrors.FromGRPCStatus(err)
	}
	return nil
}

// WatchStream receives state messages for one room.
type WatchStream struct {
	stream gogrpc.ServerStreamingClient[statev1.WatchRoomResponse]
}

// Watch opens a stream for room. Cancel ctx to stop watching.
func (c *Client) Watch(ctx context.Context, room string, opts ...gogrpc.CallOption) (*WatchStream, error) {
	stream, err := c.api.WatchRoom(ctx, &statev1.WatchRoomRequest{Room: room}, opts...)
	if err != nil {
		return nil, apperrors.FromGRPCStatus(err)
	}
	return &WatchStream{stream: stream}, nil
}

// Recv blocks for the next state message. It returns io.EOF when the server
// ends the stream cleanly.
func (w *WatchStream) Recv() (RoomState, error) {
	resp, err := w.stream.Recv()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return RoomState{}, io.EOF
		}
		return RoomState{}, apperrors.FromGRPCStatus(err)
	}
	return RoomStateFromProto(resp.GetState())
}
