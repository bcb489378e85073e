// Package errors provides the coded error type shared by the state protocol
// and its transports.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable reason sent to clients when a request fails.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// CodeOutdatedUpdate rejects a write whose expected version is stale.
	CodeOutdatedUpdate Code = "OUTDATED_UPDATE"
	// CodeJoinError reports that a watcher could not be added to a room.
	CodeJoinError Code = "JOIN_ERROR"
	// CodeInternalError hides an unexpected failure from the requester.
	CodeInternalError Code = "INTERNAL_ERROR"
	// CodeInvalidArgument rejects a malformed request.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeResourceExhausted reports a connection that exceeded its rate limit.
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
)

// Retryable reports whether a client may reasonably retry after this code.
// An outdated update is retried after fetching the current version.
func (c Code) Retryable() bool {
	switch c {
	case CodeOutdatedUpdate, CodeJoinError:
		return true
	default:
		return false
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeOutdatedUpdate:
		return codes.Aborted
	case CodeJoinError:
		return codes.Unavailable
	case CodeInvalidArgument:
		return codes.InvalidArgument
	case CodeResourceExhausted:
		return codes.ResourceExhausted
	default:
		return codes.Internal
	}
}

// CodeFromGRPC maps a gRPC status code back to the closest domain code.
func CodeFromGRPC(c codes.Code) Code {
	switch c {
	case codes.Aborted:
		return CodeOutdatedUpdate
	case codes.Unavailable:
		return CodeJoinError
	case codes.InvalidArgument:
		return CodeInvalidArgument
	case codes.ResourceExhausted:
		return CodeResourceExhausted
	case codes.Internal:
		return CodeInternalError
	default:
		return CodeUnknown
	}
}
