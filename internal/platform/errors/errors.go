package errors

import (
	stderrors "errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain is the error domain attached to gRPC error details.
const Domain = "github.com/louisbranch/sharedstate"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable reason
	Message  string            // Message safe to show to the requester
	Metadata map[string]string // Additional context, e.g. room
	Cause    error             // Wrapped underlying error, never sent to clients
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error carrying request metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithMetadata creates a domain error with both metadata and a cause.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
		Cause:    cause,
	}
}

// CodeOf returns the code of the first *Error in err's chain. A nil error
// has no code; any other error is reported as CodeInternalError.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternalError
}

// PublicMessage returns the text that may be shown to a requester. Internal
// errors never expose their cause.
func PublicMessage(err error) string {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) || domainErr.Code == CodeInternalError {
		return "internal error"
	}
	return domainErr.Message
}

// ToGRPCStatus converts the error to a gRPC status with errdetails.
// The ErrorInfo reason carries the domain code.
func (e *Error) ToGRPCStatus() error {
	grpcCode := e.Code.GRPCCode()
	message := PublicMessage(e)
	st := status.New(grpcCode, message)

	st, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   Domain,
		Metadata: e.Metadata,
	})
	if err != nil {
		return status.New(grpcCode, message).Err()
	}
	return st.Err()
}

// FromGRPCStatus rebuilds a domain error from a status produced by
// ToGRPCStatus. Statuses without ErrorInfo fall back to CodeFromGRPC.
func FromGRPCStatus(err error) *Error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return Wrap(CodeUnknown, err.Error(), err)
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok && info.GetDomain() == Domain {
			return WithMetadata(Code(info.GetReason()), st.Message(), info.GetMetadata())
		}
	}
	return New(CodeFromGRPC(st.Code()), st.Message())
}
