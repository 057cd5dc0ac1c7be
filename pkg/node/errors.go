package node

import (
	"errors"
	"fmt"
)

// ErrorKind categorises failures raised while executing a run
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindUsage         ErrorKind = "usage"
	ErrorKindUpstream      ErrorKind = "upstream"
)

// Error is a structured failure for one item of a run
type Error struct {
	Kind    ErrorKind    `json:"kind"`
	Key     OperationKey `json:"-"`
	Item    int          `json:"item"`
	Message string       `json:"message"`
	Cause   error        `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Key.Resource != "" {
		return fmt.Sprintf("%s error in %s (item %d): %s", e.Kind, e.Key, e.Item, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewConfigurationError reports invalid parameters or a missing attachment
func NewConfigurationError(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// NewUsageError reports a request that is valid but cannot be served as asked
func NewUsageError(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindUsage, Message: fmt.Sprintf(format, args...)}
}

// upstreamError wraps a transport failure
func upstreamError(err error) *Error {
	var nodeErr *Error
	if errors.As(err, &nodeErr) {
		return nodeErr
	}
	return &Error{Kind: ErrorKindUpstream, Message: err.Error(), Cause: err}
}

// withContext stamps the operation key and item index onto err
func withContext(err error, key OperationKey, item int) *Error {
	var nodeErr *Error
	if !errors.As(err, &nodeErr) {
		nodeErr = upstreamError(err)
	}
	nodeErr.Key = key
	nodeErr.Item = item
	return nodeErr
}

// IsKind reports whether err is a node error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var nodeErr *Error
	return errors.As(err, &nodeErr) && nodeErr.Kind == kind
}
