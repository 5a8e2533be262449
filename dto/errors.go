package dto

import "errors"

// FailureKind classifies why a call or transfer did not succeed.
type FailureKind string

const (
	FAILURE_TIMEOUT            FailureKind = "timeout"
	FAILURE_TRANSPORT          FailureKind = "transport"
	FAILURE_LOCAL              FailureKind = "local"
	FAILURE_CANCELLED          FailureKind = "cancelled"
	FAILURE_UNSUPPORTED_METHOD FailureKind = "unsupported_method"
)

var (
	ErrTransferActive    = errors.New("a download is already in progress")
	ErrInvalidFileName   = errors.New("invalid file name")
	ErrUnsupportedMethod = errors.New("unsupported http method")
)
