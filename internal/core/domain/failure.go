package domain

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
)

// FailureKind classifies a failure surfaced to the caller.
type FailureKind string

const (
	// KindParse marks malformed temporal text. It is recovered locally and never surfaced.
	KindParse FailureKind = "parse"
	// KindNetwork marks an unreachable server, a timeout or another transport error.
	KindNetwork FailureKind = "network"
	// KindUserContext marks a missing signed-in user.
	KindUserContext FailureKind = "user_context"
	// KindServerLogic marks a response that reports failure.
	KindServerLogic FailureKind = "server_logic"
)

// Failure is a classified error with a human readable message.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}

// ServerFailure classifies a response that reported failure. The response message
// wins over the first structured error, which wins over the generic fallback.
func ServerFailure[T any](resp *Envelope[T], msgs Catalog) *Failure {
	text := msgs.Generic
	if resp != nil {
		if resp.Message != "" {
			text = resp.Message
		} else if first, ok := resp.FirstError(); ok {
			text = first
		}
	}
	return &Failure{Kind: KindServerLogic, Message: text}
}

// NetworkFailure classifies a transport error.
func NetworkFailure(err error, msgs Catalog) *Failure {
	return &Failure{Kind: KindNetwork, Message: networkMessage(err, msgs), Err: err}
}

// UserContextFailure classifies a failure to obtain the signed-in user.
func UserContextFailure(err error, msgs Catalog) *Failure {
	text := msgs.NoSession
	if err != nil && !errors.Is(err, ErrNoActiveSession) && err.Error() != "" {
		text = err.Error()
	}
	return &Failure{Kind: KindUserContext, Message: text, Err: err}
}

func networkMessage(err error, msgs Catalog) string {
	if err == nil {
		return msgs.Generic
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
		return msgs.UnknownHost
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return msgs.Timeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return msgs.Connection
	}

	if err.Error() != "" {
		return err.Error()
	}
	return msgs.Generic
}
