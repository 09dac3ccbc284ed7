package advisor

import "fmt"

// FailureReason classifies why an advisory request could not produce a
// trustworthy result.
type FailureReason string

// Advisory failure reasons.
const (
	// ReasonTransport covers unreachable service, timeouts, and non-2xx replies.
	ReasonTransport FailureReason = "transport"
	// ReasonMalformedReply covers replies that are not parseable JSON.
	ReasonMalformedReply FailureReason = "malformed_reply"
	// ReasonMissingField covers replies missing required fields or with
	// fields of the wrong shape.
	ReasonMissingField FailureReason = "missing_field"
	// ReasonItemMismatch covers replies whose item list does not align
	// one-to-one with the request items.
	ReasonItemMismatch FailureReason = "item_mismatch"
)

// AdvisoryError is returned for any advisory failure. The caller is
// responsible for falling back; this package never degrades silently.
type AdvisoryError struct {
	Err    error
	Reason FailureReason
}

func (e *AdvisoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("advisory %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("advisory %s", e.Reason)
}

func (e *AdvisoryError) Unwrap() error {
	return e.Err
}

func advisoryErr(reason FailureReason, format string, args ...any) *AdvisoryError {
	return &AdvisoryError{Reason: reason, Err: fmt.Errorf(format, args...)}
}
