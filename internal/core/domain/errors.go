package domain

import (
	"errors"
	"fmt"
)

// FailureReason classifies why a capture invocation failed. Exactly one
// reason is reported per failed invocation.
type FailureReason string

const (
	// ReasonAuth means the OAuth2 token exchange failed.
	ReasonAuth FailureReason = "auth_error"
	// ReasonLookup means the streams query failed at the transport or
	// parse level.
	ReasonLookup FailureReason = "lookup_error"
	// ReasonNoLiveStream means the streams query succeeded but returned
	// zero records. The channel was notified as live but no live stream
	// is currently observable, usually a race between the event source
	// and the Helix API.
	ReasonNoLiveStream FailureReason = "no_live_stream"
	// ReasonFetch means the thumbnail download failed.
	ReasonFetch FailureReason = "fetch_error"
	// ReasonPublish means the object-storage write failed.
	ReasonPublish FailureReason = "publish_error"
	// ReasonConfig means required configuration was missing at startup.
	ReasonConfig FailureReason = "config_error"
	// ReasonMalformedEvent means the triggering event did not carry the
	// expected channel login.
	ReasonMalformedEvent FailureReason = "malformed_event"
)

// PipelineError is a stage failure carrying its taxonomy classification.
// It wraps the underlying cause so errors.Is/As still work against it.
type PipelineError struct {
	Reason FailureReason
	Err    error
}

func (e *PipelineError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Fail wraps err with the given reason.
func Fail(reason FailureReason, err error) *PipelineError {
	return &PipelineError{Reason: reason, Err: err}
}

// Failf builds a PipelineError from a formatted message.
func Failf(reason FailureReason, format string, args ...any) *PipelineError {
	return &PipelineError{Reason: reason, Err: fmt.Errorf(format, args...)}
}

// ReasonOf extracts the failure reason from err, walking wrapped errors.
// Errors outside the taxonomy report an empty reason.
func ReasonOf(err error) FailureReason {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ""
}
