package service

import "errors"

// RejectReason classifies why a request was refused. Anything that is not a
// RejectError is treated as a server-side failure.
type RejectReason string

const (
	ReasonMissingFields  RejectReason = "missing_fields"
	ReasonUnauthorized   RejectReason = "unauthorized"
	ReasonOutOfRange     RejectReason = "out_of_range"
	ReasonTooSoon        RejectReason = "too_soon"
	ReasonInvalidMeasure RejectReason = "invalid_measure"
	ReasonInvalidRange   RejectReason = "invalid_range"
)

// RejectError is a terminal, caller-visible refusal with a human-readable
// message. It is never retried.
type RejectError struct {
	Reason  RejectReason
	Message string
}

func (e *RejectError) Error() string {
	return e.Message
}

func reject(reason RejectReason, message string) error {
	return &RejectError{Reason: reason, Message: message}
}

// RejectReasonOf extracts the reject reason, if the error is a rejection.
func RejectReasonOf(err error) (RejectReason, bool) {
	var rejectErr *RejectError
	if errors.As(err, &rejectErr) {
		return rejectErr.Reason, true
	}
	return "", false
}
