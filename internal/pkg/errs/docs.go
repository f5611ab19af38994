// Package errs provides the typed errors shared by the delivery service layers.
//
// Every error type pairs a sentinel (ErrObjectNotFound, ErrInvalidTransition, ...)
// with a struct carrying the details. Error() renders a stable message and
// Unwrap() returns the sentinel, so callers classify failures with errors.Is
// and extract details with errors.As:
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    // map to 404 / delivery.not_found
//	}
//
// The taxonomy maps one-to-one onto the transport outcomes:
//   - ObjectNotFoundError: HTTP 404, delivery.not_found event
//   - ObjectAlreadyExistsError: HTTP 409, idempotent ack on the message bus
//   - InvalidTransitionError: HTTP 409, *_rejected events
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: HTTP 400, message dropped
//   - UpstreamUnavailableError: HTTP 503, key refresh keeps the cached key
package errs
