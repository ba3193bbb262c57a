package event

import "errors"

var (
	// ErrForbidden means the caller's role or club scope does not permit the
	// operation.
	ErrForbidden = errors.New("not allowed for this caller")

	// ErrMalformedProof means the scanned payload is not structured data
	// carrying an event id and a secret.
	ErrMalformedProof = errors.New("malformed proof payload")

	// ErrProofEventMismatch means the proof was issued for a different
	// event than the one being claimed.
	ErrProofEventMismatch = errors.New("proof does not match this event")

	// ErrInvalidProof means the embedded secret does not equal the event's
	// stored secret.
	ErrInvalidProof = errors.New("invalid proof secret")

	// ErrInvalidDecision means a decision other than approved/rejected was
	// requested.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)
