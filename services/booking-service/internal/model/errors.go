package model

import "errors"

// Error taxonomy for the scheduling engine. Handlers map these onto HTTP
// statuses; everything else is treated as an internal error.
var (
	// ErrChefNotFound: unknown chef id (surfaced as 404).
	ErrChefNotFound = errors.New("chef not found")

	// ErrInvalidDateRange: end before start, or range beyond the chef's
	// max-days-ahead policy (surfaced as 400).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidSelection: dish/menu selection or guest count outside the
	// chef's per-session limits (surfaced as 400).
	ErrInvalidSelection = errors.New("invalid dish selection")

	// ErrSlotNoLongerAvailable: the requested window was taken between the
	// availability query and the commit attempt (surfaced as 409; the caller
	// must re-query and resubmit).
	ErrSlotNoLongerAvailable = errors.New("slot no longer available")

	// ErrPolicyViolation: below min notice, beyond max days ahead, outside
	// the service radius, or the date is already at max sessions (400).
	ErrPolicyViolation = errors.New("booking policy violation")
)
