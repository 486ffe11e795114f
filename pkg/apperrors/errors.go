// Package apperrors defines sentinel errors shared across packages.
package apperrors

import "errors"

var (
	// ErrUnknownTeam marks a standings record whose abbreviation matches no
	// registered franchise. Per-row skippable.
	ErrUnknownTeam = errors.New("unknown team abbreviation")
	// ErrRateLimited marks a request abandoned after 429 retries exhausted.
	// Per-date skippable.
	ErrRateLimited = errors.New("rate limited by standings API")
	// ErrNoStandings marks a date or season for which the upstream returned
	// no standings at all.
	ErrNoStandings = errors.New("no standings available")
)
