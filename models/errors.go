package models

import "errors"

var (

	// common errors
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// voting errors
	ErrDuplicateVote   = errors.New("user has already cast this vote")
	ErrInvalidVoteType = errors.New("vote type must be \"up\" or \"down\"")

	// status workflow errors
	ErrInvalidTransition = errors.New("illegal status transition")

	// authorization errors
	ErrNotAuthorized = errors.New("not authorized to perform this action")

	// store errors
	ErrStoreUnavailable = errors.New("store unavailable")
)
