package social

import "errors"

// Validation failures, checked before any storage access.
var (
	ErrInvalidInput      = errors.New("social: missing or malformed field")
	ErrInvalidCredential = errors.New("social: credential is neither phone nor email")
	ErrWeakPassword      = errors.New("social: password does not meet strength rules")
	ErrSelfFollow        = errors.New("social: cannot follow yourself")
)

// Conflict failures surfaced by uniqueness constraints.
var (
	ErrHandleTaken = errors.New("social: username already registered")
	ErrEmailTaken  = errors.New("social: email already registered")
	ErrPhoneTaken  = errors.New("social: phone already registered")
)

// Lookup failures.
var (
	ErrUserNotFound = errors.New("social: user not found")
	ErrPostNotFound = errors.New("social: post not found")
	ErrEdgeNotFound = errors.New("social: edge not found")
)

// ErrDuplicateEdge reports that an insert lost the uniqueness race on an
// edge pair. The toggle resolves it transparently; it rarely escapes.
var ErrDuplicateEdge = errors.New("social: duplicate edge")

// ErrIncorrectPassword is an auth failure on credential re-check.
var ErrIncorrectPassword = errors.New("social: incorrect password")
