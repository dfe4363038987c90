package error

import "errors"

// Auth errors. Token issuance lives in an external collaborator; this
// service only validates bearer tokens on its endpoints.
var (
	// ErrInvalidToken is returned when a token is malformed, expired or has a
	// bad signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingToken is returned when no token was provided.
	ErrMissingToken = errors.New("missing token")
)

// AuthErrorCode defines error codes for auth errors.
type AuthErrorCode string

const (
	ErrCodeInvalidToken AuthErrorCode = "AUT-010001"
	ErrCodeMissingToken AuthErrorCode = "AUT-010002"
	ErrCodeRateLimited  AuthErrorCode = "AUT-010003"
)
