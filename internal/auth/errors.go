package auth

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	NoToken ErrorKind = iota + 1
	InvalidToken
	SessionExpired
	UserNotFound
)

// Error is an authentication failure. All kinds map to 401 at the HTTP edge.
type Error struct {
	Kind ErrorKind
	Err  error
}

var (
	ErrNoToken        = &Error{Kind: NoToken}
	ErrInvalidToken   = &Error{Kind: InvalidToken}
	ErrSessionExpired = &Error{Kind: SessionExpired}
	ErrUserNotFound   = &Error{Kind: UserNotFound}
)

func (e *Error) Code() string {
	switch e.Kind {
	case NoToken:
		return "NO_TOKEN"
	case InvalidToken:
		return "INVALID_TOKEN"
	case SessionExpired:
		return "SESSION_EXPIRED"
	case UserNotFound:
		return "USER_NOT_FOUND"
	default:
		return "UNAUTHORIZED"
	}
}

func (e *Error) Message() string {
	switch e.Kind {
	case NoToken:
		return "Authorization header with a bearer token is required"
	case InvalidToken:
		return "Invalid or expired token"
	case SessionExpired:
		return "Session has expired or was revoked"
	case UserNotFound:
		return "User no longer exists"
	default:
		return "Unauthorized"
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message(), e.Err)
	}
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so errors.Is(err, ErrSessionExpired) works for wrapped
// instances carrying a cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}
