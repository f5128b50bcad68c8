package client

import "errors"

var (
	ErrServerDown       = errors.New("no connection could be made because the target machine actively refused it")
	ErrServerValidation = errors.New("server validation error")
	ErrExpiredOTP       = errors.New("expired otp")
	ErrNonActiveUser    = errors.New("not activated")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrApplication      = errors.New("internal application error")
)

// getMostNestedError unwraps err until the innermost cause, useful for
// matching transport errors wrapped by net/http and context layers.
func getMostNestedError(err error) error {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err
		}
		err = inner
	}
}
