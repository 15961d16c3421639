package auth

import "errors"

var (
	ErrMissingToken  = errors.New("auth.missing_token")
	ErrUnknownToken  = errors.New("auth.unknown_token")
	ErrInvalidBody   = errors.New("auth.invalid_body")
	ErrNilTokenStore = errors.New("auth.nil_token_store")
)
