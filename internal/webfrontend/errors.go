package webfrontend

import "errors"

// ErrInvalidLogin covers both an unknown account and a wrong password; the
// two are never distinguished in the response, so a caller can't use the
// auth endpoint to enumerate account names.
var ErrInvalidLogin = errors.New("webfrontend: invalid login")
