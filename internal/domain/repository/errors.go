package repository

import "errors"

// ErrDuplicateKey is returned by implementations when an insert violates
// a uniqueness constraint (email, or provider + provider user id). The
// constraint in the store is the true guard against creation races; the
// engines treat this error as "somebody else got there first".
var ErrDuplicateKey = errors.New("duplicate key")
