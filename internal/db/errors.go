package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	ErrKeyExists   = errors.New("db: key already exists")
	ErrInvalidPath = errors.New("db: invalid path")
)

// Op names used for error context. Redis-backed ops carry the command name.
const (
	OpGet    = "GET"
	OpSet    = "SET"
	OpCreate = "SET NX"
	OpList   = "ZRANGE"
	OpCommit = "MULTI/EXEC"
	OpPing   = "PING"
	OpDecode = "DECODE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
