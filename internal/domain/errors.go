package domain

import "errors"

var (
	// ErrDrugNotFound signals a catalog lookup with no matching record.
	ErrDrugNotFound = errors.New("drug not found")

	// ErrObjectNotFound signals a remote-tier miss for a single key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrBucketNotFound signals the configured remote bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrAccessDenied signals the remote store rejected the credentials.
	ErrAccessDenied = errors.New("access denied")
	// ErrRemoteUnavailable signals the remote tier is unusable for the
	// lifetime of the process (no credentials or client construction failed).
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)
