package tagstore

import "errors"

// Not-found sentinels. The project-scoped and issue-scoped variants are
// distinct so callers can tell which lookup failed. Listing operations never
// return these; an empty collection is the correct "nothing matched".
var (
	ErrTagKeyNotFound        = errors.New("tag key not found")
	ErrGroupTagKeyNotFound   = errors.New("group tag key not found")
	ErrTagValueNotFound      = errors.New("tag value not found")
	ErrGroupTagValueNotFound = errors.New("group tag value not found")
)

// ErrNotImplemented is returned for search-filter-based group id resolution,
// which this backend does not support. No query is issued.
var ErrNotImplemented = errors.New("search filter resolution not implemented")
