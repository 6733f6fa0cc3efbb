package domain

import "errors"

var (
	ErrEmptyQuery       = errors.New("empty query")
	ErrQueryTooLong     = errors.New("query too long")
	ErrInvalidType      = errors.New("invalid search type")
	ErrInvalidSort      = errors.New("invalid sort mode")
	ErrInvalidRecency   = errors.New("invalid recency filter")
	ErrNoResults        = errors.New("no results found")
	ErrInvalidPageParam = errors.New("invalid paging parameters")
)
