package service

import "errors"

// ErrEmptyQuery indicates a text search was requested with no query.
var ErrEmptyQuery = errors.New("query text is empty")

// ErrEmptyVector indicates a vector search was requested with no vector.
var ErrEmptyVector = errors.New("query vector is empty")
