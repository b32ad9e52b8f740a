package services

import "errors"

// Employment service errors
var (
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrUnknownChart      = errors.New("unknown chart")
	ErrUnknownInterval   = errors.New("unknown interval")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
