package service

import "errors"

// Sentinel outcomes. Services wrap them with detail; the HTTP layer maps them
// to status codes with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
