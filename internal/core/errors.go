package core

import "errors"

var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendTimeout     = errors.New("backend timeout")
	ErrEmptyResponse      = errors.New("empty backend response")
	ErrPersistenceFailed  = errors.New("persistence failed")
	ErrUnknownLanguage    = errors.New("unknown language")
)
