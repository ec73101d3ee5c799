package service

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrNotOwner        = errors.New("player does not own this session")
	ErrMissingPlayer   = errors.New("player id is required")
)
