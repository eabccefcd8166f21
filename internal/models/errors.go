package models

import "errors"

var (
	ErrNotAuthenticated   = errors.New("user not authenticated")
	ErrInsufficientTokens = errors.New("not enough tokens")
	ErrIncompleteVision   = errors.New("all four vision parameters are required")
	ErrMissionNotFound    = errors.New("mission not found")
)
