package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrInvalidID        = errors.New("invalid ID format")
	ErrUnknownStatType  = errors.New("unknown stat type")
	ErrNoGameHistory    = errors.New("no game history for player and stat")
	ErrNoActiveModel    = errors.New("no active trained model")
	ErrFeatureMismatch  = errors.New("feature vector does not match model ordering")
	ErrInsufficientData = errors.New("insufficient training data")
)
