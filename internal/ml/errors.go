// Package ml implements the hand-built projection models: a bootstrap
// aggregated regression-tree ensemble and a weighted linear regressor.
package ml

import "errors"

var (
	// ErrEmptyTrainingSet indicates training was attempted with no rows
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrDimensionMismatch indicates rows, targets, or weights disagree in length
	ErrDimensionMismatch = errors.New("training set dimensions do not match")

	// ErrUnknownModelType indicates a persisted payload has an unrecognized type
	ErrUnknownModelType = errors.New("unknown model type")

	// ErrMalformedPayload indicates a persisted model payload could not be decoded
	ErrMalformedPayload = errors.New("malformed model payload")
)
