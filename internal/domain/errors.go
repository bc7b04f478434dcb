package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidProfile       = errors.New("invalid profile")
	ErrUnrecognizedCategory = errors.New("unrecognized category")
	ErrProviderFailure      = errors.New("provider failure")
	ErrEmptyResponse        = errors.New("empty provider response")
	ErrPlanNotReady         = errors.New("plan not ready")
	ErrCapacity             = errors.New("session capacity reached")
)
