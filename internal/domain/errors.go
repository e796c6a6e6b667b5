package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNoImage             = errors.New("no image loaded")
	ErrJobRunning          = errors.New("job already running")
	ErrNoResult            = errors.New("no result available")
	ErrNoImageProduced     = errors.New("no image produced")
	ErrProviderFailure     = errors.New("provider failure")
	ErrChargeInFlight      = errors.New("charge already in flight")
	ErrChargeDeclined      = errors.New("charge declined")
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrImageTooLarge       = errors.New("image too large")
)
