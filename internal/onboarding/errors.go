package onboarding

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrPhotoType              = errors.New("only image files are accepted")
	ErrPhotoTooLarge          = errors.New("image must be at most 5MB")
	ErrPhotoDecode            = errors.New("failed to load image, try again")
	ErrPhotoSuperseded        = errors.New("photo upload superseded by a newer upload")
	ErrClosed                 = errors.New("controller is closed")
)
