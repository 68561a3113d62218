package tui

import "errors"

// ErrMissingImageService is returned when the image service is not provided.
var ErrMissingImageService = errors.New("tui: image service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
