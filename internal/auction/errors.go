package auction

import "errors"

// ErrInvalidPlayer is returned when an imported player record lacks a name
// or any role
var ErrInvalidPlayer = errors.New("invalid player record")

// ErrInvalidMode is returned when a restored record carries an unknown mode
var ErrInvalidMode = errors.New("invalid auction mode")
