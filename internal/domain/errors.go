package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConfigLoad        = errors.New("constraint configuration load failed")
	ErrUnknownConstraint = errors.New("unknown constraint code")
	ErrInvalidAllocation = errors.New("invalid allocation")
)
