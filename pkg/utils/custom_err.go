package utils

import "errors"

var (
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrSegmentNotFound    = errors.New("segment not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyUsed   = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrVersionConflict    = errors.New("itinerary version conflict")
	ErrSessionNotFound    = errors.New("designer session not found")
	ErrPlaceNotFound      = errors.New("place not found")
	ErrPlaceAlreadyExists = errors.New("place code already registered")
	ErrDatabaseError      = errors.New("database error")
)
