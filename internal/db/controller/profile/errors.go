package profile

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrConfigNil is returned when the configuration is nil.
	ErrConfigNil = errors.New("config is nil")
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrActiveProfileDelete is returned when attempting to delete the profile
	// which is currently active.
	ErrActiveProfileDelete = errors.New("cannot delete the profile which is currently active")
	// ErrLastActive is returned when deactivating the sole active profile
	// while at least one profile must stay active.
	ErrLastActive = errors.New("no other active profile, so this one must stay active")
)
