// Package store provides the durable key-value tier backing session,
// mission and vision state. Values are JSON-serialized records addressed
// by string keys, mirroring the origin-scoped storage of the web client.
package store

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("key not found")

// Store reads and writes JSON-serialized records under logical keys.
// Read returns ErrNotFound when no value exists for the key.
type Store interface {
	Read(key string, v any) error
	Write(key string, v any) error
	Delete(key string) error
	Close() error
}

// Well-known keys. Vision state is scoped per user.
const (
	KeyUser     = "user"
	KeyMissions = "missions"
)

func VisionKey(userID string) string {
	return fmt.Sprintf("vision-%s", userID)
}

func VisionImageKey(userID string) string {
	return fmt.Sprintf("vision-image-%s", userID)
}
