package service

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenProvider interface {
	Sign(sub uuid.UUID, ttl time.Duration) (string, time.Time, error)
}
