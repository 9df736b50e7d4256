package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered UUIDs. It is used for staged-record
// idempotency keys and request trace ids.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random UUIDv4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
