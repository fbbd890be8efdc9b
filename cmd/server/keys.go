package main

import (
	"crypto/rand"
	"log"
)

// randomKey returns a fresh 32-byte key for development runs.
func randomKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	return key
}
