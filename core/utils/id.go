package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short random id used for request correlation.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return ""
	}
	return id
}

// GenerateLockToken returns the owner token stored with an advisory lock.
func GenerateLockToken() string {
	id, err := gonanoid.Generate(idAlphabet, 21)
	if err != nil {
		return gonanoid.Must()
	}
	return id
}
