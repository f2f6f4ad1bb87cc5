package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// Generator supplies the random attributes of a new account. Injected so
// tests can pin expiration dates and security codes.
type Generator interface {
	// ExpirationDate picks an expiration 500 to 1000 days from now.
	ExpirationDate() time.Time
	// SecurityCode picks a fresh three-digit numeric secret.
	SecurityCode() string
}

type randomGenerator struct{}

// NewGenerator returns the production generator backed by crypto/rand.
func NewGenerator() Generator {
	return randomGenerator{}
}

func (randomGenerator) ExpirationDate() time.Time {
	n, _ := rand.Int(rand.Reader, big.NewInt(500))
	return time.Now().UTC().AddDate(0, 0, 500+int(n.Int64()))
}

func (randomGenerator) SecurityCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(900))
	return strconv.FormatInt(100+n.Int64(), 10)
}
