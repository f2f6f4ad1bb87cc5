package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCreation carries the caller-supplied part of a new account; balance,
// expiration and security code are generated server side.
type AccountCreation struct {
	Name string
	Type string
}

// EndUserRegistration is the input for both customer and worker registration.
// Position and Address are only meaningful for worker roles. The password is
// already derived upstream: the message carries hash and salt, never the
// plain password.
type EndUserRegistration struct {
	FirstName    string
	LastName     string
	BirthDate    time.Time
	PhoneNumber  string
	Email        string
	PasswordHash string
	Salt         string
	Passport     Passport
	Position     string
	Address      Address
}

// OneWayTransaction moves money into an account (deposit).
type OneWayTransaction struct {
	SourceAccountID string
	Amount          decimal.Decimal
	Description     string
}

// SecuredTransaction moves money out of an account and therefore requires the
// account's security code (withdrawal).
type SecuredTransaction struct {
	OneWayTransaction
	SecurityCode string
}

// TwoWayTransaction moves money between two accounts (transfer).
type TwoWayTransaction struct {
	SourceAccountID           string
	SourceAccountSecurityCode string
	DestinationAccountID      string
	Amount                    decimal.Decimal
	Description               string
}
