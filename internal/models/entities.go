// Package models holds the persisted entities, the domain input models and
// the read-optimised views exchanged over the wire.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role names known to the platform. Any other value in a registration is a
// configuration error, not recoverable input.
const (
	RoleCustomer      = "Customer"
	RoleWorker        = "Worker"
	RoleAdministrator = "Administrator"
)

// Transaction type tags.
const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
	TransactionTransfer   = "transfer"
)

// Account is never physically removed: deletion clears Owner, so account ids
// and their transaction history stay queryable forever.
type Account struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Owner          *string            `bson:"owner"`
	Name           string             `bson:"name"`
	Type           string             `bson:"type"`
	Balance        decimal.Decimal    `bson:"balance"`
	ExpirationDate time.Time          `bson:"expirationDate"`
	SecurityCode   string             `bson:"securityCode"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

type Passport struct {
	DocumentNumber string    `bson:"documentNumber" json:"documentNumber" validate:"required"`
	Issuer         string    `bson:"issuer" json:"issuer"`
	IssueDate      time.Time `bson:"issueDate" json:"issueDate"`
	ExpirationDate time.Time `bson:"expirationDate" json:"expirationDate"`
}

type Address struct {
	Country    string `bson:"country" json:"country"`
	Region     string `bson:"region" json:"region"`
	City       string `bson:"city" json:"city"`
	Street     string `bson:"street" json:"street"`
	Building   string `bson:"building" json:"building"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
}

// Customer owns its accounts exclusively: account.Owner points back at the
// customer iff the account id is present in Accounts. Both sides are always
// changed inside the same session scope.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"firstName"`
	LastName    string             `bson:"lastName"`
	BirthDate   time.Time          `bson:"birthDate"`
	PhoneNumber string             `bson:"phoneNumber"`
	Email       string             `bson:"email"`
	Passport    Passport           `bson:"passport"`
	Accounts    []string           `bson:"accounts"`
}

type Worker struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"firstName"`
	LastName    string             `bson:"lastName"`
	BirthDate   time.Time          `bson:"birthDate"`
	PhoneNumber string             `bson:"phoneNumber"`
	Email       string             `bson:"email"`
	Position    string             `bson:"position"`
	Address     Address            `bson:"address"`
}

// Transaction records are append-only and reference accounts by id only.
// DestinationAccountID is nil for deposits and withdrawals.
type Transaction struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	SourceAccountID      string             `bson:"sourceAccountId"`
	DestinationAccountID *string            `bson:"destinationAccountId"`
	Type                 string             `bson:"type"`
	Amount               decimal.Decimal    `bson:"amount"`
	Timestamp            time.Time          `bson:"timestamp"`
	Description          string             `bson:"description,omitempty"`
}

// User is the credential record. EndUserID is a weak reference to the
// customer or worker record the credential belongs to.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Email           string             `bson:"email"`
	NormalizedEmail string             `bson:"normalizedEmail"`
	PhoneNumber     string             `bson:"phoneNumber"`
	PasswordHash    string             `bson:"passwordHash"`
	PasswordSalt    string             `bson:"passwordSalt"`
	CreatedAt       time.Time          `bson:"createdAt"`
	Roles           []string           `bson:"roles"`
	EndUserID       string             `bson:"endUserId"`
}

type Role struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	NormalizedName string             `bson:"normalizedName"`
}

// Normalize produces the case-insensitive lookup form used for email and
// role-name uniqueness keys.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
