package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountView is the projection of an account returned in replies and over
// the ops API. SecurityCode is included so the creation reply can hand the
// freshly generated code to the owner.
type AccountView struct {
	ID             string          `json:"id"`
	Owner          string          `json:"owner,omitempty"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	ExpirationDate time.Time       `json:"expirationDate"`
	SecurityCode   string          `json:"securityCode"`
	CreatedAt      time.Time       `json:"createdTimestamp"`
}

// TransactionView is the projection of a transaction record.
type TransactionView struct {
	SourceAccountID      string          `json:"sourceAccountId"`
	DestinationAccountID string          `json:"destinationAccountId,omitempty"`
	Type                 string          `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	Timestamp            time.Time       `json:"timestamp"`
	Description          string          `json:"description,omitempty"`
}

// UserView never exposes the password hash or salt.
type UserView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdTimestamp"`
	Roles       []string  `json:"roles"`
	EndUserID   string    `json:"endUserId"`
}
