// Package messages defines the inbound message kinds and the topics they
// arrive on. Every message carries a reply-address pattern; the listener
// combines it with the message's partition and offset to form the reply
// channel.
package messages

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/distributedbanking/processing/internal/models"
)

// Topic names, one ordered partitioned topic per message kind.
const (
	TopicRoleCreation         = "identity.role-creation"
	TopicCustomerRegistration = "identity.customer-registration"
	TopicWorkerRegistration   = "identity.worker-registration"
	TopicCustomerInfoUpdate   = "identity.customer-info-update"
	TopicEndUserDeletion      = "identity.end-user-deletion"
	TopicAccountCreation      = "account.creation"
	TopicAccountDeletion      = "account.deletion"
	TopicTransactionCreation  = "transaction.creation"
)

type RoleCreation struct {
	Name                   string `json:"name" validate:"required"`
	ResponseChannelPattern string `json:"responseChannelPattern"`
}

type CustomerRegistration struct {
	FirstName              string          `json:"firstName"`
	LastName               string          `json:"lastName"`
	BirthDate              time.Time       `json:"birthDate"`
	PhoneNumber            string          `json:"phoneNumber"`
	Email                  string          `json:"email" validate:"required"`
	PasswordHash           string          `json:"passwordHash"`
	Salt                   string          `json:"salt"`
	Passport               models.Passport `json:"passport"`
	ResponseChannelPattern string          `json:"responseChannelPattern"`
}

type WorkerRegistration struct {
	FirstName              string          `json:"firstName"`
	LastName               string          `json:"lastName"`
	BirthDate              time.Time       `json:"birthDate"`
	PhoneNumber            string          `json:"phoneNumber"`
	Email                  string          `json:"email" validate:"required"`
	PasswordHash           string          `json:"passwordHash"`
	Salt                   string          `json:"salt"`
	Passport               models.Passport `json:"passport"`
	Position               string          `json:"position"`
	Address                models.Address  `json:"address"`
	Role                   string          `json:"role"`
	ResponseChannelPattern string          `json:"responseChannelPattern"`
}

type CustomerInfoUpdate struct {
	CustomerID             string          `json:"customerId" validate:"required"`
	Passport               models.Passport `json:"passport"`
	ResponseChannelPattern string          `json:"responseChannelPattern"`
}

type EndUserDeletion struct {
	EndUserID              string `json:"endUserId" validate:"required"`
	ResponseChannelPattern string `json:"responseChannelPattern"`
}

type AccountCreation struct {
	CustomerID             string `json:"customerId" validate:"required"`
	Name                   string `json:"name"`
	Type                   string `json:"type"`
	ResponseChannelPattern string `json:"responseChannelPattern"`
}

type AccountDeletion struct {
	AccountID              string `json:"accountId" validate:"required"`
	ResponseChannelPattern string `json:"responseChannelPattern"`
}

type TransactionCreation struct {
	Type                   string          `json:"type"`
	SourceAccountID        string          `json:"sourceAccountId" validate:"required"`
	DestinationAccountID   string          `json:"destinationAccountId,omitempty"`
	Amount                 decimal.Decimal `json:"amount"`
	SecurityCode           string          `json:"securityCode,omitempty"`
	Description            string          `json:"description,omitempty"`
	ResponseChannelPattern string          `json:"responseChannelPattern"`
}
