package service

import (
	"time"

	"github.com/distributedbanking/processing/internal/models"
)

// IsAccountValid reports whether the account has not expired.
func IsAccountValid(account *models.Account) bool {
	return account.ExpirationDate.After(time.Now().UTC())
}

// IsAccountValidSecured additionally requires the caller-provided security
// code to match. Used for every debit-type operation.
func IsAccountValidSecured(account *models.Account, securityCode string) bool {
	return IsAccountValid(account) && account.SecurityCode == securityCode
}
