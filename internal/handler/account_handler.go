// Package handler exposes the read-side ops API. All writes flow through the
// message listeners; these endpoints only observe processed state.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/distributedbanking/processing/internal/middleware"
	"github.com/distributedbanking/processing/internal/models"
)

// AccountReader defines the account queries used by AccountHandler.
type AccountReader interface {
	Get(ctx context.Context, id string) (*models.AccountView, error)
	All(ctx context.Context) ([]models.AccountView, error)
	ByCustomer(ctx context.Context, customerID string) ([]models.AccountView, error)
	BelongsTo(ctx context.Context, accountID, customerID string) (bool, error)
}

// TransactionReader defines the transaction queries used by AccountHandler.
type TransactionReader interface {
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
	History(ctx context.Context, accountID string) ([]models.TransactionView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts     AccountReader
	transactions TransactionReader
}

type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
}

type BalanceResponse struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

func NewAccountHandler(accounts AccountReader, transactions TransactionReader) *AccountHandler {
	return &AccountHandler{accounts: accounts, transactions: transactions}
}

// isPrivileged reports whether the requester may read accounts they do not
// own. Customers only ever see their own.
func isPrivileged(roles []string) bool {
	for _, role := range roles {
		if strings.EqualFold(role, models.RoleWorker) || strings.EqualFold(role, models.RoleAdministrator) {
			return true
		}
	}
	return false
}

func (h *AccountHandler) canAccess(c *gin.Context, accountID string) (bool, error) {
	if isPrivileged(middleware.GetRoles(c)) {
		return true, nil
	}
	endUserID, _ := middleware.GetEndUserID(c)
	return h.accounts.BelongsTo(c.Request.Context(), accountID, endUserID)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	if isPrivileged(middleware.GetRoles(c)) {
		views, err := h.accounts.All(c.Request.Context())
		if err != nil {
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
			return
		}
		c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
		return
	}

	endUserID, _ := middleware.GetEndUserID(c)
	views, err := h.accounts.ByCustomer(c.Request.Context(), endUserID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID := c.Param("accountId")

	allowed, err := h.canAccess(c, accountID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch account")
		return
	}
	if !allowed {
		middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own accounts")
		return
	}

	view, err := h.accounts.Get(c.Request.Context(), accountID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch account")
		return
	}
	if view == nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	accountID := c.Param("accountId")

	allowed, err := h.canAccess(c, accountID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch balance")
		return
	}
	if !allowed {
		middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own accounts")
		return
	}

	balance, err := h.transactions.Balance(c.Request.Context(), accountID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch balance")
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{AccountID: accountID, Balance: balance})
}

func (h *AccountHandler) ListTransactions(c *gin.Context) {
	accountID := c.Param("accountId")

	allowed, err := h.canAccess(c, accountID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	if !allowed {
		middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own accounts")
		return
	}

	views, err := h.transactions.History(c.Request.Context(), accountID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

func (h *AccountHandler) ListCustomerAccounts(c *gin.Context) {
	customerID := c.Param("customerId")

	if !isPrivileged(middleware.GetRoles(c)) {
		endUserID, _ := middleware.GetEndUserID(c)
		if endUserID != customerID {
			middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own accounts")
			return
		}
	}

	views, err := h.accounts.ByCustomer(c.Request.Context(), customerID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}
