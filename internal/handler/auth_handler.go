package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/distributedbanking/processing/internal/middleware"
	"github.com/distributedbanking/processing/internal/models"
	"github.com/distributedbanking/processing/internal/operation"
)

// UserDirectory defines the credential operations used by AuthHandler.
type UserDirectory interface {
	PasswordSignIn(ctx context.Context, email, password string) operation.Result
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Roles(ctx context.Context, user *models.User) ([]string, error)
	Profile(ctx context.Context, id string) (*models.UserView, error)
}

// AuthHandler handles sign-in and the authenticated profile endpoint.
type AuthHandler struct {
	users    UserDirectory
	secret   []byte
	tokenTTL time.Duration
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(users UserDirectory, secret []byte, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, secret: secret, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result := h.users.PasswordSignIn(c.Request.Context(), req.Email, req.Password)
	switch result.Status {
	case operation.StatusSuccess:
	case operation.StatusBadRequest:
		middleware.RespondWithError(c, http.StatusUnauthorized, result.Message)
		return
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	roles, err := h.users.Roles(c.Request.Context(), user)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	token, err := middleware.IssueToken(h.secret, user.ID.Hex(), user.Email, user.EndUserID, roles, h.tokenTTL)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	view, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if view == nil {
		middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, view)
}
