package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/auth"
	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/permissions"
	"github.com/arden-cole/portfoliobackend/repository"
)

type AuthHandler struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenService
}

func NewAuthHandler(userRepo repository.UserRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{UserRepo: userRepo, Tokens: tokens}
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Login checks the credentials and, on success, sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid request payload")
		return
	}
	if err := Validate.Struct(payload); err != nil {
		WriteAPIErrors(w, http.StatusBadRequest, ValidationDetails(err))
		return
	}

	user, err := h.UserRepo.GetByEmail(payload.Email)
	if err != nil || !user.CheckPassword(payload.Password) {
		// same message for unknown email and wrong password
		WriteAPIError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	token, expiresAt, err := h.Tokens.Issue(auth.Principal{
		Subject: fmt.Sprint(user.ID),
		Email:   user.Email,
		Role:    user.Role,
	})
	if err != nil {
		log.Printf("Error issuing token for user %d: %v", user.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to create session")
		return
	}

	auth.SetAuthCookie(w, token, h.Tokens.TTL())
	writeJSON(w, http.StatusOK, LoginResponse{User: *user, ExpiresAt: expiresAt})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; sessions are stateless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type RegisterPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor viewer"`
}

// Register creates a new back-office user. Only admins may call this.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok || !permissions.CanManageUsers(principal.Role) {
		WriteAPIError(w, http.StatusForbidden, "forbidden", "only admins can create users")
		return
	}

	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid request payload")
		return
	}
	if err := Validate.Struct(payload); err != nil {
		WriteAPIErrors(w, http.StatusBadRequest, ValidationDetails(err))
		return
	}
	if payload.Role == "" {
		payload.Role = models.RoleEditor
	}

	newUser := &models.User{Email: payload.Email, Role: payload.Role}
	if err := newUser.SetPassword(payload.Password); err != nil {
		log.Printf("Error hashing password for %s: %v", payload.Email, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to create user")
		return
	}

	if err := h.UserRepo.Create(newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			WriteAPIError(w, http.StatusConflict, "conflict", "email already registered")
			return
		}
		log.Printf("Error creating user %s: %v", payload.Email, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, newUser)
}

// CurrentUser returns the principal carried by the session cookie.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "could not retrieve principal from context")
		return
	}
	writeJSON(w, http.StatusOK, principal)
}
