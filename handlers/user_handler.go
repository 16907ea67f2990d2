package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/repository"
)

type UserHandler struct {
	UserRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{UserRepo: userRepo}
}

func (uh *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := uh.UserRepo.ListAll()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (uh *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}

	user, err := uh.UserRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "user not found")
		} else {
			log.Printf("Error getting user %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve user")
		}
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type UpdateUserPayload struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor viewer"`
}

// UpdateUser applies only the fields present in the payload.
func (uh *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}

	var payload UpdateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationResult{OK: false, Error: "invalid request body"})
		return
	}
	if err := Validate.Struct(&payload); err != nil {
		writeValidationFailure(w, err)
		return
	}

	user, err := uh.UserRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "user not found"})
			return
		}
		log.Printf("Error getting user %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to retrieve user"})
		return
	}

	if payload.Email != "" {
		user.Email = payload.Email
	}
	if payload.Role != "" {
		user.Role = payload.Role
	}
	if payload.Password != "" {
		if err := user.SetPassword(payload.Password); err != nil {
			log.Printf("Error hashing password for user %d: %v", id, err)
			writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to update user"})
			return
		}
	}

	if err := uh.UserRepo.Update(user); err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, MutationResult{OK: false, Error: "email already in use"})
			return
		}
		log.Printf("Error updating user %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to update user"})
		return
	}

	writeMutationOK(w, http.StatusOK, user)
}

func (uh *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}

	// a user must not remove their own account
	if principal, ok := PrincipalFromContext(r.Context()); ok && principal.Subject == strconv.FormatInt(id, 10) {
		writeJSON(w, http.StatusBadRequest, MutationResult{OK: false, Error: "cannot delete your own account"})
		return
	}

	if err := uh.UserRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "user not found"})
			return
		}
		log.Printf("Error deleting user %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to delete user"})
		return
	}

	writeMutationOK(w, http.StatusOK, nil)
}

func (uh *UserHandler) ListUserGrants(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}

	grants, err := uh.UserRepo.ListAuthorGrants(id)
	if err != nil {
		log.Printf("Error listing grants for user %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve grants")
		return
	}
	writeJSON(w, http.StatusOK, grants)
}

type GrantPayload struct {
	CanCreate  bool `json:"canCreate"`
	CanUpdate  bool `json:"canUpdate"`
	CanDelete  bool `json:"canDelete"`
	CanPublish bool `json:"canPublish"`
}

// SetUserGrant upserts one user's permission row for one author.
func (uh *UserHandler) SetUserGrant(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	authorID, err := strconv.ParseInt(chi.URLParam(r, "author_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid author id")
		return
	}

	var payload GrantPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationResult{OK: false, Error: "invalid request body"})
		return
	}

	grant := &models.UserAuthor{
		UserID:     userID,
		AuthorID:   authorID,
		CanCreate:  payload.CanCreate,
		CanUpdate:  payload.CanUpdate,
		CanDelete:  payload.CanDelete,
		CanPublish: payload.CanPublish,
	}
	if err := uh.UserRepo.SetAuthorGrant(grant); err != nil {
		log.Printf("Error setting grant for user %d author %d: %v", userID, authorID, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to save grant"})
		return
	}

	writeMutationOK(w, http.StatusOK, grant)
}

func (uh *UserHandler) DeleteUserGrant(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid user id")
		return
	}
	authorID, err := strconv.ParseInt(chi.URLParam(r, "author_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid author id")
		return
	}

	if err := uh.UserRepo.DeleteAuthorGrant(userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "grant not found"})
			return
		}
		log.Printf("Error deleting grant for user %d author %d: %v", userID, authorID, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to delete grant"})
		return
	}

	writeMutationOK(w, http.StatusOK, nil)
}
