package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/permissions"
	"github.com/arden-cole/portfoliobackend/repository"
)

type AuthorHandler struct {
	AuthorRepo repository.AuthorRepository
	UserRepo   repository.UserRepository
}

func NewAuthorHandler(authorRepo repository.AuthorRepository, userRepo repository.UserRepository) *AuthorHandler {
	return &AuthorHandler{AuthorRepo: authorRepo, UserRepo: userRepo}
}

// getAuthorByIdentifier resolves a URL identifier as numeric id first,
// then as slug.
func (ah *AuthorHandler) getAuthorByIdentifier(identifier string) (*models.Author, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		author, err := ah.AuthorRepo.GetByID(id)
		if err == nil {
			return author, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return ah.AuthorRepo.GetBySlug(identifier)
}

// ListAuthors serves GET /api/authors with optional query, page,
// pageSize, sort, and createdFrom/createdTo parameters.
func (ah *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	opts, details := parseListOptions(r)
	if len(details) > 0 {
		WriteAPIErrors(w, http.StatusBadRequest, details)
		return
	}

	result, err := ah.AuthorRepo.List(opts)
	if err != nil {
		log.Printf("Error listing authors: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve authors")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (ah *AuthorHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "author_identifier")

	author, err := ah.getAuthorByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "author not found")
		} else {
			log.Printf("Error getting author by identifier '%s': %v", identifier, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve author")
		}
		return
	}
	writeJSON(w, http.StatusOK, author)
}

func (ah *AuthorHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var payload models.Author
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	payload.ID = 0

	if err := Validate.Struct(&payload); err != nil {
		writeValidationFailure(w, err)
		return
	}

	if err := ah.AuthorRepo.Create(&payload); err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, MutationResult{OK: false, Error: "slug already exists"})
			return
		}
		log.Printf("Error creating author '%s': %v", payload.Slug, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to create author"})
		return
	}

	writeMutationOK(w, http.StatusCreated, payload)
}

func (ah *AuthorHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "author_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid author id")
		return
	}

	var payload models.Author
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	payload.ID = id

	if err := Validate.Struct(&payload); err != nil {
		writeValidationFailure(w, err)
		return
	}

	if !authorizeAuthorAction(r.Context(), ah.UserRepo, id, permissions.ActionUpdate) {
		writeJSON(w, http.StatusForbidden, MutationResult{OK: false, Error: "no update grant for this author"})
		return
	}

	if err := ah.AuthorRepo.Update(&payload); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "author not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, MutationResult{OK: false, Error: "slug already exists"})
			return
		}
		log.Printf("Error updating author %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to update author"})
		return
	}

	updated, err := ah.AuthorRepo.GetByID(id)
	if err != nil {
		writeMutationOK(w, http.StatusOK, nil)
		return
	}
	writeMutationOK(w, http.StatusOK, updated)
}

// DeleteAuthor removes the author; the store cascades the delete to the
// author's projects and their slides.
func (ah *AuthorHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "author_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid author id")
		return
	}

	if !authorizeAuthorAction(r.Context(), ah.UserRepo, id, permissions.ActionDelete) {
		writeJSON(w, http.StatusForbidden, MutationResult{OK: false, Error: "no delete grant for this author"})
		return
	}

	deleted, err := ah.AuthorRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "author not found"})
			return
		}
		log.Printf("Error deleting author %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to delete author"})
		return
	}

	writeMutationOK(w, http.StatusOK, deleted)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
