package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/media"
	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/permissions"
	"github.com/arden-cole/portfoliobackend/repository"
)

const slidePreviewWidth = 1000

type ProjectHandler struct {
	ProjectRepo repository.ProjectRepository
	AuthorRepo  repository.AuthorRepository
	UserRepo    repository.UserRepository
}

func NewProjectHandler(projectRepo repository.ProjectRepository, authorRepo repository.AuthorRepository, userRepo repository.UserRepository) *ProjectHandler {
	return &ProjectHandler{ProjectRepo: projectRepo, AuthorRepo: authorRepo, UserRepo: userRepo}
}

// ListProjects serves GET /api/projects; items carry their ordered
// slides, and authorId restricts the listing to one author.
func (ph *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	opts, details := parseListOptions(r)
	if len(details) > 0 {
		WriteAPIErrors(w, http.StatusBadRequest, details)
		return
	}

	result, err := ph.ProjectRepo.List(opts)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve projects")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (ph *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "project_identifier")

	project, err := ph.getProjectByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "project not found")
		} else {
			log.Printf("Error getting project by identifier '%s': %v", identifier, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve project")
		}
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (ph *ProjectHandler) getProjectByIdentifier(identifier string) (*models.Project, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		project, err := ph.ProjectRepo.GetByID(id)
		if err == nil {
			return project, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return ph.ProjectRepo.GetBySlug(identifier)
}

// decodeAndValidateProject parses the body, normalizes slide media URLs,
// and checks the schema, including the referenced author.
func (ph *ProjectHandler) decodeAndValidateProject(r *http.Request, id int64) (*models.Project, []APIErrorDetail) {
	var payload models.Project
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, []APIErrorDetail{{Code: "bad_request", Status: "400", Detail: "invalid request body"}}
	}
	payload.ID = id
	if payload.Status == "" {
		payload.Status = models.ProjectStatusActive
	}

	// rewrite Google Drive share links into direct preview URLs
	for i := range payload.Slides {
		if normalized := media.NormalizePreviewURL(payload.Slides[i].Src, slidePreviewWidth); normalized != "" {
			payload.Slides[i].Src = normalized
		}
		if payload.Slides[i].Poster != "" {
			if normalized := media.NormalizePreviewURL(payload.Slides[i].Poster, slidePreviewWidth); normalized != "" {
				payload.Slides[i].Poster = normalized
			}
		}
	}

	if err := Validate.Struct(&payload); err != nil {
		return nil, ValidationDetails(err)
	}

	if _, err := ph.AuthorRepo.GetByID(payload.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, []APIErrorDetail{{
				Code:   "validation_error",
				Status: "400",
				Field:  "authorId",
				Detail: "referenced author does not exist",
			}}
		}
		log.Printf("Error checking author %d: %v", payload.AuthorID, err)
		return nil, []APIErrorDetail{{Code: "internal_error", Status: "500", Detail: "failed to verify author"}}
	}

	return &payload, nil
}

func (ph *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	payload, details := ph.decodeAndValidateProject(r, 0)
	if details != nil {
		writeJSON(w, http.StatusBadRequest, MutationResult{OK: false, Error: "invalid input", Errors: details})
		return
	}

	if !authorizeAuthorAction(r.Context(), ph.UserRepo, payload.AuthorID, permissions.ActionCreate) {
		writeJSON(w, http.StatusForbidden, MutationResult{OK: false, Error: "no create grant for this author"})
		return
	}

	if err := ph.ProjectRepo.Create(payload); err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, MutationResult{OK: false, Error: "slug already exists"})
			return
		}
		log.Printf("Error creating project '%s': %v", payload.Slug, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to create project"})
		return
	}

	writeMutationOK(w, http.StatusCreated, payload)
}

// UpdateProject re-validates the merged payload and replaces the whole
// slide set rather than diffing it.
func (ph *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "project_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}

	payload, details := ph.decodeAndValidateProject(r, id)
	if details != nil {
		writeJSON(w, http.StatusBadRequest, MutationResult{OK: false, Error: "invalid input", Errors: details})
		return
	}

	existing, err := ph.ProjectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "project not found"})
			return
		}
		log.Printf("Error loading project %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to update project"})
		return
	}

	if !authorizeAuthorAction(r.Context(), ph.UserRepo, existing.AuthorID, permissions.ActionUpdate) {
		writeJSON(w, http.StatusForbidden, MutationResult{OK: false, Error: "no update grant for this author"})
		return
	}
	// moving a project under another author adds to that author's
	// portfolio, so it needs a create grant there too
	if payload.AuthorID != existing.AuthorID &&
		!authorizeAuthorAction(r.Context(), ph.UserRepo, payload.AuthorID, permissions.ActionCreate) {
		writeJSON(w, http.StatusForbidden, MutationResult{OK: false, Error: "no create grant for the target author"})
		return
	}
	// toggling visibility is a separate publish right
	if payload.Status != existing.Status &&
		!authorizeAuthorAction(r.Context(), ph.UserRepo, existing.AuthorID, permissions.ActionPublish) {
		writeJSON(w, http.StatusForbidden, MutationResult{OK: false, Error: "no publish grant for this author"})
		return
	}

	if err := ph.ProjectRepo.Update(payload); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "project not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, MutationResult{OK: false, Error: "slug already exists"})
			return
		}
		log.Printf("Error updating project %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to update project"})
		return
	}

	writeMutationOK(w, http.StatusOK, payload)
}

func (ph *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "project_id"), 10, 64)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "invalid project id")
		return
	}

	existing, err := ph.ProjectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "project not found"})
			return
		}
		log.Printf("Error loading project %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to delete project"})
		return
	}
	if !authorizeAuthorAction(r.Context(), ph.UserRepo, existing.AuthorID, permissions.ActionDelete) {
		writeJSON(w, http.StatusForbidden, MutationResult{OK: false, Error: "no delete grant for this author"})
		return
	}

	deleted, err := ph.ProjectRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, MutationResult{OK: false, Error: "project not found"})
			return
		}
		log.Printf("Error deleting project %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to delete project"})
		return
	}

	writeMutationOK(w, http.StatusOK, deleted)
}
