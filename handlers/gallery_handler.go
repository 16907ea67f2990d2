package handlers

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/gallery"
	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/repository"
)

type GalleryHandler struct {
	AuthorRepo  repository.AuthorRepository
	ProjectRepo repository.ProjectRepository
}

func NewGalleryHandler(authorRepo repository.AuthorRepository, projectRepo repository.ProjectRepository) *GalleryHandler {
	return &GalleryHandler{AuthorRepo: authorRepo, ProjectRepo: projectRepo}
}

// GalleryResolution is the server-side rendering of a gallery deep link:
// the canonical URL for the resolved state plus the state itself.
type GalleryResolution struct {
	Open       bool            `json:"open"`
	Author     *models.Author  `json:"author,omitempty"`
	Project    *models.Project `json:"project,omitempty"`
	SlideIndex int             `json:"slideIndex"`
	Path       string          `json:"path"`
	Fragment   string          `json:"fragment,omitempty"`
}

// ResolveGallery answers GET /api/gallery/resolve?path=...&hash=...
// by running the deep link through the lightbox reducer against the
// author's active projects. Links that cannot be honored resolve to a
// closed gallery on the author page instead of an error, matching how
// the client treats stale or truncated URLs.
func (gh *GalleryHandler) ResolveGallery(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	hash := r.URL.Query().Get("hash")

	authorSlug, _ := gallery.ParsePath(path)
	if authorSlug == "" {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "path must include an author slug")
		return
	}

	author, err := gh.AuthorRepo.GetBySlug(authorSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "author not found")
		} else {
			log.Printf("Error resolving author '%s': %v", authorSlug, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to resolve gallery link")
		}
		return
	}

	projects, err := gh.ProjectRepo.ListByAuthor(author.ID)
	if err != nil {
		log.Printf("Error loading projects for author %d: %v", author.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to resolve gallery link")
		return
	}

	machine := gallery.NewMachine(author.Slug, projects)
	state := machine.HandleNavigation(gallery.Closed(), path, hash)
	canonicalPath, canonicalFragment := machine.URLFor(state)

	resolution := GalleryResolution{
		Open:       state.Open,
		Author:     author,
		Project:    state.Active,
		SlideIndex: state.SlideIndex,
		Path:       canonicalPath,
		Fragment:   canonicalFragment,
	}
	writeJSON(w, http.StatusOK, resolution)
}
