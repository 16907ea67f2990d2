package repository

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/arden-cole/portfoliobackend/models"
)

// CachedAuthorRepository decorates an AuthorRepository with a TTL cache
// on the slug lookup, which every public page and gallery deep-link
// resolution hits. Entries are last-write-wins with a fixed expiry;
// writes through this decorator drop the affected slug immediately.
type CachedAuthorRepository struct {
	inner AuthorRepository
	cache *gocache.Cache
}

func NewCachedAuthorRepository(inner AuthorRepository, ttl time.Duration) *CachedAuthorRepository {
	return &CachedAuthorRepository{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (r *CachedAuthorRepository) Create(author *models.Author) error {
	return r.inner.Create(author)
}

func (r *CachedAuthorRepository) GetByID(id int64) (*models.Author, error) {
	return r.inner.GetByID(id)
}

func (r *CachedAuthorRepository) GetBySlug(slug string) (*models.Author, error) {
	if cached, ok := r.cache.Get(slug); ok {
		author := cached.(models.Author)
		return &author, nil
	}
	author, err := r.inner.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(slug, *author)
	return author, nil
}

func (r *CachedAuthorRepository) Update(author *models.Author) error {
	if err := r.inner.Update(author); err != nil {
		return err
	}
	// the slug may have changed; drop any entry pointing at this author
	for key, item := range r.cache.Items() {
		if a, ok := item.Object.(models.Author); ok && a.ID == author.ID {
			r.cache.Delete(key)
		}
	}
	r.cache.Delete(author.Slug)
	return nil
}

func (r *CachedAuthorRepository) Delete(id int64) (*models.Author, error) {
	author, err := r.inner.Delete(id)
	if err != nil {
		return nil, err
	}
	r.cache.Delete(author.Slug)
	return author, nil
}

func (r *CachedAuthorRepository) List(opts ListOptions) (*AuthorListResult, error) {
	return r.inner.List(opts)
}
