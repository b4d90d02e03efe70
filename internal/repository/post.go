// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Sortable columns accepted by PostFilter. Anything else falls back to
// created_at.
const (
	SortCreatedAt = "created_at"
	SortTitle     = "title"
	SortAuthor    = "author"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PostFilter is the validated filter set for a paginated post listing.
// Zero values mean "no filter" for author/search/tags and "use default"
// for sort/direction/page/per_page.
type PostFilter struct {
	Author    string
	Search    string
	Tags      []string
	Sort      string
	Direction string
	Page      int
	PerPage   int
}

// withDefaults returns a copy with pagination and ordering defaults applied.
func (f PostFilter) withDefaults() PostFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	switch f.Sort {
	case SortCreatedAt, SortTitle, SortAuthor:
	default:
		f.Sort = SortCreatedAt
	}
	if !strings.EqualFold(f.Direction, "asc") {
		f.Direction = "desc"
	}
	return f
}

// orderClause renders the whitelisted ORDER BY expression.
func (f PostFilter) orderClause() string {
	dir := "DESC"
	if strings.EqualFold(f.Direction, "asc") {
		dir = "ASC"
	}
	return f.Sort + " " + dir
}

// PostPage is one page of a post listing.
type PostPage struct {
	Items        []*models.Post
	CurrentPage  int
	PerPage      int
	Total        int64
	LastPage     int
	HasMorePages bool
}

// PostRepository defines persistence operations for posts and their tag
// associations. WithTx scopes a repository to an open transaction.
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	Paginate(ctx context.Context, filter PostFilter) (*PostPage, error)
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, post *models.Post) error
	SyncTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	DetachTags(ctx context.Context, post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
	// inTx repositories bypass the read cache: reads inside an open
	// transaction must see the transaction's own writes. Writes also
	// skip invalidation; a pre-commit invalidation lets a concurrent
	// reader re-cache the old committed row, so the committing caller
	// invalidates after the transaction returns.
	inTx bool
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx, inTx: true}
}

// Paginate builds the listing query with a fixed predicate order
// (author, search, tags), counts the filtered set, then fetches one page
// with tags eager-loaded. Soft-deleted posts are excluded by gorm.
func (r *postRepository) Paginate(ctx context.Context, filter PostFilter) (*PostPage, error) {
	f := filter.withDefaults()

	q := r.db.WithContext(ctx).Model(&models.Post{})

	if f.Author != "" {
		q = q.Where("author = ?", f.Author)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(subtitle) LIKE ?", like, like)
	}
	if len(f.Tags) > 0 {
		// OR semantics: a post matches when it has at least one of the
		// requested tags.
		q = q.Where(
			"EXISTS (SELECT 1 FROM post_tags JOIN tags ON tags.id = post_tags.tag_id "+
				"WHERE post_tags.post_id = posts.id AND tags.name IN ?)",
			f.Tags,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []*models.Post
	err := q.
		Preload("Tags").
		Order(f.orderClause()).
		Limit(f.PerPage).
		Offset((f.Page - 1) * f.PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(f.PerPage) - 1) / int64(f.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &PostPage{
		Items:        posts,
		CurrentPage:  f.Page,
		PerPage:      f.PerPage,
		Total:        total,
		LastPage:     lastPage,
		HasMorePages: f.Page < lastPage,
	}, nil
}

// FindByID loads a post with its tags, or a NotFound error. Soft-deleted
// posts are invisible. Reads outside a transaction go through the cache.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		if err := r.db.WithContext(ctx).
			Preload("Tags").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return err
		}
		return nil
	}

	var err error
	if r.inTx {
		err = fetch()
	} else {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// Omit the association so tag writes go through SyncTags only.
	return r.db.WithContext(ctx).Omit("Tags").Create(post).Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Tags").Save(post).Error; err != nil {
		return err
	}
	if !r.inTx {
		cache.InvalidatePost(ctx, post.ID)
	}
	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Delete(post).Error; err != nil {
		return err
	}
	if !r.inTx {
		cache.InvalidatePost(ctx, post.ID)
	}
	return nil
}

// SyncTags replaces the post's tag associations with exactly the given
// set: unlisted associations are removed, missing ones added.
func (r *postRepository) SyncTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	if err := r.db.WithContext(ctx).Model(post).Association("Tags").Replace(&tags); err != nil {
		return err
	}
	post.Tags = tags
	if !r.inTx {
		cache.InvalidatePost(ctx, post.ID)
	}
	return nil
}

func (r *postRepository) DetachTags(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Model(post).Association("Tags").Clear(); err != nil {
		return err
	}
	post.Tags = nil
	if !r.inTx {
		cache.InvalidatePost(ctx, post.ID)
	}
	return nil
}
