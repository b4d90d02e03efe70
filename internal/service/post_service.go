package service

import (
	"context"
	"log/slog"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

// PostService implements post CRUD, tag syncing and the image lifecycle.
// All multi-step writes run inside a single database transaction.
type PostService struct {
	db     *gorm.DB
	posts  repository.PostRepository
	tags   repository.TagRepository
	images *ImageService
}

func NewPostService(db *gorm.DB, posts repository.PostRepository, tags repository.TagRepository, images *ImageService) *PostService {
	return &PostService{db: db, posts: posts, tags: tags, images: images}
}

// List returns one page of posts for the given filter.
func (s *PostService) List(ctx context.Context, filter repository.PostFilter) (*repository.PostPage, error) {
	filter.Tags = NormalizeTags(filter.Tags)
	page, err := s.posts.Paginate(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}

// Get returns a single post with its tags.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if _, ok := err.(*models.AppError); ok {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// Create validates the input, stores the optional image, then writes the
// post and its tag associations in one transaction. A failed transaction
// removes the already stored image.
func (s *PostService) Create(ctx context.Context, in validation.CreatePostInput, imageContent []byte) (*models.Post, error) {
	if fields := validation.ValidateCreatePost(in); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	var imagePath string
	if len(imageContent) > 0 {
		path, err := s.images.Store(ctx, imageContent)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Content:  in.Content,
		Author:   in.Author,
		Image:    imagePath,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		if err := posts.Create(ctx, post); err != nil {
			return err
		}
		return s.syncTags(ctx, tx, post, in.Tags)
	})
	if err != nil {
		if imagePath != "" {
			if rmErr := s.images.Remove(ctx, imagePath); rmErr != nil {
				slog.Warn("orphaned image cleanup failed", "path", imagePath, "error", rmErr)
			}
		}
		return nil, models.NewInternalError(err)
	}

	observability.PostsCreated.Inc()
	return post, nil
}

// Update applies a partial update. Absent fields keep their values; a
// present tags list replaces the tag set; remove_image and a new upload
// are mutually exclusive. The replaced image blob is deleted only after
// the transaction commits.
func (s *PostService) Update(ctx context.Context, id uint, in validation.UpdatePostInput, imageContent []byte) (*models.Post, error) {
	in.HasImage = len(imageContent) > 0
	if fields := validation.ValidateUpdatePost(in); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	var newImagePath string
	if in.HasImage {
		path, err := s.images.Store(ctx, imageContent)
		if err != nil {
			return nil, err
		}
		newImagePath = path
	}

	var post *models.Post
	var replacedImage string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)

		var err error
		post, err = posts.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Tags != nil {
			if err := s.syncTags(ctx, tx, post, in.Tags); err != nil {
				return err
			}
		}

		if in.RemoveImage && post.Image != "" {
			replacedImage = post.Image
			post.Image = ""
		}
		if newImagePath != "" {
			replacedImage = post.Image
			post.Image = newImagePath
		}

		if in.Title != nil {
			post.Title = *in.Title
		}
		if in.Subtitle != nil {
			post.Subtitle = *in.Subtitle
		}
		if in.Content != nil {
			post.Content = *in.Content
		}
		if in.Author != nil {
			post.Author = *in.Author
		}

		return posts.Update(ctx, post)
	})
	if err != nil {
		if newImagePath != "" {
			if rmErr := s.images.Remove(ctx, newImagePath); rmErr != nil {
				slog.Warn("orphaned image cleanup failed", "path", newImagePath, "error", rmErr)
			}
		}
		if appErr, ok := err.(*models.AppError); ok {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	// Invalidate only once the transaction has committed, so readers
	// cannot re-cache the old row between invalidation and commit.
	cache.InvalidatePost(ctx, post.ID)

	if replacedImage != "" {
		if rmErr := s.images.Remove(ctx, replacedImage); rmErr != nil {
			slog.Warn("replaced image cleanup failed", "path", replacedImage, "error", rmErr)
		}
	}

	return post, nil
}

// Delete removes the stored image, detaches tags and soft-deletes the
// post. Tag rows themselves survive for reuse by other posts.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if _, ok := err.(*models.AppError); ok {
			return err
		}
		return models.NewInternalError(err)
	}

	if post.Image != "" {
		if err := s.images.Remove(ctx, post.Image); err != nil {
			return err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		if err := posts.DetachTags(ctx, post); err != nil {
			return err
		}
		return posts.SoftDelete(ctx, post)
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, post.ID)

	observability.PostsDeleted.Inc()
	return nil
}

// syncTags resolves normalized names to tag rows, creating missing ones,
// then replaces the post's associations with exactly that set.
func (s *PostService) syncTags(ctx context.Context, tx *gorm.DB, post *models.Post, names []string) error {
	posts := s.posts.WithTx(tx)
	tags := s.tags.WithTx(tx)

	normalized := NormalizeTags(names)
	resolved := make([]models.Tag, 0, len(normalized))
	for _, name := range normalized {
		tag, err := tags.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		resolved = append(resolved, *tag)
	}
	return posts.SyncTags(ctx, post, resolved)
}
