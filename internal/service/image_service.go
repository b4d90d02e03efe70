package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/storage"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxUploadSizeMB = 2
	ThumbnailMaxSize       = 512
	ThumbnailWebPQuality   = 70
)

// ImageService validates post image uploads, writes them to the blob
// store under a random name, and derives a webp thumbnail alongside.
type ImageService struct {
	store    storage.BlobStore
	maxBytes int64
}

func NewImageService(store storage.BlobStore, maxUploadSizeMB int) *ImageService {
	if maxUploadSizeMB < 1 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	return &ImageService{
		store:    store,
		maxBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Store validates and persists an uploaded image, returning the stored
// blob path. The caller records that path on the owning post.
func (s *ImageService) Store(ctx context.Context, content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewFieldValidationError(map[string]string{
			"image": "The image field is required.",
		})
	}
	if int64(len(content)) > s.maxBytes {
		return "", models.NewFieldValidationError(map[string]string{
			"image": fmt.Sprintf("The image may not be greater than %d kilobytes.", s.maxBytes/1024),
		})
	}

	detected := http.DetectContentType(content)
	ext, ok := extensionFor(detected)
	if !ok {
		return "", models.NewFieldValidationError(map[string]string{
			"image": "The image must be a file of type: jpeg, png, gif, webp.",
		})
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewFieldValidationError(map[string]string{
			"image": "The image must be an image.",
		})
	}

	name := uuid.NewString()
	blobPath := path.Join("posts", name+ext)
	if _, err := s.store.Save(ctx, blobPath, content); err != nil {
		return "", models.NewStorageError("failed to store image", err)
	}
	observability.BlobsStored.WithLabelValues("original").Inc()

	// Thumbnail generation is best effort: a failure must not lose the
	// upload that already succeeded.
	if err := s.storeThumbnail(ctx, name, decoded); err != nil {
		slog.Warn("thumbnail generation failed", "path", blobPath, "error", err)
	}

	return blobPath, nil
}

// Remove deletes a stored image and its thumbnail. Missing blobs are
// not an error, so removal is safe to retry.
func (s *ImageService) Remove(ctx context.Context, blobPath string) error {
	if blobPath == "" {
		return nil
	}
	if err := s.store.Delete(ctx, blobPath); err != nil {
		return models.NewStorageError("failed to delete image", err)
	}
	observability.BlobsDeleted.Inc()

	if err := s.store.Delete(ctx, thumbnailPath(blobPath)); err != nil {
		slog.Warn("thumbnail delete failed", "path", blobPath, "error", err)
	}
	return nil
}

func (s *ImageService) storeThumbnail(ctx context.Context, name string, src image.Image) error {
	thumb := resizeToFit(src, ThumbnailMaxSize, ThumbnailMaxSize)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, thumb, &webp.Options{Quality: ThumbnailWebPQuality}); err != nil {
		return err
	}
	if _, err := s.store.Save(ctx, path.Join("posts", "thumbs", name+".webp"), buf.Bytes()); err != nil {
		return err
	}
	observability.BlobsStored.WithLabelValues("thumbnail").Inc()
	return nil
}

func thumbnailPath(blobPath string) string {
	base := path.Base(blobPath)
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	return path.Join("posts", "thumbs", base+".webp")
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func extensionFor(contentType string) (string, bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/gif":
		return ".gif", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}
