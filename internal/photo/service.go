package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/storage"
)

// UploadInput describes one uploaded image and the limits applied to it.
type UploadInput struct {
	Filename     string
	Content      io.Reader
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = any image type
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*Photo, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Photo, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage, imgProc *storage.ImageProcessor) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: imgProc,
		now:     time.Now,
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*Photo, error) {
	src := in.Content
	if in.MaxSizeBytes > 0 {
		src = io.LimitReader(src, in.MaxSizeBytes+1)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo content: %w", err)
	}
	if len(content) == 0 {
		return nil, ErrEmpty
	}
	if in.MaxSizeBytes > 0 && int64(len(content)) > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	// Sniff the bytes; the client-declared type is not trusted.
	contentType := http.DetectContentType(content)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedType
	}
	if len(in.AllowedTypes) > 0 && !slices.Contains(in.AllowedTypes, contentType) {
		return nil, ErrUnsupportedType
	}

	id := uuid.New().String()
	ext := extensionFor(contentType)

	// Sharding path: photos/ab/UUID.ext
	shard := id[:2]
	storagePath := fmt.Sprintf("photos/%s/%s%s", shard, id, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	var thumbnailPath *string
	if thumb, err := s.imgProc.Thumbnail(bytes.NewReader(content)); err != nil {
		zap.L().Warn("thumbnail generation failed", zap.String("photo_id", id), zap.Error(err))
	} else {
		tPath := fmt.Sprintf("photos/%s/%s_thumb.jpg", shard, id)
		if err := s.storage.Save(ctx, tPath, thumb); err != nil {
			zap.L().Warn("thumbnail save failed", zap.String("photo_id", id), zap.Error(err))
		} else {
			thumbnailPath = &tPath
		}
	}

	p := &Photo{
		ID:            id,
		UserID:        in.UserID,
		Filename:      filepath.Base(in.Filename),
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          int64(len(content)),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.removeObjects(ctx, p)
		return nil, err
	}

	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeObjects(ctx, p)
	return nil
}

// removeObjects is best effort; orphaned bytes are harmless.
func (s *service) removeObjects(ctx context.Context, p *Photo) {
	if err := s.storage.Delete(ctx, p.StoragePath); err != nil {
		zap.L().Warn("failed to delete photo object", zap.String("path", p.StoragePath), zap.Error(err))
	}
	if p.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *p.ThumbnailPath); err != nil {
			zap.L().Warn("failed to delete thumbnail object", zap.String("path", *p.ThumbnailPath), zap.Error(err))
		}
	}
}

func (s *service) Get(ctx context.Context, id string) (*Photo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}

	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if p.ThumbnailPath == nil {
		return nil, nil, ErrThumbnailUnavailable
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrThumbnailUnavailable
		}
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, p, nil
}

// extensionFor picks the stored object's extension from the sniffed type, never the client filename.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	}
	return ""
}
