package application

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

// ObjectUploader stores a blob and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// GCSUploader uploads into one Cloud Storage bucket.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
}

func (u *GCSUploader) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, u.Client, u.Bucket, objectPath, contentType, r)
}

// MediaService uploads trainer videos and records them in the videos collection.
type MediaService struct {
	Storage ObjectUploader
	Videos  *CollectionService
	Timeout time.Duration
	now     func() time.Time
}

// NewMediaService wires the service; storage may be nil when no bucket is configured.
func NewMediaService(storage ObjectUploader, videos *CollectionService) *MediaService {
	return &MediaService{Storage: storage, Videos: videos, Timeout: 5 * time.Minute, now: time.Now}
}

type UploadVideoInput struct {
	Title       string
	Filename    string
	ContentType string
	Body        io.Reader
}

// UploadVideo stores the file under videos/<owner>/<uuid><ext> and inserts its video document.
func (s *MediaService) UploadVideo(ctx context.Context, owner string, in UploadVideoInput) (entity.Document, error) {
	if strings.TrimSpace(in.Title) == "" || in.Body == nil {
		return nil, fmt.Errorf("%w: title and file are required", ErrInvalidInput)
	}
	if !strings.HasPrefix(in.ContentType, "video/") {
		return nil, fmt.Errorf("%w: file must be a video", ErrInvalidInput)
	}
	if s.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	objectPath := path.Join("videos", owner, uuid.NewString()+ext)

	uctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	url, err := s.Storage.Upload(uctx, objectPath, in.ContentType, in.Body)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	doc := entity.Document{
		"title":      in.Title,
		"url":        url,
		"uploadedBy": owner,
		"createdAt":  s.now().UTC(),
	}
	id, err := s.Videos.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc[entity.IDField] = id
	return doc, nil
}
