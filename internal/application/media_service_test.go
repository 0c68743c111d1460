package application

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/agrosphere-api/internal/infrastructure/memory"
)

type memUploader struct {
	path, contentType, body string
}

func (u *memUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.path, u.contentType, u.body = objectPath, contentType, string(b)
	return "https://storage.example/" + objectPath, nil
}

func TestUploadVideo(t *testing.T) {
	up := &memUploader{}
	videos := NewCollectionService("videos", memory.NewDocumentRepository(), nil, nil)
	svc := NewMediaService(up, videos)

	doc, err := svc.UploadVideo(context.Background(), "t@x.com", UploadVideoInput{
		Title: "Pruning", Filename: "clip.MP4", ContentType: "video/mp4", Body: strings.NewReader("bytes"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.path, "videos/t@x.com/"))
	assert.True(t, strings.HasSuffix(up.path, ".mp4"))
	assert.Equal(t, "bytes", up.body)
	assert.Equal(t, "t@x.com", doc["uploadedBy"])
	assert.Equal(t, "https://storage.example/"+up.path, doc["url"])

	all, err := videos.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUploadVideoRejects(t *testing.T) {
	videos := NewCollectionService("videos", memory.NewDocumentRepository(), nil, nil)

	_, err := NewMediaService(&memUploader{}, videos).UploadVideo(context.Background(), "t@x.com", UploadVideoInput{
		Title: "x", ContentType: "image/png", Body: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewMediaService(nil, videos).UploadVideo(context.Background(), "t@x.com", UploadVideoInput{
		Title: "x", ContentType: "video/mp4", Body: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
