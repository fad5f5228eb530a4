package imagestorage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/pkg/apperrors"
)

func newTestService(t *testing.T) (*Service, *imageconfig.Registry) {
	t.Helper()
	registry := imageconfig.NewRegistry()
	svc, err := NewService(t.TempDir(), registry)
	require.NoError(t, err)
	return svc, registry
}

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

const svgDoc = `<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32"><circle cx="16" cy="16" r="14"/></svg>`

func TestUploadImageResizesAndEncodes(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "users", ResourceID: "u1", ImageType: imageconfig.ImageTypeProfile, Username: "alice"}

	file := fileHeader(t, "photo.png", "image/png", pngBytes(t, 1000, 500))
	filename, err := svc.UploadImage(context.Background(), file, loc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "profile-"))
	assert.True(t, strings.HasSuffix(filename, ".jpg"), "users profile preset encodes to jpeg, got %s", filename)

	path, err := svc.ImagePath(loc, filename)
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	// Cover fit fills the exact box.
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestUploadImageStoresUnderUsername(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "users", ResourceID: "u1", ImageType: imageconfig.ImageTypeProfile, Username: "alice"}

	file := fileHeader(t, "photo.png", "image/png", pngBytes(t, 50, 50))
	filename, err := svc.UploadImage(context.Background(), file, loc)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(svc.BasePath(), "alice", "users", "u1", filename))
	assert.NoError(t, err)
}

func TestUploadImageRejectsWrongMimeType(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "users", ResourceID: "u1", ImageType: imageconfig.ImageTypeProfile}

	file := fileHeader(t, "anim.gif", "image/gif", []byte("GIF89a"))
	_, err := svc.UploadImage(context.Background(), file, loc)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestUploadImageRejectsOversizedFile(t *testing.T) {
	svc, registry := newTestService(t)
	registry.Register("tiny", imageconfig.ResourceConfig{
		imageconfig.ImageTypeProfile: {
			MaxWidth: 100, MaxHeight: 100,
			Fit:              imageconfig.FitInside,
			AllowedMimeTypes: []string{"image/png"},
			MaxFileSize:      10,
			OutputFormat:     imageconfig.FormatPNG,
		},
	})
	loc := Location{ResourceType: "tiny", ResourceID: "r1", ImageType: imageconfig.ImageTypeProfile}

	file := fileHeader(t, "big.png", "image/png", pngBytes(t, 50, 50))
	_, err := svc.UploadImage(context.Background(), file, loc)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestUploadImageUnknownResourceType(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "widgets", ResourceID: "w1", ImageType: imageconfig.ImageTypeProfile}

	file := fileHeader(t, "photo.png", "image/png", pngBytes(t, 10, 10))
	_, err := svc.UploadImage(context.Background(), file, loc)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConfigurationError, appErr.Code)
}

func TestSVGStoredVerbatim(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "technologies", ResourceID: "t1", ImageType: imageconfig.ImageTypeProfile, Username: "alice"}

	file := fileHeader(t, "logo.svg", "image/svg+xml", []byte(svgDoc))
	filename, err := svc.UploadImage(context.Background(), file, loc)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filename, ".svg"), "svg keeps its extension despite the png output preset")

	path, err := svc.ImagePath(loc, filename)
	require.NoError(t, err)
	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(svgDoc), stored, "vector data must pass through untouched")
}

func TestUploadImagesAllOrNothingValidation(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "applications", ResourceID: "a1", ImageType: imageconfig.ImageTypeGallery, Username: "alice"}

	files := []*multipart.FileHeader{
		fileHeader(t, "ok.png", "image/png", pngBytes(t, 20, 20)),
		fileHeader(t, "bad.gif", "image/gif", []byte("GIF89a")),
	}

	_, err := svc.UploadImages(context.Background(), files, loc)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	// Nothing was written: the resource directory was never created.
	_, statErr := os.Stat(filepath.Join(svc.BasePath(), "alice", "applications", "a1"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadImagesBatch(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "applications", ResourceID: "a1", ImageType: imageconfig.ImageTypeGallery, Username: "alice"}

	files := []*multipart.FileHeader{
		fileHeader(t, "one.png", "image/png", pngBytes(t, 30, 20)),
		fileHeader(t, "two.png", "image/png", pngBytes(t, 20, 30)),
	}

	filenames, err := svc.UploadImages(context.Background(), files, loc)
	require.NoError(t, err)
	require.Len(t, filenames, 2)
	for _, name := range filenames {
		assert.True(t, svc.ImageExists(loc, name))
	}
	assert.NotEqual(t, filenames[0], filenames[1])
}

func TestUploadImagesEmptyBatch(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "applications", ResourceID: "a1", ImageType: imageconfig.ImageTypeGallery}

	filenames, err := svc.UploadImages(context.Background(), nil, loc)
	require.NoError(t, err)
	assert.Empty(t, filenames)
}

func TestImagePathNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "users", ResourceID: "u1", ImageType: imageconfig.ImageTypeProfile}

	_, err := svc.ImagePath(loc, "profile-missing.jpg")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestDeleteImageIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "users", ResourceID: "u1", ImageType: imageconfig.ImageTypeProfile, Username: "alice"}

	file := fileHeader(t, "photo.png", "image/png", pngBytes(t, 10, 10))
	filename, err := svc.UploadImage(context.Background(), file, loc)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImage(loc, filename))
	assert.False(t, svc.ImageExists(loc, filename))

	// Deleting again is fine.
	assert.NoError(t, svc.DeleteImage(loc, filename))
}

func TestDeleteImagesRemovesEmptyDirectory(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "applications", ResourceID: "a1", ImageType: imageconfig.ImageTypeGallery, Username: "alice"}

	files := []*multipart.FileHeader{
		fileHeader(t, "one.png", "image/png", pngBytes(t, 10, 10)),
		fileHeader(t, "two.png", "image/png", pngBytes(t, 10, 10)),
	}
	filenames, err := svc.UploadImages(context.Background(), files, loc)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImages(loc, filenames))

	_, statErr := os.Stat(filepath.Join(svc.BasePath(), "alice", "applications", "a1"))
	assert.True(t, os.IsNotExist(statErr), "empty directory is cleaned up")
}

func TestDeleteAllResourceImages(t *testing.T) {
	svc, _ := newTestService(t)
	loc := Location{ResourceType: "applications", ResourceID: "a1", ImageType: imageconfig.ImageTypeGallery, Username: "alice"}

	file := fileHeader(t, "one.png", "image/png", pngBytes(t, 10, 10))
	_, err := svc.UploadImage(context.Background(), file, loc)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllResourceImages("applications", "a1", "alice"))
	_, statErr := os.Stat(filepath.Join(svc.BasePath(), "alice", "applications", "a1"))
	assert.True(t, os.IsNotExist(statErr))

	// Missing directory is not an error.
	assert.NoError(t, svc.DeleteAllResourceImages("applications", "a1", "alice"))
}
