// Package imagestorage is the generic image pipeline: one service
// parameterized by (resource type, image type) instead of a near-copy
// upload service per entity. The directory layout
//
//	{basePath}/[{username}/]{resourceType}/{resourceID}/[{subPath}/]{imageType}-{uuid}{ext}
//
// gives per-user isolation without any extra index; the path is the
// index.
package imagestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/internal/logger"
	"portfolio_backend/pkg/apperrors"
)

const svgMimeType = "image/svg+xml"

// Location identifies where an image lives and which processing rules
// apply to it. Username is set only for user-owned resources.
type Location struct {
	ResourceType string
	ResourceID   string
	ImageType    imageconfig.ImageType
	SubPath      string
	Username     string
}

type Service struct {
	basePath string
	registry *imageconfig.Registry
	proc     processor
}

func NewService(basePath string, registry *imageconfig.Registry) (*Service, error) {
	if basePath == "" {
		basePath = "./uploads"
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Service{basePath: basePath, registry: registry}, nil
}

// UploadImage validates, processes and stores one file, returning the
// generated filename. The caller persists the filename on the owning
// entity. A fresh UUID is used every time; uploads never overwrite.
func (s *Service) UploadImage(ctx context.Context, file *multipart.FileHeader, loc Location) (string, error) {
	cfg, err := s.registry.Get(loc.ResourceType, loc.ImageType)
	if err != nil {
		return "", err
	}
	if err := validateFile(file, cfg); err != nil {
		return "", err
	}
	return s.processAndStore(ctx, file, loc, cfg)
}

// UploadImages validates every file before processing any, so a bad
// file late in the batch leaves the filesystem untouched. Processing
// then runs concurrently with per-file semantics of UploadImage.
func (s *Service) UploadImages(ctx context.Context, files []*multipart.FileHeader, loc Location) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	cfg, err := s.registry.Get(loc.ResourceType, loc.ImageType)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := validateFile(file, cfg); err != nil {
			return nil, err
		}
	}

	filenames := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			name, err := s.processAndStore(gctx, file, loc, cfg)
			if err != nil {
				return err
			}
			filenames[i] = name
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return filenames, nil
}

// ImagePath returns the absolute path of a stored image, failing with
// not-found when the file does not exist on disk.
func (s *Service) ImagePath(loc Location, filename string) (string, error) {
	path := filepath.Join(s.resourceDir(loc), filename)
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.ErrImageNotFound(filename)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return abs, nil
}

// ImageExists wraps ImagePath success/failure as a boolean.
func (s *Service) ImageExists(loc Location, filename string) bool {
	_, err := s.ImagePath(loc, filename)
	return err == nil
}

// DeleteImage removes a stored image. A missing file is not an error;
// delete is idempotent.
func (s *Service) DeleteImage(loc Location, filename string) error {
	path := filepath.Join(s.resourceDir(loc), filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteImages removes each file best-effort, then drops the containing
// directory if nothing is left in it. Cleanup failures are swallowed:
// the directory may still hold siblings or be gone already.
func (s *Service) DeleteImages(loc Location, filenames []string) error {
	dir := s.resourceDir(loc)
	for _, filename := range filenames {
		if err := os.Remove(filepath.Join(dir, filename)); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to delete image", "file", filename, "error", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
	return nil
}

// DeleteAllResourceImages removes the whole directory of a resource,
// e.g. when the owning entity is deleted. Missing directory is fine.
func (s *Service) DeleteAllResourceImages(resourceType, resourceID, username string) error {
	dir := s.resourceDir(Location{
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Username:     username,
	})
	if err := os.RemoveAll(dir); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// BasePath exposes the storage root, e.g. for the cleanup worker.
func (s *Service) BasePath() string {
	return s.basePath
}

func (s *Service) processAndStore(ctx context.Context, file *multipart.FileHeader, loc Location, cfg imageconfig.ProcessingConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := readFile(file)
	if err != nil {
		return "", apperrors.ErrImageProcessing(err)
	}

	var ext string
	if mimeTypeOf(file) == svgMimeType {
		// SVG is vector data: no raster pass, stored byte-for-byte
		// with a forced .svg extension whatever the output format.
		ext = ".svg"
	} else {
		data, ext, err = s.proc.process(data, cfg)
		if err != nil {
			return "", apperrors.ErrImageProcessing(err)
		}
	}

	dir := s.resourceDir(loc)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.ErrImageProcessing(err)
	}

	filename := fmt.Sprintf("%s-%s%s", loc.ImageType, uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", apperrors.ErrImageProcessing(err)
	}
	return filename, nil
}

func (s *Service) resourceDir(loc Location) string {
	parts := []string{s.basePath}
	if loc.Username != "" {
		parts = append(parts, loc.Username)
	}
	parts = append(parts, loc.ResourceType, loc.ResourceID)
	if loc.SubPath != "" {
		parts = append(parts, loc.SubPath)
	}
	return filepath.Join(parts...)
}

func validateFile(file *multipart.FileHeader, cfg imageconfig.ProcessingConfig) error {
	if !cfg.AllowsMimeType(mimeTypeOf(file)) {
		return apperrors.ErrInvalidFileType
	}
	if file.Size > cfg.MaxFileSize {
		return apperrors.ErrFileTooLarge
	}
	return nil
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()
	return io.ReadAll(src)
}

func mimeTypeOf(file *multipart.FileHeader) string {
	if mt := file.Header.Get("Content-Type"); mt != "" {
		return mt
	}
	return mimeTypeFromFilename(file.Filename)
}

func mimeTypeFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".svg":
		return svgMimeType
	default:
		return "application/octet-stream"
	}
}
