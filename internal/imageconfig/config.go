// Package imageconfig holds the per-resource, per-image-type processing
// rules the image pipeline resolves before touching any file.
package imageconfig

import (
	"portfolio_backend/pkg/apperrors"
)

// ImageType is the role an image plays for its resource.
type ImageType string

const (
	ImageTypeProfile   ImageType = "profile"
	ImageTypeGallery   ImageType = "gallery"
	ImageTypeComponent ImageType = "component"
)

// Fit selects the resize strategy relative to the target bounding box.
type Fit string

const (
	FitCover   Fit = "cover"   // fill the box, crop overflow
	FitContain Fit = "contain" // fit inside the box, keep aspect ratio
	FitInside  Fit = "inside"  // like contain; never upscales
	FitOutside Fit = "outside" // cover the box without cropping
	FitFill    Fit = "fill"    // stretch to the exact box
)

// Position anchors the crop when Fit is cover.
type Position string

const (
	PositionCenter Position = "center"
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
)

// OutputFormat is the encoding applied after resizing.
type OutputFormat string

const (
	FormatJPEG     OutputFormat = "jpeg"
	FormatPNG      OutputFormat = "png"
	FormatWebP     OutputFormat = "webp"
	FormatOriginal OutputFormat = "original"
)

// ProcessingConfig is immutable once resolved: the pipeline reads it,
// never writes it.
type ProcessingConfig struct {
	MaxWidth         int
	MaxHeight        int
	Fit              Fit
	Position         Position
	Quality          int // 1-100, lossy formats only
	Progressive      bool
	AllowedMimeTypes []string
	MaxFileSize      int64
	OutputFormat     OutputFormat
}

// AllowsMimeType reports whether the input MIME type is acceptable.
func (c ProcessingConfig) AllowsMimeType(mimeType string) bool {
	for _, allowed := range c.AllowedMimeTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}

// ResourceConfig maps each image role of one resource type to its rules.
type ResourceConfig map[ImageType]ProcessingConfig

// Registry resolves (resourceType, imageType) pairs to processing rules.
// It is constructed once and injected; not a package-level singleton.
type Registry struct {
	configs map[string]ResourceConfig
}

// NewRegistry returns a registry seeded with the built-in defaults for
// applications, technologies and users.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[string]ResourceConfig)}
	for resourceType, cfg := range defaultConfigs() {
		r.configs[resourceType] = cfg
	}
	return r
}

// Get resolves the rules for a (resourceType, imageType) pair. Every
// pair a call site uses must resolve, otherwise the operation fails.
func (r *Registry) Get(resourceType string, imageType ImageType) (ProcessingConfig, error) {
	resourceCfg, ok := r.configs[resourceType]
	if !ok {
		return ProcessingConfig{}, apperrors.ErrImageConfigMissing(resourceType, string(imageType))
	}
	cfg, ok := resourceCfg[imageType]
	if !ok {
		return ProcessingConfig{}, apperrors.ErrImageConfigMissing(resourceType, string(imageType))
	}
	return cfg, nil
}

// Register installs the config for a resource type, replacing any
// existing entry wholesale. Last write wins; there is no merging.
func (r *Registry) Register(resourceType string, cfg ResourceConfig) {
	r.configs[resourceType] = cfg
}

var rasterMimeTypes = []string{"image/jpeg", "image/png", "image/webp"}

func defaultConfigs() map[string]ResourceConfig {
	return map[string]ResourceConfig{
		"applications": {
			ImageTypeProfile: {
				MaxWidth:         800,
				MaxHeight:        600,
				Fit:              FitCover,
				Position:         PositionCenter,
				Quality:          85,
				Progressive:      true,
				AllowedMimeTypes: rasterMimeTypes,
				MaxFileSize:      5 * 1024 * 1024,
				OutputFormat:     FormatJPEG,
			},
			ImageTypeGallery: {
				MaxWidth:         1600,
				MaxHeight:        1200,
				Fit:              FitInside,
				Quality:          85,
				Progressive:      true,
				AllowedMimeTypes: rasterMimeTypes,
				MaxFileSize:      10 * 1024 * 1024,
				OutputFormat:     FormatWebP,
			},
		},
		"technologies": {
			ImageTypeProfile: {
				MaxWidth:         256,
				MaxHeight:        256,
				Fit:              FitContain,
				Quality:          90,
				AllowedMimeTypes: append([]string{"image/svg+xml"}, rasterMimeTypes...),
				MaxFileSize:      1 * 1024 * 1024,
				OutputFormat:     FormatPNG,
			},
			ImageTypeComponent: {
				MaxWidth:         512,
				MaxHeight:        512,
				Fit:              FitInside,
				Quality:          85,
				AllowedMimeTypes: append([]string{"image/svg+xml"}, rasterMimeTypes...),
				MaxFileSize:      2 * 1024 * 1024,
				OutputFormat:     FormatOriginal,
			},
		},
		"users": {
			ImageTypeProfile: {
				MaxWidth:         400,
				MaxHeight:        400,
				Fit:              FitCover,
				Position:         PositionCenter,
				Quality:          90,
				AllowedMimeTypes: rasterMimeTypes,
				MaxFileSize:      3 * 1024 * 1024,
				OutputFormat:     FormatJPEG,
			},
		},
	}
}
