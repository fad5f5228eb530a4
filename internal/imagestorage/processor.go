package imagestorage

import (
	"bytes"
	"fmt"
	"image"

	// Register the decoders for the supported input formats with the
	// standard image package.
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"portfolio_backend/internal/imageconfig"
)

// processor turns raw upload bytes into resized, re-encoded bytes
// according to a resolved ProcessingConfig. SVG never reaches it.
type processor struct{}

// process decodes, resizes per the fit strategy and encodes per the
// output format. It returns the encoded bytes and the file extension
// they should be stored under.
func (processor) process(data []byte, cfg imageconfig.ProcessingConfig) ([]byte, string, error) {
	img, srcFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	resized := resizeForFit(img, cfg)

	format := cfg.OutputFormat
	if format == imageconfig.FormatOriginal {
		format, err = formatFromDecoded(srcFormat)
		if err != nil {
			return nil, "", err
		}
	}

	out, err := encode(resized, format, cfg.Quality)
	if err != nil {
		return nil, "", err
	}
	return out, extensionFor(format), nil
}

func resizeForFit(img image.Image, cfg imageconfig.ProcessingConfig) image.Image {
	w, h := cfg.MaxWidth, cfg.MaxHeight

	switch cfg.Fit {
	case imageconfig.FitCover:
		return imaging.Fill(img, w, h, anchorFor(cfg.Position), imaging.Lanczos)
	case imageconfig.FitFill:
		return imaging.Resize(img, w, h, imaging.Lanczos)
	case imageconfig.FitInside:
		// Fit only scales down, which is exactly the inside contract.
		return imaging.Fit(img, w, h, imaging.Lanczos)
	case imageconfig.FitOutside:
		return resizeOutside(img, w, h)
	case imageconfig.FitContain:
		return resizeContain(img, w, h)
	default:
		return imaging.Fit(img, w, h, imaging.Lanczos)
	}
}

// resizeContain scales to touch the box from inside, upscaling smaller
// inputs (unlike imaging.Fit, which never enlarges).
func resizeContain(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	scale := minFloat(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	return scaleBy(img, scale)
}

// resizeOutside scales the image so both dimensions cover the box,
// without cropping.
func resizeOutside(img image.Image, minW, minH int) image.Image {
	b := img.Bounds()
	scale := maxFloat(float64(minW)/float64(b.Dx()), float64(minH)/float64(b.Dy()))
	return scaleBy(img, scale)
}

func scaleBy(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

func encode(img image.Image, format imageconfig.OutputFormat, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	buf := new(bytes.Buffer)
	switch format {
	case imageconfig.FormatJPEG:
		// Progressive output is configured but the encoder emits
		// baseline only; the flag is recorded, not applied.
		if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case imageconfig.FormatPNG:
		if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case imageconfig.FormatWebP:
		if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return buf.Bytes(), nil
}

// formatFromDecoded maps the registered decoder name to an output
// format, for configs that keep the original encoding.
func formatFromDecoded(name string) (imageconfig.OutputFormat, error) {
	switch name {
	case "jpeg":
		return imageconfig.FormatJPEG, nil
	case "png":
		return imageconfig.FormatPNG, nil
	case "webp":
		return imageconfig.FormatWebP, nil
	default:
		return "", fmt.Errorf("unsupported source format for re-encoding: %s", name)
	}
}

func extensionFor(format imageconfig.OutputFormat) string {
	switch format {
	case imageconfig.FormatPNG:
		return ".png"
	case imageconfig.FormatWebP:
		return ".webp"
	default:
		return ".jpg"
	}
}

func anchorFor(pos imageconfig.Position) imaging.Anchor {
	switch pos {
	case imageconfig.PositionTop:
		return imaging.Top
	case imageconfig.PositionBottom:
		return imaging.Bottom
	case imageconfig.PositionLeft:
		return imaging.Left
	case imageconfig.PositionRight:
		return imaging.Right
	default:
		return imaging.Center
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
