package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/disintegration/imaging"
)

type ImageProcessor struct {
	opts CompressionOptions
}

func NewImageProcessor(opts CompressionOptions) *ImageProcessor {
	return &ImageProcessor{opts: opts}
}

// FitUpload returns data unchanged when it is within the upload threshold.
// Larger images are decoded, scaled to fit MaxWidth x MaxHeight and re-encoded
// as JPEG; animated GIFs keep only their first frame. The returned name carries
// the matching extension.
func (p *ImageProcessor) FitUpload(data []byte, name string) ([]byte, string, *ImageInfo, error) {
	if int64(len(data)) <= p.opts.Threshold {
		return data, name, &ImageInfo{SizeBytes: int64(len(data))}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", nil, fmt.Errorf("decode image: %w", err)
	}

	img = p.fit(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.opts.Quality}); err != nil {
		return nil, "", nil, fmt.Errorf("encode image: %w", err)
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    format,
		SizeBytes: int64(buf.Len()),
	}
	return buf.Bytes(), withExt(name, ".jpg"), info, nil
}

func (p *ImageProcessor) fit(img image.Image) image.Image {
	bounds := img.Bounds()
	if (p.opts.MaxWidth <= 0 || bounds.Dx() <= p.opts.MaxWidth) &&
		(p.opts.MaxHeight <= 0 || bounds.Dy() <= p.opts.MaxHeight) {
		return img
	}

	maxW, maxH := p.opts.MaxWidth, p.opts.MaxHeight
	if maxW <= 0 {
		maxW = bounds.Dx()
	}
	if maxH <= 0 {
		maxH = bounds.Dy()
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

func withExt(name, ext string) string {
	if name == "" {
		return "image" + ext
	}
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}
