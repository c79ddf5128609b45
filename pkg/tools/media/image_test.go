package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), uint8(x ^ y), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitUpload_SmallPassesThrough(t *testing.T) {
	data := pngBytes(t, 10, 10)
	p := NewImageProcessor(DefaultCompressionOptions())

	out, name, info, err := p.FitUpload(data, "meme.png")
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, "meme.png", name)
	assert.Equal(t, int64(len(data)), info.SizeBytes)
}

func TestFitUpload_LargeIsScaled(t *testing.T) {
	data := pngBytes(t, 400, 200)
	p := NewImageProcessor(CompressionOptions{
		Quality:   70,
		MaxWidth:  100,
		MaxHeight: 100,
		Threshold: 16,
	})

	out, name, info, err := p.FitUpload(data, "meme.gif")
	require.NoError(t, err)
	assert.Equal(t, "meme.jpg", name)
	assert.Equal(t, 100, info.Width)
	assert.Equal(t, 50, info.Height)
	assert.Equal(t, "png", info.Format)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
}

func TestFitUpload_Garbage(t *testing.T) {
	p := NewImageProcessor(CompressionOptions{Threshold: 1})
	_, _, _, err := p.FitUpload([]byte("definitely not an image"), "x.gif")
	assert.Error(t, err)
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "image.jpg", withExt("", ".jpg"))
	assert.Equal(t, "a.jpg", withExt("a.gif", ".jpg"))
	assert.Equal(t, "noext.jpg", withExt("noext", ".jpg"))
}
