package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artslide/internal/artwork"
)

// testImage builds a deterministic gradient source.
func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 7) % 256),
				G: uint8((y * 5) % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestMainImageScaleBound(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	tests := []struct {
		name         string
		srcW, srcH   int
		wantW, wantH int
	}{
		{"wide oversized", 4096, 1024, 2048, 512},
		{"tall oversized", 1000, 4096, 500, 2048},
		{"within bounds", 1000, 800, 1000, 800},
		{"exactly at bound", 2048, 100, 2048, 100},
		{"non-integer ratio", 3000, 2000, 2048, 1365}, // round(2000*2048/3000)
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res := p.ProcessImage(testImage(test.srcW, test.srcH), artwork.Metadata{})
			b := res.Main.Bounds()
			assert.Equal(t, test.wantW, b.Dx())
			assert.Equal(t, test.wantH, b.Dy())
			assert.LessOrEqual(t, max(b.Dx(), b.Dy()), 2048)
		})
	}
}

func TestBackdropDimensions(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	for _, dims := range [][2]int{{100, 100}, {1920, 1080}, {360, 640}, {5000, 100}} {
		res := p.ProcessImage(testImage(dims[0], dims[1]), artwork.Metadata{})
		b := res.Backdrop.Bounds()
		assert.Equal(t, 640, b.Dx(), "source %v", dims)
		assert.Equal(t, 360, b.Dy(), "source %v", dims)
	}
}

// A uniform image must stay exactly uniform through any number of blur
// passes: clamped edge handling never shifts colors at the borders.
func TestBoxBlurUniform(t *testing.T) {
	c := color.NRGBA{R: 90, G: 140, B: 40, A: 255}
	img := uniformImage(64, 48, c)
	for pass := 0; pass < 3; pass++ {
		img = boxBlur(img, 10)
	}
	for i := 0; i < len(img.Pix); i += 4 {
		require.Equal(t, c.R, img.Pix[i], "pixel %d R", i/4)
		require.Equal(t, c.G, img.Pix[i+1], "pixel %d G", i/4)
		require.Equal(t, c.B, img.Pix[i+2], "pixel %d B", i/4)
		require.Equal(t, c.A, img.Pix[i+3], "pixel %d A", i/4)
	}
}

func TestBoxBlurDoesNotMutateInput(t *testing.T) {
	img := testImage(32, 32)
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	_ = boxBlur(img, 10)
	assert.Equal(t, before, img.Pix)
}

func TestDarken(t *testing.T) {
	img := testImage(40, 25)
	orig := make([]uint8, len(img.Pix))
	copy(orig, img.Pix)

	darken(img, 0.6)
	for i := 0; i < len(img.Pix); i += 4 {
		for ch := 0; ch < 3; ch++ {
			want := uint8(float64(orig[i+ch]) * 0.6) // truncation, not rounding
			require.Equal(t, want, img.Pix[i+ch], "pixel %d channel %d", i/4, ch)
			require.LessOrEqual(t, img.Pix[i+ch], orig[i+ch])
		}
		require.Equal(t, orig[i+3], img.Pix[i+3], "alpha must be untouched")
	}
}

func TestBlurPreservesAlpha(t *testing.T) {
	img := testImage(20, 20)
	img.SetNRGBA(5, 5, color.NRGBA{R: 10, G: 10, B: 10, A: 42})

	out := boxBlur(img, 3)
	assert.Equal(t, uint8(42), out.Pix[out.PixOffset(5, 5)+3])
	assert.Equal(t, uint8(255), out.Pix[out.PixOffset(0, 0)+3])
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage(300, 200)))
	require.NoError(t, f.Close())

	p := NewProcessor(DefaultConfig())
	meta := artwork.Metadata{Title: "Ok", Artist: "Tester", Year: "2024"}
	res, err := p.Process(artwork.Info{Path: path, Meta: meta})
	require.NoError(t, err)
	assert.Equal(t, meta, res.Meta)
	assert.Equal(t, 300, res.Main.Bounds().Dx())
	assert.Equal(t, 200, res.Main.Bounds().Dy())
	assert.Equal(t, 640, res.Backdrop.Bounds().Dx())
	assert.Equal(t, 360, res.Backdrop.Bounds().Dy())
}

// A file that matches the extension filter but cannot be decoded must
// yield no result, never a panic or a partial one.
func TestProcessUndecodable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image at all"), 0644))

	p := NewProcessor(DefaultConfig())
	res, err := p.Process(artwork.Info{Path: path})
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestProcessImageDoesNotMutateSource(t *testing.T) {
	src := testImage(100, 80)
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	p := NewProcessor(DefaultConfig())
	_ = p.ProcessImage(src, artwork.Metadata{})
	assert.Equal(t, before, src.Pix)
}
