// Package pipeline turns a source image into the two buffers the
// slideshow renders: a display-ready main image bounded to a maximum
// dimension, and a small blurred, darkened backdrop of the same image.
package pipeline

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"artslide/internal/artwork"
)

// Config carries the tunable constants of the pipeline. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	MaxDimension   int     // bound on the main image's larger side
	BackdropWidth  int     // backdrop canvas width
	BackdropHeight int     // backdrop canvas height
	BlurRadius     int     // box blur radius per 1-D pass
	BlurPasses     int     // full horizontal+vertical pass pairs
	DarkenFactor   float64 // multiplier applied to R, G, B after blurring
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxDimension:   2048,
		BackdropWidth:  640,
		BackdropHeight: 360,
		BlurRadius:     10,
		BlurPasses:     3,
		DarkenFactor:   0.6,
	}
}

// Result is the processed form of one artwork. Both buffers are
// independent pixel grids; neither aliases the decoded source.
type Result struct {
	Main     image.Image
	Backdrop image.Image
	Meta     artwork.Metadata
}

// Processor runs the pipeline with a fixed configuration.
type Processor struct {
	cfg Config
}

// NewProcessor creates a Processor with the given configuration.
func NewProcessor(cfg Config) *Processor {
	return &Processor{cfg: cfg}
}

// Process decodes the artwork's file and produces its Result. A file
// that cannot be decoded yields an error and no result; the caller must
// treat that as "skip, do not advance state".
func (p *Processor) Process(info artwork.Info) (*Result, error) {
	src, err := imaging.Open(info.Path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", info.Path, err)
	}
	return p.ProcessImage(src, info.Meta), nil
}

// ProcessImage runs the pipeline on an already decoded source. The
// source is never mutated.
func (p *Processor) ProcessImage(src image.Image, meta artwork.Metadata) *Result {
	return &Result{
		Main:     p.mainImage(src),
		Backdrop: p.backdrop(src),
		Meta:     meta,
	}
}

// mainImage scales the source down so its larger side fits
// MaxDimension. Sources already within bounds are copied unchanged.
func (p *Processor) mainImage(src image.Image) image.Image {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= p.cfg.MaxDimension {
		return imaging.Clone(src)
	}
	scale := float64(p.cfg.MaxDimension) / float64(longest)
	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))
	return imaging.Resize(src, newW, newH, imaging.Lanczos)
}

// backdrop crops-to-fill the source onto the backdrop canvas, blurs it
// with the iterated separable box blur and darkens the result.
func (p *Processor) backdrop(src image.Image) image.Image {
	small := imaging.Fill(src, p.cfg.BackdropWidth, p.cfg.BackdropHeight, imaging.Center, imaging.Lanczos)
	for i := 0; i < p.cfg.BlurPasses; i++ {
		small = boxBlur(small, p.cfg.BlurRadius)
	}
	darken(small, p.cfg.DarkenFactor)
	return small
}
