// Package atlas implements the shared alpha-8 texture that rasterized
// glyphs are packed into.
//
// Regions are placed with a shelf-packing algorithm: the atlas is
// divided into horizontal shelves, each new rectangle goes on the
// first shelf it fits, and a new shelf is opened below when none do.
// The backing image grows vertically on demand up to a configured
// maximum; running out of space is fatal, since callers cache atlas
// positions and cannot recover from a re-pack.
package atlas

import (
	"fmt"
	"image"
	"math"
)

// Default atlas settings.
const (
	// DefaultWidth is the default atlas width in pixels.
	DefaultWidth = 1024

	// DefaultMaxHeight is the default growth limit in pixels.
	DefaultMaxHeight = 8192

	// DefaultPadding is the spacing between packed regions in pixels.
	// One blank pixel avoids bleeding between glyphs when the texture
	// is sampled with interpolation.
	DefaultPadding = 1

	// DefaultGamma is the default coverage-to-alpha gamma.
	DefaultGamma = 0.55

	// initialHeight is the height the backing image starts at.
	initialHeight = 64

	// maxDimension keeps positions representable in 16-bit UV
	// coordinates.
	maxDimension = 1 << 14
)

// Config holds configuration for an Atlas.
type Config struct {
	// Width is the fixed atlas width in pixels.
	// Default: DefaultWidth.
	Width int

	// MaxHeight is how far the atlas may grow vertically.
	// Default: DefaultMaxHeight.
	MaxHeight int

	// Padding is the spacing between regions in pixels.
	// Default: DefaultPadding.
	Padding int

	// Gamma is applied when converting outline coverage to stored
	// alpha. Default: DefaultGamma.
	Gamma float32
}

// DefaultConfig returns the default atlas configuration.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		MaxHeight: DefaultMaxHeight,
		Padding:   DefaultPadding,
		Gamma:     DefaultGamma,
	}
}

// shelf is one horizontal row of packed regions.
type shelf struct {
	y      int // top edge
	height int // row height, fixed by the first region placed
	nextX  int // next free x position
}

// Atlas packs rectangular glyph regions into one alpha-8 image.
//
// Atlas is a singly-owned mutable resource with no internal locking:
// callers must serialize access, matching the exclusive-borrow model
// of the text package.
type Atlas struct {
	image *image.Alpha

	width     int
	maxHeight int
	padding   int
	gamma     float32

	shelves []shelf

	allocCount int
	usedArea   int
}

// New creates an atlas with the given configuration. Unset fields
// fall back to their defaults; a zero Padding is kept, so regions can
// be packed edge to edge.
func New(config Config) *Atlas {
	if config.Width <= 0 {
		config.Width = DefaultWidth
	}
	if config.Width > maxDimension {
		config.Width = maxDimension
	}
	if config.MaxHeight <= 0 {
		config.MaxHeight = DefaultMaxHeight
	}
	if config.MaxHeight > maxDimension {
		config.MaxHeight = maxDimension
	}
	if config.Padding < 0 {
		config.Padding = DefaultPadding
	}
	if config.Gamma <= 0 {
		config.Gamma = DefaultGamma
	}

	height := min(initialHeight, config.MaxHeight)
	return &Atlas{
		image:     image.NewAlpha(image.Rect(0, 0, config.Width, height)),
		width:     config.Width,
		maxHeight: config.MaxHeight,
		padding:   config.Padding,
		gamma:     config.Gamma,
	}
}

// Allocate reserves a width x height region and returns its top-left
// position together with the atlas image to write into. The image is
// only valid until the next Allocate call, which may grow and replace
// it.
//
// Panics when the region cannot ever fit: the text pipeline caches
// every returned position, so exhaustion is not recoverable here.
func (a *Atlas) Allocate(width, height int) (image.Point, *image.Alpha) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("atlas: invalid allocation %dx%d", width, height))
	}

	paddedWidth := width + a.padding
	paddedHeight := height + a.padding
	if paddedWidth > a.width {
		panic(fmt.Sprintf("atlas: glyph of width %d exceeds atlas width %d", width, a.width))
	}

	// Existing shelf with enough horizontal room and a tall enough
	// row wins.
	for i := range a.shelves {
		s := &a.shelves[i]
		if paddedHeight <= s.height && s.nextX+paddedWidth <= a.width {
			pos := image.Pt(s.nextX, s.y)
			s.nextX += paddedWidth
			a.finishAllocation(width, height)
			return pos, a.image
		}
	}

	// Open a new shelf below the last one.
	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height
	}
	if y+paddedHeight > a.maxHeight {
		panic(fmt.Sprintf("atlas: out of space (%dx%d is full)", a.width, a.maxHeight))
	}
	a.growTo(y + paddedHeight)

	a.shelves = append(a.shelves, shelf{y: y, height: paddedHeight, nextX: paddedWidth})
	a.finishAllocation(width, height)
	return image.Pt(0, y), a.image
}

// growTo makes sure the backing image is at least height pixels tall,
// preserving already rasterized rows.
func (a *Atlas) growTo(height int) {
	current := a.image.Rect.Dy()
	if height <= current {
		return
	}
	newHeight := min(max(height, current*2), a.maxHeight)

	grown := image.NewAlpha(image.Rect(0, 0, a.width, newHeight))
	copy(grown.Pix, a.image.Pix)
	a.image = grown
}

func (a *Atlas) finishAllocation(width, height int) {
	a.allocCount++
	a.usedArea += width * height
}

// AlphaFromCoverage converts an outline coverage value in [0, 1] to
// the stored alpha, applying the configured gamma.
func (a *Atlas) AlphaFromCoverage(coverage float32) uint8 {
	if coverage <= 0 {
		return 0
	}
	if coverage >= 1 {
		return 255
	}
	return uint8(math.Round(255 * math.Pow(float64(coverage), float64(a.gamma))))
}

// Image returns the current backing image. It is replaced when the
// atlas grows, so do not retain it across Allocate calls.
func (a *Atlas) Image() *image.Alpha {
	return a.image
}

// Size returns the atlas width and its current (grown) height in
// pixels.
func (a *Atlas) Size() (width, height int) {
	return a.width, a.image.Rect.Dy()
}

// AllocCount returns the number of allocated regions.
func (a *Atlas) AllocCount() int {
	return a.allocCount
}

// Utilization returns the fraction of the current image area covered
// by allocated regions, in [0, 1].
func (a *Atlas) Utilization() float64 {
	_, height := a.Size()
	total := a.width * height
	if total == 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}
