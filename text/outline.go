package text

import (
	"image"
	"iter"
)

// OutlineFont is one scalable outline font resource.
//
// Implementations live in the backend subpackages (opentype, gotext).
// All "unscaled" values are in font units; callers scale them through
// UnitsPerEm. Implementations need not be safe for concurrent use.
type OutlineFont interface {
	// UnitsPerEm returns the size of the font's design grid.
	// ok is false when the reported value is outside the sane
	// 16..16384 range; faces treat that as fatal.
	UnitsPerEm() (upem float32, ok bool)

	// GlyphID returns the glyph mapped to r, or 0 if the font does
	// not support the character.
	GlyphID(r rune) GlyphID

	// AdvanceUnscaled returns the horizontal advance of id in font
	// units.
	AdvanceUnscaled(id GlyphID) float32

	// AscentUnscaled is the distance from the baseline to the top of
	// the font, in font units. Positive.
	AscentUnscaled() float32

	// DescentUnscaled is the distance from the baseline to the
	// bottom of the font, in font units. Negative below the baseline.
	DescentUnscaled() float32

	// LineGapUnscaled is the recommended extra gap between rows, in
	// font units.
	LineGapUnscaled() float32

	// Outline rasterizes id at the given pixel scale (pixels per em).
	// ok is false when the glyph has no outline, e.g. for the space
	// character.
	Outline(id GlyphID, scale float32) (glyph RasterGlyph, ok bool)

	// Kern returns the pair-kerning adjustment between a and b in
	// pixels at the given pixel scale.
	Kern(a, b GlyphID, scale float32) float32

	// Codepoints iterates the font's full character map as
	// (glyph, rune) pairs, in no particular order.
	Codepoints() iter.Seq2[GlyphID, rune]
}

// RasterGlyph is a glyph outlined at a specific pixel scale, ready to
// be painted into an atlas.
type RasterGlyph interface {
	// Bounds is the pixel bounding box of the outline: Min inclusive,
	// Max exclusive, relative to the pen position on the baseline.
	Bounds() image.Rectangle

	// Draw invokes fn for every pixel with nonzero coverage. x and y
	// are relative to Bounds().Min; coverage is in (0, 1].
	Draw(fn func(x, y int, coverage float32))
}

// Atlas is the shared texture that rasterized glyphs are packed into.
//
// The atlas is a singly-owned mutable resource: a face borrows it for
// the duration of one allocation call, and no two allocations may run
// concurrently against the same atlas.
type Atlas interface {
	// Allocate reserves a width x height pixel region and returns its
	// top-left position together with the atlas image to write into.
	// The returned image is only valid until the next Allocate call.
	Allocate(width, height int) (image.Point, *image.Alpha)

	// AlphaFromCoverage converts an outline coverage value in [0, 1]
	// to the alpha value stored in the atlas.
	AlphaFromCoverage(coverage float32) uint8
}
