package text

import "math"

// GlyphID is a face-local glyph handle.
//
// It does not need to be unique across faces. ID 0 is reserved for
// "no real glyph": such glyphs may carry metrics (e.g. tab) but must
// never reach rasterization.
type GlyphID uint16

// Vec2 is a 2D vector in points.
type Vec2 struct {
	X, Y float32
}

// UvRect locates a rasterized glyph in the shared atlas and describes
// how to place it on screen.
type UvRect struct {
	// Offset is the drawing offset in points applied to the glyph
	// quad, relative to the pen position on the baseline.
	Offset Vec2

	// Size is the on-screen size of the glyph in points.
	// Note that this differs from the font height.
	Size Vec2

	// Min is the inclusive top-left corner in atlas pixels.
	Min [2]uint16

	// Max is the exclusive bottom-right corner in atlas pixels.
	Max [2]uint16
}

// IsNothing reports whether the rect covers no pixels at all.
// This is the canonical state for invisible glyphs, glyphs with empty
// outlines (like the space character), and missing glyphs.
func (r UvRect) IsNothing() bool {
	return r.Min == r.Max
}

// GlyphInfo is the cached identity and unscaled metrics of one glyph.
//
// The zero value is a zero-width space: no glyph, no advance, not
// visible.
type GlyphInfo struct {
	// ID is the glyph handle, used for pair-kerning. 0 means the
	// glyph has no real shape.
	ID GlyphID

	// AdvanceUnscaled is the horizontal advance in font units.
	AdvanceUnscaled OrderedF32

	// Visible reports whether the glyph has any outline. Invisible
	// glyphs are never rasterized.
	Visible bool
}

// GlyphAllocation is a glyph rasterized for a specific font size and
// pixel density, with its final placement in the atlas.
//
// The zero value is the sentinel for invisible glyphs: id 0, zero
// advance, nothing-rect.
type GlyphAllocation struct {
	// ID is the glyph handle the allocation was made for.
	ID GlyphID

	// Advance is the horizontal advance in points, already scaled
	// for the font size and pixel density.
	Advance float32

	// UvRect locates the rasterized pixels in the atlas.
	UvRect UvRect
}

// roundF32 rounds to the nearest integer, half away from zero.
func roundF32(v float32) float32 {
	return float32(math.Round(float64(v)))
}

// UIRounding is the granularity UI metrics are rounded to, in points.
// A power-of-two fraction, so rounded values are float-exact.
const UIRounding = 1.0 / 32

// RoundUI rounds v to the nearest multiple of UIRounding.
func RoundUI(v float32) float32 {
	return float32(math.Round(float64(v)/UIRounding)) * UIRounding
}
