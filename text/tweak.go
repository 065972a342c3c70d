package text

// FontTweak adjusts how a face is scaled and positioned relative to
// its design metrics. Useful when a fallback face renders too large,
// too small, or vertically misaligned next to the primary face.
type FontTweak struct {
	// Scale multiplies the font size.
	Scale float32

	// YOffsetFactor shifts glyphs vertically by this fraction of the
	// scaled font size. Positive is down.
	YOffsetFactor float32

	// YOffset shifts glyphs vertically by this many points, applied
	// after YOffsetFactor.
	YOffset float32
}

// DefaultFontTweak returns the neutral tweak.
func DefaultFontTweak() FontTweak {
	return FontTweak{Scale: 1}
}
