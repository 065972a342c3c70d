package text

import (
	"image"
	"iter"
)

// fakeGlyph is one mapped character in a fakeFont.
type fakeGlyph struct {
	id      GlyphID
	advance float32 // font units
}

// fakeFont is an in-memory OutlineFont with scripted metrics, so
// cache behavior can be asserted without parsing a real font file.
type fakeFont struct {
	upem    float32
	glyphs  map[rune]fakeGlyph
	ascent  float32
	descent float32
	lineGap float32
	kern    map[[2]GlyphID]float32

	// Call counters for cache assertions.
	glyphIDCalls  int
	outlineCalls  int
	lastKernScale float32
}

// newFakeFont returns a font with upem 1000, a 500-unit space, and a
// few letters.
func newFakeFont() *fakeFont {
	return &fakeFont{
		upem: 1000,
		glyphs: map[rune]fakeGlyph{
			' ': {id: 1, advance: 500},
			'a': {id: 2, advance: 600},
			'b': {id: 3, advance: 650},
			'?': {id: 4, advance: 550},
		},
		ascent:  800,
		descent: -200,
		lineGap: 100,
	}
}

func (f *fakeFont) UnitsPerEm() (float32, bool) {
	return f.upem, 16 <= f.upem && f.upem <= 16384
}

func (f *fakeFont) GlyphID(r rune) GlyphID {
	f.glyphIDCalls++
	return f.glyphs[r].id
}

func (f *fakeFont) AdvanceUnscaled(id GlyphID) float32 {
	for _, g := range f.glyphs {
		if g.id == id {
			return g.advance
		}
	}
	return 0
}

func (f *fakeFont) AscentUnscaled() float32  { return f.ascent }
func (f *fakeFont) DescentUnscaled() float32 { return f.descent }
func (f *fakeFont) LineGapUnscaled() float32 { return f.lineGap }

func (f *fakeFont) Kern(a, b GlyphID, scale float32) float32 {
	f.lastKernScale = scale
	return f.kern[[2]GlyphID{a, b}]
}

// Outline produces a fixed 4x6 box above the baseline for every
// glyph except the space, which has no outline.
func (f *fakeFont) Outline(id GlyphID, scale float32) (RasterGlyph, bool) {
	f.outlineCalls++
	if id == 1 {
		return nil, false
	}
	return fakeRaster{bounds: image.Rect(0, -6, 4, 0)}, true
}

func (f *fakeFont) Codepoints() iter.Seq2[GlyphID, rune] {
	return func(yield func(GlyphID, rune) bool) {
		for r, g := range f.glyphs {
			if !yield(g.id, r) {
				return
			}
		}
	}
}

type fakeRaster struct {
	bounds image.Rectangle
}

func (r fakeRaster) Bounds() image.Rectangle { return r.bounds }

func (r fakeRaster) Draw(fn func(x, y int, coverage float32)) {
	for y := 0; y < r.bounds.Dy(); y++ {
		for x := 0; x < r.bounds.Dx(); x++ {
			fn(x, y, 1)
		}
	}
}

// fakeAtlas hands out slots left to right on a single fixed-size
// image and counts allocations.
type fakeAtlas struct {
	img    *image.Alpha
	nextX  int
	allocs int
}

func newFakeAtlas() *fakeAtlas {
	return &fakeAtlas{img: image.NewAlpha(image.Rect(0, 0, 256, 64))}
}

func (a *fakeAtlas) Allocate(width, height int) (image.Point, *image.Alpha) {
	a.allocs++
	pos := image.Point{X: a.nextX}
	a.nextX += width + 1
	return pos, a.img
}

func (a *fakeAtlas) AlphaFromCoverage(coverage float32) uint8 {
	return uint8(coverage*255 + 0.5)
}

// newTestFace wraps a fakeFont in a face with the neutral tweak.
func newTestFace(font *fakeFont) *FontFace {
	return NewFontFace("Fake", font, DefaultFontTweak())
}
