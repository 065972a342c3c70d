package text

import (
	"image/color"
	"iter"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// FontFace is one outline font at all sizes: it combines the font
// resource with per-face tweaks, a character-to-glyph metrics cache,
// and a (glyph, pixel scale)-to-allocation raster cache.
//
// Both caches are append-only for the lifetime of the face. Entries
// are never evicted or invalidated here; clearing or resizing the
// backing atlas requires recreating the face externally.
//
// FontFace is not safe for concurrent use.
type FontFace struct {
	name  string
	font  OutlineFont
	tweak FontTweak

	upem float32

	infoCache  map[rune]GlyphInfo
	allocCache map[allocKey]GlyphAllocation

	coverage *unicode.RangeTable
}

// allocKey identifies one rasterization of a glyph. The pixel scale
// is part of the key so the same glyph at different zoom levels gets
// separate atlas regions.
type allocKey struct {
	info  GlyphInfo
	scale OrderedF32
}

// NewFontFace creates a face over font.
//
// Panics if the font reports a unit size outside the expected range;
// no meaningful scaled metrics exist in that case.
func NewFontFace(name string, font OutlineFont, tweak FontTweak) *FontFace {
	upem, ok := font.UnitsPerEm()
	if !ok {
		panic("text: font unit size outside the expected range (16..=16384)")
	}
	return &FontFace{
		name:       name,
		font:       font,
		tweak:      tweak,
		upem:       upem,
		infoCache:  make(map[rune]GlyphInfo),
		allocCache: make(map[allocKey]GlyphAllocation),
	}
}

// Name returns the face name.
func (f *FontFace) Name() string {
	return f.name
}

// ignoreCharacter reports whether c is forcibly unsupported for this
// face. The denylist is keyed off the built-in face names only; user
// fonts are never filtered.
func (f *FontFace) ignoreCharacter(c rune) bool {
	return builtinFaceName(f.name) && deniedChar(c)
}

// GlyphInfo resolves c to its glyph identity and unscaled advance.
//
// ok is false only for characters the face neither maps nor
// special-cases; the caller should substitute a replacement glyph.
// Every successful resolution is cached by character, so derived
// entries like tab are cached independently from the space character
// they are built from. '\n' resolves to false.
func (f *FontFace) GlyphInfo(c rune) (GlyphInfo, bool) {
	if info, ok := f.infoCache[c]; ok {
		return info, true
	}

	if f.ignoreCharacter(c) {
		return GlyphInfo{}, false // renders as the replacement character
	}

	if c == '\t' {
		if space, ok := f.GlyphInfo(' '); ok {
			info := space
			info.AdvanceUnscaled = Ordered(TabSize * space.AdvanceUnscaled.F32())
			f.infoCache[c] = info
			return info, true
		}
	}

	if c == ThinSpace {
		if space, ok := f.GlyphInfo(' '); ok {
			info := space
			info.AdvanceUnscaled = Ordered(min(f.upem/6, 0.5*space.AdvanceUnscaled.F32()))
			f.infoCache[c] = info
			return info, true
		}
	}

	if invisibleChar(c) {
		info := GlyphInfo{} // zero-width space
		f.infoCache[c] = info
		return info, true
	}

	id := f.font.GlyphID(c)
	if id == 0 {
		return GlyphInfo{}, false // unsupported character
	}
	info := GlyphInfo{
		ID:              id,
		AdvanceUnscaled: Ordered(f.font.AdvanceUnscaled(id)),
		Visible:         true,
	}
	f.infoCache[c] = info
	return info, true
}

// AllocateGlyph returns the atlas placement for info at the given
// font size and pixel density, rasterizing and packing the glyph on
// the first request.
//
// Invisible glyphs return the zero allocation without touching the
// atlas. A cached entry is returned unchanged on every later call
// with the same (glyph, scale) key. Panics if info has glyph id 0;
// the identity-resolution layer must filter those out.
func (f *FontFace) AllocateGlyph(info GlyphInfo, atlas Atlas, fontSize, pixelsPerPoint float32) GlyphAllocation {
	if !info.Visible {
		return GlyphAllocation{}
	}

	// Round to a whole number of physical pixels so kerning and
	// hinting stay visually stable across fractional zoom levels.
	scale := roundF32(fontSize * f.tweak.Scale * pixelsPerPoint)

	key := allocKey{info: info, scale: Ordered(scale)}
	if alloc, ok := f.allocCache[key]; ok {
		return alloc
	}

	if info.ID == 0 {
		panic("text: cannot rasterize glyph id 0")
	}

	yOffset := f.yOffsetPoints(scale, fontSize, pixelsPerPoint)

	var uv UvRect
	if glyph, ok := f.font.Outline(info.ID, scale); ok {
		bounds := glyph.Bounds()
		width, height := bounds.Dx(), bounds.Dy()
		if width > 0 && height > 0 {
			pos, img := atlas.Allocate(width, height)
			glyph.Draw(func(x, y int, coverage float32) {
				if coverage > 0 {
					// Untouched pixels keep whatever the atlas
					// uses for "unused".
					img.SetAlpha(pos.X+x, pos.Y+y, color.Alpha{A: atlas.AlphaFromCoverage(coverage)})
				}
			})
			uv = UvRect{
				Offset: Vec2{
					X: float32(bounds.Min.X) / pixelsPerPoint,
					Y: float32(bounds.Min.Y)/pixelsPerPoint + yOffset,
				},
				Size: Vec2{
					X: float32(width) / pixelsPerPoint,
					Y: float32(height) / pixelsPerPoint,
				},
				Min: [2]uint16{uint16(pos.X), uint16(pos.Y)},
				Max: [2]uint16{uint16(pos.X + width), uint16(pos.Y + height)},
			}
		}
	}

	alloc := GlyphAllocation{
		ID:      info.ID,
		Advance: info.AdvanceUnscaled.F32() * scale / f.upem / pixelsPerPoint,
		UvRect:  uv,
	}
	f.allocCache[key] = alloc
	return alloc
}

// yOffsetPoints derives the vertical placement offset for a glyph
// rasterized at the given pixel scale.
func (f *FontFace) yOffsetPoints(scale, fontSize, pixelsPerPoint float32) float32 {
	scaleInPoints := scale / pixelsPerPoint
	y := RoundUI(scaleInPoints*f.tweak.YOffsetFactor + f.tweak.YOffset)

	// Shrinking or growing a face via the tweak scale should keep
	// the glyph vertically centered, not anchored to one edge.
	height := RoundUI(f.font.AscentUnscaled()*fontSize/f.upem) +
		RoundUI(f.font.DescentUnscaled()*fontSize/f.upem)
	y -= (1 - f.tweak.Scale) * 0.5 * height

	// Snap to the nearest physical pixel for crisp edges.
	return roundF32(y*pixelsPerPoint) / pixelsPerPoint
}

// GlyphWidth returns info's advance in points at the given font size,
// without rounding to physical pixels and without touching the atlas.
// Safe to call during layout passes.
func (f *FontFace) GlyphWidth(info GlyphInfo, fontSize float32) float32 {
	return info.AdvanceUnscaled.F32() * fontSize / f.upem
}

// RowHeight is the height of one row of text in points, rounded to
// the UI rounding granularity.
func (f *FontFace) RowHeight(fontSize float32) float32 {
	s := fontSize / f.upem
	return RoundUI(f.font.AscentUnscaled()*s) -
		RoundUI(f.font.DescentUnscaled()*s) +
		RoundUI(f.font.LineGapUnscaled()*s)
}

// Ascent is the distance from the top to the baseline in points,
// rounded to the UI rounding granularity.
func (f *FontFace) Ascent(fontSize float32) float32 {
	return RoundUI(f.font.AscentUnscaled() * fontSize / f.upem)
}

// PairKerning returns the kerning between two glyphs in points.
//
// The lookup happens at the same rounded pixel scale AllocateGlyph
// rasterizes at, so kerning and glyph placement never disagree.
func (f *FontFace) PairKerning(a, b GlyphID, fontSize, pixelsPerPoint float32) float32 {
	scale := roundF32(fontSize * f.tweak.Scale * pixelsPerPoint)
	return f.font.Kern(a, b, scale) / pixelsPerPoint
}

// Characters iterates every character the face maps, in no particular
// order, excluding the denylisted code points.
func (f *FontFace) Characters() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, c := range f.font.Codepoints() {
			if f.ignoreCharacter(c) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Coverage returns the face's supported characters as a range table
// for fast membership tests. Built once and memoized.
func (f *FontFace) Coverage() *unicode.RangeTable {
	if f.coverage == nil {
		var runes []rune
		for c := range f.Characters() {
			runes = append(runes, c)
		}
		f.coverage = rangetable.New(runes...)
	}
	return f.coverage
}
