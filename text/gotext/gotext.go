// Package gotext adapts fonts parsed with go-text/typesetting to the
// text.OutlineFont interface.
//
// The typesetting stack applies pair kerning during shaping rather
// than exposing a standalone kern lookup, so Kern always reports
// zero here; use the opentype backend when the caller does its own
// kerning.
package gotext

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"iter"
	"unicode"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	"github.com/Tristan117/egui/text"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("gotext: empty font data")

// Font wraps a typesetting face and implements text.OutlineFont.
//
// Font is not safe for concurrent use: the underlying font.Face keeps
// mutable glyph caches.
type Font struct {
	face *font.Face

	// Design metrics in font units.
	upem    float32
	ascent  float32
	descent float32 // negative below the baseline
	lineGap float32

	codepoints []codepoint
}

type codepoint struct {
	id text.GlyphID
	r  rune
}

// Parse parses font data (TTF or OTF).
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gotext: failed to parse font: %w", err)
	}

	f := &Font{
		face: face,
		upem: float32(face.Upem()),
	}
	if extents, ok := face.FontHExtents(); ok {
		f.ascent = extents.Ascender
		f.descent = extents.Descender
		f.lineGap = extents.LineGap
	} else {
		// Fall back to the em box when the font has no hhea/OS2
		// extents.
		f.ascent = f.upem
	}
	return f, nil
}

// UnitsPerEm implements text.OutlineFont.
func (f *Font) UnitsPerEm() (float32, bool) {
	return f.upem, 16 <= f.upem && f.upem <= 16384
}

// GlyphID implements text.OutlineFont. Returns 0 for unmapped runes.
func (f *Font) GlyphID(r rune) text.GlyphID {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return text.GlyphID(gid)
}

// AdvanceUnscaled implements text.OutlineFont.
func (f *Font) AdvanceUnscaled(id text.GlyphID) float32 {
	return f.face.HorizontalAdvance(font.GID(id))
}

// AscentUnscaled implements text.OutlineFont.
func (f *Font) AscentUnscaled() float32 { return f.ascent }

// DescentUnscaled implements text.OutlineFont.
func (f *Font) DescentUnscaled() float32 { return f.descent }

// LineGapUnscaled implements text.OutlineFont.
func (f *Font) LineGapUnscaled() float32 { return f.lineGap }

// Kern implements text.OutlineFont. Always zero; see the package
// comment.
func (f *Font) Kern(a, b text.GlyphID, scale float32) float32 {
	return 0
}

// Outline implements text.OutlineFont. ok is false for glyphs without
// outline data and for glyphs whose bounding box is empty at this
// scale.
func (f *Font) Outline(id text.GlyphID, scale float32) (text.RasterGlyph, bool) {
	outline, ok := f.face.GlyphData(font.GID(id)).(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return nil, false
	}

	// Typesetting outlines are in font units with Y growing up;
	// convert to pixels with Y growing down.
	factor := scale / f.upem
	transform := func(p font.SegmentPoint) (float32, float32) {
		return p.X * factor, -p.Y * factor
	}

	bounds := outlineBounds(outline.Segments, transform)
	if bounds.Empty() {
		return nil, false
	}

	width, height := bounds.Dx(), bounds.Dy()
	offsetX := -float32(bounds.Min.X)
	offsetY := -float32(bounds.Min.Y)

	ras := vector.NewRasterizer(width, height)
	ras.DrawOp = draw.Src
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			x, y := transform(seg.Args[0])
			ras.MoveTo(x+offsetX, y+offsetY)
		case ot.SegmentOpLineTo:
			x, y := transform(seg.Args[0])
			ras.LineTo(x+offsetX, y+offsetY)
		case ot.SegmentOpQuadTo:
			cx, cy := transform(seg.Args[0])
			x, y := transform(seg.Args[1])
			ras.QuadTo(cx+offsetX, cy+offsetY, x+offsetX, y+offsetY)
		case ot.SegmentOpCubeTo:
			c1x, c1y := transform(seg.Args[0])
			c2x, c2y := transform(seg.Args[1])
			x, y := transform(seg.Args[2])
			ras.CubeTo(c1x+offsetX, c1y+offsetY, c2x+offsetX, c2y+offsetY, x+offsetX, y+offsetY)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &coverageMask{bounds: bounds, mask: mask}, true
}

// Codepoints implements text.OutlineFont. The character map is probed
// once and cached.
func (f *Font) Codepoints() iter.Seq2[text.GlyphID, rune] {
	return func(yield func(text.GlyphID, rune) bool) {
		if f.codepoints == nil {
			f.scanCodepoints()
		}
		for _, cp := range f.codepoints {
			if !yield(cp.id, cp.r) {
				return
			}
		}
	}
}

func (f *Font) scanCodepoints() {
	f.codepoints = make([]codepoint, 0, 256)
	for r := rune(0); r <= unicode.MaxRune; r++ {
		if r == 0xD800 {
			r = 0xDFFF // skip the surrogate block
			continue
		}
		if gid, ok := f.face.NominalGlyph(r); ok && gid != 0 {
			f.codepoints = append(f.codepoints, codepoint{id: text.GlyphID(gid), r: r})
		}
	}
}

// coverageMask exposes a rasterized alpha mask as a text.RasterGlyph.
type coverageMask struct {
	bounds image.Rectangle
	mask   *image.Alpha
}

func (m *coverageMask) Bounds() image.Rectangle {
	return m.bounds
}

func (m *coverageMask) Draw(fn func(x, y int, coverage float32)) {
	width := m.bounds.Dx()
	for y := 0; y < m.bounds.Dy(); y++ {
		row := m.mask.Pix[y*m.mask.Stride : y*m.mask.Stride+width]
		for x, alpha := range row {
			if alpha > 0 {
				fn(x, y, float32(alpha)/255)
			}
		}
	}
}

// outlineBounds returns the integer pixel box covering all transformed
// segment points, control points included.
func outlineBounds(segments []font.Segment, transform func(font.SegmentPoint) (float32, float32)) image.Rectangle {
	minX, minY := float32(1e30), float32(1e30)
	maxX, maxY := float32(-1e30), float32(-1e30)

	update := func(p font.SegmentPoint) {
		x, y := transform(p)
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}

	for _, seg := range segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo, ot.SegmentOpLineTo:
			update(seg.Args[0])
		case ot.SegmentOpQuadTo:
			update(seg.Args[0])
			update(seg.Args[1])
		case ot.SegmentOpCubeTo:
			update(seg.Args[0])
			update(seg.Args[1])
			update(seg.Args[2])
		}
	}

	return image.Rect(floor(minX), floor(minY), ceil(maxX), ceil(maxY))
}

func floor(v float32) int {
	i := int(v)
	if float32(i) > v {
		i--
	}
	return i
}

func ceil(v float32) int {
	i := int(v)
	if float32(i) < v {
		i++
	}
	return i
}
