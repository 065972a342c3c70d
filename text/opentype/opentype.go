// Package opentype adapts TTF/OTF fonts parsed with
// golang.org/x/image/font/sfnt to the text.OutlineFont interface.
// Glyph outlines are rasterized with golang.org/x/image/vector.
package opentype

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"iter"
	"os"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Tristan117/egui/text"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = errors.New("opentype: empty font data")

// Font wraps a parsed sfnt font and implements text.OutlineFont.
//
// Font is not safe for concurrent use: the sfnt working buffer is
// shared across calls, matching the single-threaded model of the text
// package.
type Font struct {
	sfnt *sfnt.Font
	buf  sfnt.Buffer
	name string

	// Design metrics in font units, extracted once at parse time.
	upem    float32
	ascent  float32
	descent float32 // negative below the baseline
	lineGap float32

	// codepoints is the cached character map scan; nil until the
	// first Codepoints iteration.
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
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("opentype: failed to parse font: %w", err)
	}

	f := &Font{
		sfnt: parsed,
		upem: float32(parsed.UnitsPerEm()),
	}
	if name, err := parsed.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		f.name = name
	}

	// Metrics at ppem == upem are the design metrics in font units.
	if m, err := parsed.Metrics(&f.buf, fixed.I(int(f.upem)), font.HintingNone); err == nil {
		f.ascent = fromFixed(m.Ascent)
		f.descent = -fromFixed(m.Descent)
		f.lineGap = fromFixed(m.Height) - fromFixed(m.Ascent) - fromFixed(m.Descent)
	}
	return f, nil
}

// ParseFile loads and parses a font file.
func ParseFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opentype: failed to read font file: %w", err)
	}
	return Parse(data)
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string {
	return f.name
}

// UnitsPerEm implements text.OutlineFont.
func (f *Font) UnitsPerEm() (float32, bool) {
	return f.upem, 16 <= f.upem && f.upem <= 16384
}

// GlyphID implements text.OutlineFont. Returns 0 for unmapped runes.
func (f *Font) GlyphID(r rune) text.GlyphID {
	id, err := f.sfnt.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return text.GlyphID(id)
}

// AdvanceUnscaled implements text.OutlineFont.
func (f *Font) AdvanceUnscaled(id text.GlyphID) float32 {
	// At ppem == upem one pixel is one font unit.
	advance, err := f.sfnt.GlyphAdvance(&f.buf, sfnt.GlyphIndex(id), fixed.I(int(f.upem)), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(advance)
}

// AscentUnscaled implements text.OutlineFont.
func (f *Font) AscentUnscaled() float32 { return f.ascent }

// DescentUnscaled implements text.OutlineFont.
func (f *Font) DescentUnscaled() float32 { return f.descent }

// LineGapUnscaled implements text.OutlineFont.
func (f *Font) LineGapUnscaled() float32 { return f.lineGap }

// Kern implements text.OutlineFont.
func (f *Font) Kern(a, b text.GlyphID, scale float32) float32 {
	k, err := f.sfnt.Kern(&f.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), toFixed(scale), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(k)
}

// Outline implements text.OutlineFont. ok is false for glyphs without
// segments (e.g. space) and for glyphs whose bounding box is empty at
// this scale.
func (f *Font) Outline(id text.GlyphID, scale float32) (text.RasterGlyph, bool) {
	segments, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), toFixed(scale), nil)
	if err != nil || len(segments) == 0 {
		return nil, false
	}

	bounds := segmentBounds(segments)
	if bounds.Empty() {
		return nil, false
	}

	// Rasterize into a mask the size of the bounding box, with the
	// outline translated so the box's top-left lands on the origin.
	width, height := bounds.Dx(), bounds.Dy()
	offsetX := -float32(bounds.Min.X)
	offsetY := -float32(bounds.Min.Y)

	ras := vector.NewRasterizer(width, height)
	ras.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			ras.MoveTo(fromFixed(seg.Args[0].X)+offsetX, fromFixed(seg.Args[0].Y)+offsetY)
		case sfnt.SegmentOpLineTo:
			ras.LineTo(fromFixed(seg.Args[0].X)+offsetX, fromFixed(seg.Args[0].Y)+offsetY)
		case sfnt.SegmentOpQuadTo:
			ras.QuadTo(
				fromFixed(seg.Args[0].X)+offsetX, fromFixed(seg.Args[0].Y)+offsetY,
				fromFixed(seg.Args[1].X)+offsetX, fromFixed(seg.Args[1].Y)+offsetY,
			)
		case sfnt.SegmentOpCubeTo:
			ras.CubeTo(
				fromFixed(seg.Args[0].X)+offsetX, fromFixed(seg.Args[0].Y)+offsetY,
				fromFixed(seg.Args[1].X)+offsetX, fromFixed(seg.Args[1].Y)+offsetY,
				fromFixed(seg.Args[2].X)+offsetX, fromFixed(seg.Args[2].Y)+offsetY,
			)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &coverageMask{bounds: bounds, mask: mask}, true
}

// Codepoints implements text.OutlineFont.
//
// sfnt exposes no character-map iterator, so the scalar range is
// probed once and the result cached on the font.
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
		id, err := f.sfnt.GlyphIndex(&f.buf, r)
		if err == nil && id != 0 {
			f.codepoints = append(f.codepoints, codepoint{id: text.GlyphID(id), r: r})
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

// segmentBounds returns the integer pixel box covering all segment
// points, control points included.
func segmentBounds(segments []sfnt.Segment) image.Rectangle {
	minX, minY := fixed.Int26_6(1<<30), fixed.Int26_6(1<<30)
	maxX, maxY := fixed.Int26_6(-1<<30), fixed.Int26_6(-1<<30)

	update := func(p fixed.Point26_6) {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo, sfnt.SegmentOpLineTo:
			update(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			update(seg.Args[0])
			update(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			update(seg.Args[0])
			update(seg.Args[1])
			update(seg.Args[2])
		}
	}

	return image.Rect(minX.Floor(), minY.Floor(), maxX.Ceil(), maxY.Ceil())
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
