package opentype

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/Tristan117/egui/atlas"
	"github.com/Tristan117/egui/text"
)

// loadTestFont parses the embedded Go Regular font.
func loadTestFont(t *testing.T) *Font {
	t.Helper()

	font, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to parse test font: %v", err)
	}
	return font
}

func TestParse(t *testing.T) {
	font := loadTestFont(t)

	if font.Name() != "Go" {
		t.Errorf("Name = %q, want \"Go\"", font.Name())
	}
	upem, ok := font.UnitsPerEm()
	if !ok {
		t.Fatalf("upem %v reported out of range", upem)
	}
	if upem != 2048 {
		t.Errorf("upem = %v, want 2048", upem)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(nil); err != ErrEmptyFontData {
		t.Errorf("Parse(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := Parse([]byte("not a font")); err == nil {
		t.Error("Parse of garbage should fail")
	}
}

func TestGlyphID(t *testing.T) {
	font := loadTestFont(t)

	if font.GlyphID('A') == 0 {
		t.Error("'A' should map to a real glyph")
	}
	if font.GlyphID('a') == font.GlyphID('A') {
		t.Error("'a' and 'A' should map to different glyphs")
	}
	// Go Regular has no CJK coverage.
	if id := font.GlyphID('漢'); id != 0 {
		t.Errorf("unmapped rune should yield glyph 0, got %d", id)
	}
}

func TestAdvanceUnscaled(t *testing.T) {
	font := loadTestFont(t)

	advanceA := font.AdvanceUnscaled(font.GlyphID('A'))
	if advanceA <= 0 {
		t.Fatalf("advance of 'A' = %v, want > 0", advanceA)
	}
	upem, _ := font.UnitsPerEm()
	if advanceA > 2*upem {
		t.Errorf("advance of 'A' = %v, implausibly wide for upem %v", advanceA, upem)
	}

	advanceI := font.AdvanceUnscaled(font.GlyphID('i'))
	if advanceI >= advanceA {
		t.Errorf("'i' (%v) should be narrower than 'A' (%v)", advanceI, advanceA)
	}
}

func TestMetricsSigns(t *testing.T) {
	font := loadTestFont(t)

	if font.AscentUnscaled() <= 0 {
		t.Errorf("ascent = %v, want > 0", font.AscentUnscaled())
	}
	if font.DescentUnscaled() >= 0 {
		t.Errorf("descent = %v, want < 0 (below the baseline)", font.DescentUnscaled())
	}
	if font.LineGapUnscaled() < 0 {
		t.Errorf("line gap = %v, want >= 0", font.LineGapUnscaled())
	}
}

func TestOutline(t *testing.T) {
	font := loadTestFont(t)

	glyph, ok := font.Outline(font.GlyphID('A'), 64)
	if !ok {
		t.Fatal("'A' should have an outline")
	}

	bounds := glyph.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		t.Fatalf("bounds = %v, want a non-empty box", bounds)
	}
	// At 64px the glyph box must be in the right ballpark.
	if bounds.Dx() > 80 || bounds.Dy() > 80 {
		t.Errorf("bounds = %v, implausibly large for a 64px glyph", bounds)
	}
	// The cap sits on the baseline and extends upward.
	if bounds.Min.Y >= 0 {
		t.Errorf("bounds.Min.Y = %d, want above the baseline", bounds.Min.Y)
	}

	var covered int
	glyph.Draw(func(x, y int, coverage float32) {
		if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
			t.Errorf("coverage at (%d,%d) outside %dx%d", x, y, bounds.Dx(), bounds.Dy())
		}
		if coverage <= 0 || coverage > 1 {
			t.Errorf("coverage = %v, want (0, 1]", coverage)
		}
		covered++
	})
	if covered == 0 {
		t.Error("'A' rasterized to no pixels")
	}
}

func TestOutlineSpace(t *testing.T) {
	font := loadTestFont(t)

	if _, ok := font.Outline(font.GlyphID(' '), 64); ok {
		t.Error("the space glyph should have no outline")
	}
}

func TestKern(t *testing.T) {
	font := loadTestFont(t)

	// Go Regular carries kerning pairs; whether 'A','V' is one is up
	// to the font, so just require a sane magnitude at 32px.
	kern := font.Kern(font.GlyphID('A'), font.GlyphID('V'), 32)
	if kern < -32 || kern > 32 {
		t.Errorf("kern = %v, implausible at 32px", kern)
	}
}

func TestCodepoints(t *testing.T) {
	font := loadTestFont(t)

	seen := map[rune]text.GlyphID{}
	for id, r := range font.Codepoints() {
		if id == 0 {
			t.Fatalf("%U listed with glyph id 0", r)
		}
		seen[r] = id
	}

	for _, c := range []rune{'A', 'z', '0', ' '} {
		if _, ok := seen[c]; !ok {
			t.Errorf("%q missing from Codepoints()", c)
		}
	}
	if _, ok := seen['漢']; ok {
		t.Error("'漢' should not be listed")
	}
	if seen['A'] != font.GlyphID('A') {
		t.Error("Codepoints and GlyphID disagree about 'A'")
	}
}

// TestFontFaceIntegration runs a real font through the full metrics
// and rasterization pipeline.
func TestFontFaceIntegration(t *testing.T) {
	font := loadTestFont(t)
	face := text.NewFontFace("Go", font, text.DefaultFontTweak())
	packer := atlas.New(atlas.DefaultConfig())

	info, ok := face.GlyphInfo('A')
	if !ok {
		t.Fatal("'A' should resolve")
	}

	alloc := face.AllocateGlyph(info, packer, 16, 2)
	if alloc.UvRect.IsNothing() {
		t.Fatal("'A' should occupy atlas space")
	}
	if alloc.Advance <= 0 {
		t.Errorf("advance = %v, want > 0", alloc.Advance)
	}
	if packer.AllocCount() != 1 {
		t.Errorf("atlas allocations = %d, want 1", packer.AllocCount())
	}

	// Some rasterized pixel must be non-transparent.
	img := packer.Image()
	var lit bool
	for y := int(alloc.UvRect.Min[1]); y < int(alloc.UvRect.Max[1]); y++ {
		for x := int(alloc.UvRect.Min[0]); x < int(alloc.UvRect.Max[0]); x++ {
			if img.AlphaAt(x, y).A > 0 {
				lit = true
			}
		}
	}
	if !lit {
		t.Error("no pixels were written to the atlas")
	}

	// Tab is four spaces wide, derived through the real font.
	space, _ := face.GlyphInfo(' ')
	tab, ok := face.GlyphInfo('\t')
	if !ok {
		t.Fatal("tab should resolve")
	}
	want := text.TabSize * space.AdvanceUnscaled.F32()
	if got := tab.AdvanceUnscaled.F32(); got != want {
		t.Errorf("tab advance = %v, want %v", got, want)
	}

	if face.RowHeight(16) <= 0 {
		t.Error("row height should be positive")
	}
}
