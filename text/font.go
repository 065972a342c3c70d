package text

// Font queries an ordered family of fallback faces as one logical
// font: the first face that maps a character wins, and characters no
// face maps resolve to the family's replacement glyph.
//
// Font owns nothing. It borrows the registry, the family record, and
// the atlas for the duration of each call, which is why it is a cheap
// value meant to be constructed on demand.
//
// Font is not safe for concurrent use.
type Font struct {
	registry *FontRegistry
	family   *Family
	atlas    Atlas
}

// NewFont assembles a facade over family, resolving faces through
// registry and rasterizing into atlas.
func NewFont(registry *FontRegistry, family *Family, atlas Atlas) Font {
	return Font{
		registry: registry,
		family:   family,
		atlas:    atlas,
	}
}

// GlyphInfo resolves c to the face that supports it and the glyph
// identity within that face, falling back through the family order.
//
// Characters no face maps resolve to the replacement glyph; '\n'
// intentionally shows up as the replacement character. The result is
// cached on the family record.
func (f Font) GlyphInfo(c rune) (FaceKey, GlyphInfo) {
	if g, ok := f.family.glyphCache[c]; ok {
		return g.Key, g.Info
	}

	g, ok := f.family.glyphNoCache(c, f.registry)
	if !ok {
		g = f.family.replacementGlyph(f.registry)
	}
	f.family.glyphCache[c] = g
	return g.Key, g.Info
}

// HasGlyph reports whether the family can display c.
//
// Known limitation: asking about the replacement character itself
// yields a false negative, since the sentinel comparison cannot tell
// "requested" from "fell back to".
func (f Font) HasGlyph(c rune) bool {
	key, info := f.GlyphInfo(c)
	return FaceGlyph{Key: key, Info: info} != f.family.replacementGlyph(f.registry)
}

// HasGlyphs reports whether the family can display every character in
// s.
func (f Font) HasGlyphs(s string) bool {
	for _, c := range s {
		if !f.HasGlyph(c) {
			return false
		}
	}
	return true
}

// GlyphWidth returns the advance of c in points at the given font
// size. Metrics only: never allocates atlas space, so it is safe
// during layout passes that must not mutate the atlas.
func (f Font) GlyphWidth(c rune, fontSize float32) float32 {
	key, info := f.GlyphInfo(c)
	return f.registry.Face(key).GlyphWidth(info, fontSize)
}

// FaceAndGlyph returns the face owning c's glyph together with the
// cached identity. The face is nil when the family has no faces at
// all.
func (f Font) FaceAndGlyph(c rune) (*FontFace, GlyphInfo) {
	if len(f.family.faces) == 0 {
		return nil, f.family.replacementGlyph(f.registry).Info
	}
	key, info := f.GlyphInfo(c)
	return f.registry.Face(key), info
}

// FaceAndAllocation returns the face owning c's glyph together with a
// fully rasterized atlas allocation. The face is nil and the
// allocation zero when the family has no faces at all.
func (f Font) FaceAndAllocation(c rune, fontSize, pixelsPerPoint float32) (*FontFace, GlyphAllocation) {
	if len(f.family.faces) == 0 {
		return nil, GlyphAllocation{}
	}
	key, info := f.GlyphInfo(c)
	face := f.registry.Face(key)
	return face, face.AllocateGlyph(info, f.atlas, fontSize, pixelsPerPoint)
}

// RowHeight is the height of one row of text in points, taken from
// the first face in the family, or zero for an empty family.
func (f Font) RowHeight(fontSize float32) float32 {
	if len(f.family.faces) == 0 {
		return 0
	}
	return f.registry.Face(f.family.faces[0]).RowHeight(fontSize)
}

// Ascent is the distance from the top to the baseline in points,
// taken from the first face in the family.
func (f Font) Ascent(fontSize float32) float32 {
	if len(f.family.faces) == 0 {
		return f.RowHeight(fontSize)
	}
	return f.registry.Face(f.family.faces[0]).Ascent(fontSize)
}

// Characters maps every character any face in the family supports to
// the names of the faces that support it, in family order. Built once
// per family and memoized until the family is invalidated.
//
// The caller must not mutate the returned map.
func (f Font) Characters() map[rune][]string {
	if f.family.characters == nil {
		characters := make(map[rune][]string)
		for _, key := range f.family.faces {
			face := f.registry.Face(key)
			for c := range face.Characters() {
				characters[c] = append(characters[c], face.Name())
			}
		}
		f.family.characters = characters
	}
	return f.family.characters
}

// PreloadCharacters eagerly resolves metrics for every character in
// s, avoiding cache-miss latency spikes mid-frame. Resolution only;
// nothing is rasterized.
func (f Font) PreloadCharacters(s string) {
	for _, c := range s {
		f.GlyphInfo(c)
	}
}

// PreloadCommonCharacters eagerly resolves the printable ASCII range
// plus a couple of characters common in UIs.
func (f Font) PreloadCommonCharacters() {
	// Printable ASCII [32, 126], excluding control codes.
	for c := rune(' '); c <= '~'; c++ {
		f.GlyphInfo(c)
	}
	f.GlyphInfo('°')
	f.GlyphInfo(PasswordReplacementChar)
}
