package text

import (
	"fmt"
	"slices"
)

// FaceKey identifies a FontFace within a FontRegistry.
type FaceKey uint32

// FaceGlyph pairs a resolved glyph with the key of the face that owns
// it.
type FaceGlyph struct {
	Key  FaceKey
	Info GlyphInfo
}

// FontRegistry owns every FontFace by stable key. Families and the
// Font facade reference faces only through keys, never directly, so
// one caller can mutate a face, its family record, and the atlas
// without aliased access.
//
// FontRegistry is not safe for concurrent use.
type FontRegistry struct {
	faces map[FaceKey]*FontFace
	next  FaceKey
}

// NewFontRegistry returns an empty registry.
func NewFontRegistry() *FontRegistry {
	return &FontRegistry{faces: make(map[FaceKey]*FontFace)}
}

// Add takes ownership of face and returns its key.
func (r *FontRegistry) Add(face *FontFace) FaceKey {
	key := r.next
	r.next++
	r.faces[key] = face
	return key
}

// Face returns the face for key.
//
// Panics on an unknown key: family records must only ever reference
// faces that exist in the registry they were built against.
func (r *FontRegistry) Face(key FaceKey) *FontFace {
	face, ok := r.faces[key]
	if !ok {
		panic(fmt.Sprintf("text: nonexistent face key %d", key))
	}
	return face
}

// Len returns the number of registered faces.
func (r *FontRegistry) Len() int {
	return len(r.faces)
}

// Family is the cached record for one ordered list of fallback faces.
//
// It captures fallback-resolution results specific to this face
// order, independently from the per-face caches: invalidating one
// never touches the other.
//
// Family is not safe for concurrent use.
type Family struct {
	faces []FaceKey

	replacement    FaceGlyph
	hasReplacement bool

	glyphCache map[rune]FaceGlyph

	// characters is built lazily by Font.Characters; nil until then.
	characters map[rune][]string
}

// NewFamily creates a family resolving characters through faces in
// order.
func NewFamily(faces ...FaceKey) *Family {
	return &Family{
		faces:      slices.Clone(faces),
		glyphCache: make(map[rune]FaceGlyph),
	}
}

// Faces returns the ordered face keys. The caller must not mutate the
// returned slice.
func (fam *Family) Faces() []FaceKey {
	return fam.faces
}

// Invalidate drops every lazily computed result. Call it whenever the
// face list or the registry contents backing this family change.
func (fam *Family) Invalidate() {
	fam.hasReplacement = false
	fam.replacement = FaceGlyph{}
	clear(fam.glyphCache)
	fam.characters = nil
}

// glyphNoCache resolves c through the fallback chain without reading
// or writing the family cache.
func (fam *Family) glyphNoCache(c rune, registry *FontRegistry) (FaceGlyph, bool) {
	for _, key := range fam.faces {
		if info, ok := registry.Face(key).GlyphInfo(c); ok {
			return FaceGlyph{Key: key, Info: info}, true
		}
	}
	return FaceGlyph{}, false
}

// replacementGlyph returns the family's replacement sentinel,
// computing and memoizing it on first use.
//
// An empty family resolves to the zero-width glyph. Panics when a
// non-empty family maps none of the replacement candidates.
func (fam *Family) replacementGlyph(registry *FontRegistry) FaceGlyph {
	if fam.hasReplacement {
		return fam.replacement
	}
	if len(fam.faces) == 0 {
		fam.hasReplacement = true
		return fam.replacement
	}
	for _, c := range replacementChars {
		if g, ok := fam.glyphNoCache(c, registry); ok {
			fam.replacement = g
			fam.hasReplacement = true
			return g
		}
	}
	panic("text: no face in the family maps a replacement character")
}
