// Package text resolves Unicode characters to glyph shapes, caches
// their metrics, and rasterizes their bitmaps into a shared texture
// atlas for an immediate-mode UI painter.
//
// The core unit is FontFace: one scalable outline font combined with a
// character-to-glyph metrics cache and a glyph-to-atlas raster cache.
// Font composes an ordered list of fallback faces into one logical
// font with a cached replacement glyph.
//
// Everything here is single-threaded. Cache insertion and
// atlas allocation mutate their owners in place, so concurrent use
// requires external synchronization or per-thread face instances.
package text
