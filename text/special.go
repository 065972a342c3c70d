package text

// TabSize is the tab-stop width as a multiple of the space advance.
const TabSize = 4

// ThinSpace (U+2009) is often used as a thousands delimiter:
// 1 234 567 890.
const ThinSpace = ' '

// PasswordReplacementChar masks characters in password fields.
const PasswordReplacementChar = '•'

// replacementChars are tried in order when a character is not mapped
// by any face in a family.
var replacementChars = [...]rune{'◆', '?'}

// builtinFaceName reports whether name is one of the fonts that ship
// with the library. The character denylist only applies to these.
func builtinFaceName(name string) bool {
	switch name {
	case "Hack", "Ubuntu-Light", "NotoEmoji-Regular", "emoji-icon-font":
		return true
	}
	return false
}

// deniedChar lists code points that are always replaced by the
// replacement character in the built-in fonts.
//
// See also invisibleChar.
func deniedChar(c rune) bool {
	switch c {
	// A religious symbol with a secondary nefarious interpretation:
	case '卍', '卐':
		return true
	// Private-use glyphs specific to Ubuntu-Light.ttf:
	case '', '', '', '':
		return true
	}
	return false
}

// invisibleChar lists code points that always render as zero width.
//
// See also deniedChar.
func invisibleChar(c rune) bool {
	if c == '\r' {
		// A character most vile and pernicious. Don't display it.
		return true
	}

	// Unicode Cf format controls.
	switch c {
	case '​', // ZERO WIDTH SPACE
		'‌', // ZERO WIDTH NON-JOINER
		'‍', // ZERO WIDTH JOINER
		'‎', // LEFT-TO-RIGHT MARK
		'‏', // RIGHT-TO-LEFT MARK
		'‪', // LEFT-TO-RIGHT EMBEDDING
		'‫', // RIGHT-TO-LEFT EMBEDDING
		'‬', // POP DIRECTIONAL FORMATTING
		'‭', // LEFT-TO-RIGHT OVERRIDE
		'‮', // RIGHT-TO-LEFT OVERRIDE
		'⁠', // WORD JOINER
		'⁡', // FUNCTION APPLICATION
		'⁢', // INVISIBLE TIMES
		'⁣', // INVISIBLE SEPARATOR
		'⁤', // INVISIBLE PLUS
		'⁦', // LEFT-TO-RIGHT ISOLATE
		'⁧', // RIGHT-TO-LEFT ISOLATE
		'⁨', // FIRST STRONG ISOLATE
		'⁩', // POP DIRECTIONAL ISOLATE
		'⁪', // INHIBIT SYMMETRIC SWAPPING
		'⁫', // ACTIVATE SYMMETRIC SWAPPING
		'⁬', // INHIBIT ARABIC FORM SHAPING
		'⁭', // ACTIVATE ARABIC FORM SHAPING
		'⁮', // NATIONAL DIGIT SHAPES
		'⁯', // NOMINAL DIGIT SHAPES
		'\uFEFF': // ZERO WIDTH NO-BREAK SPACE
		return true
	}
	return false
}
