package ocr

import "strings"

// confusableDigits maps glyphs the OCR engine commonly emits in place of a
// digit to the digit it most likely stands for. Screenshots of the attendance
// app render times in a small, low-contrast font, so these substitutions show
// up constantly in recognized text.
var confusableDigits = map[rune]rune{
	'O': '0',
	'o': '0',
	'Q': '0',
	'D': '0',
	'I': '1',
	'i': '1',
	'l': '1',
	'|': '1',
	'!': '1',
	'Z': '2',
	'z': '2',
	'S': '5',
	's': '5',
	'G': '6',
	'B': '8',
	'g': '9',
	'q': '9',
}

// NormalizeDigits replaces every confusable glyph in s with its canonical
// digit. Characters without a table entry pass through unchanged, so already
// correct digits are preserved.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if d, ok := confusableDigits[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitLikeClass is the regexp character class accepting a real digit or any
// glyph from the confusion table. Kept in sync with confusableDigits.
const digitLikeClass = `[0-9OoQDIil|!ZzSsGBgq]`
