package formatter

import (
	"strings"
	"unicode"
)

// RuneWidth returns the display width of a rune.
// CJK characters take two columns, everything else one.
func RuneWidth(r rune) int {
	if r < 128 {
		return 1
	}

	if unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) {
		return 2
	}

	return 1
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += RuneWidth(r)
	}
	return width
}

// PadString right-pads a string with spaces to the specified display width
func PadString(s string, width int) string {
	currentWidth := StringWidth(s)
	if currentWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-currentWidth)
}
