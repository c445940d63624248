package render

import (
	"regexp"
	"strconv"
	"strings"
)

// markerPattern matches [PHOTO:N] for positive N without leading zeros.
var markerPattern = regexp.MustCompile(`\[PHOTO:([1-9][0-9]*)\]`)

// Token is a span of paragraph text: either literal text or a photo marker.
type Token struct {
	// Text is the exact source text of the span, including the brackets for
	// markers.
	Text string

	// Number is the marker's digits, empty for literal text.
	Number string

	// Marker is the one-based photo number. It is 0 for literal text and for
	// markers whose number does not fit in an int.
	Marker int
}

// IsMarker reports whether the token is a photo marker.
func (t Token) IsMarker() bool {
	return t.Number != ""
}

// Split breaks text into literal spans and marker tokens in source order.
// Empty literal spans are omitted, so Reconstruct(Split(s)) == s.
func Split(text string) []Token {
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []Token{{Text: text}}
	}

	tokens := make([]Token, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			tokens = append(tokens, Token{Text: text[last:m[0]]})
		}
		digits := text[m[2]:m[3]]
		n, err := strconv.Atoi(digits)
		if err != nil {
			n = 0
		}
		tokens = append(tokens, Token{Text: text[m[0]:m[1]], Number: digits, Marker: n})
		last = m[1]
	}
	if last < len(text) {
		tokens = append(tokens, Token{Text: text[last:]})
	}
	return tokens
}

// Reconstruct concatenates token text.
func Reconstruct(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Markers returns the photo numbers referenced in text, in order. Numbers too
// large for an int are left out.
func Markers(text string) []int {
	var ns []int
	for _, t := range Split(text) {
		if t.Marker > 0 {
			ns = append(ns, t.Marker)
		}
	}
	return ns
}
