// Package render resolves an entry's content blocks and photo markers into
// an ordered sequence of displayable segments.
//
// Render is a pure function of its inputs; it is safe for concurrent use and
// identical inputs always produce structurally equal output.
package render

import (
	"fmt"

	"github.com/chris-regnier/moodctl/internal/entry"
)

// SegmentKind identifies the kind of a rendered segment.
type SegmentKind string

const (
	SegmentText        SegmentKind = "text"
	SegmentPhoto       SegmentKind = "photo"
	SegmentPlaceholder SegmentKind = "placeholder"
)

// Segment is one displayable piece of an entry.
type Segment struct {
	Kind SegmentKind `json:"kind"`

	// Value is set for text segments.
	Value string `json:"value,omitempty"`

	// StoragePath, Caption and AltLabel are set for photo segments.
	StoragePath string `json:"storage_path,omitempty"`
	Caption     string `json:"caption,omitempty"`
	AltLabel    string `json:"alt_label,omitempty"`

	// Label is set for placeholder segments.
	Label string `json:"label,omitempty"`
}

// Text returns a text segment.
func Text(value string) Segment {
	return Segment{Kind: SegmentText, Value: value}
}

// Photo returns a resolved photo segment.
func Photo(storagePath, caption, altLabel string) Segment {
	return Segment{Kind: SegmentPhoto, StoragePath: storagePath, Caption: caption, AltLabel: altLabel}
}

// Placeholder returns a segment for a marker whose photo is missing.
func Placeholder(label string) Segment {
	return Segment{Kind: SegmentPlaceholder, Label: label}
}

// imageFallbackLabel is the alt label for image blocks without a caption.
const imageFallbackLabel = "Image"

// PhotoLabel is the fallback label for the photo referenced by [PHOTO:n].
func PhotoLabel(n int) string {
	return fmt.Sprintf("Photo %d", n)
}

// Render resolves content against photos. Nil content yields no segments.
// Markers only resolve against the given photos, which the caller must
// limit to the entry being rendered.
func Render(content []entry.Block, photos []entry.Photo) []Segment {
	if len(content) == 0 {
		return nil
	}

	byPosition := make(map[int]entry.Photo, len(photos))
	for _, p := range photos {
		// First photo wins if positions collide.
		if _, ok := byPosition[p.PositionIndex]; !ok {
			byPosition[p.PositionIndex] = p
		}
	}

	var segments []Segment
	for _, b := range content {
		switch b.Type {
		case entry.BlockParagraph:
			segments = appendParagraph(segments, b.Text, byPosition)
		case entry.BlockImage:
			alt := b.Caption
			if alt == "" {
				alt = imageFallbackLabel
			}
			segments = append(segments, Photo(b.URL, b.Caption, alt))
		}
	}
	return segments
}

func appendParagraph(segments []Segment, text string, byPosition map[int]entry.Photo) []Segment {
	for _, tok := range Split(text) {
		if !tok.IsMarker() {
			if tok.Text != "" {
				segments = append(segments, Text(tok.Text))
			}
			continue
		}
		if tok.Marker == 0 {
			segments = append(segments, Placeholder("Photo "+tok.Number))
			continue
		}
		label := PhotoLabel(tok.Marker)
		p, ok := byPosition[tok.Marker-1]
		if !ok {
			segments = append(segments, Placeholder(label))
			continue
		}
		alt := p.Caption
		if alt == "" {
			alt = label
		}
		segments = append(segments, Photo(p.StoragePath, p.Caption, alt))
	}
	return segments
}

// PlainText flattens segments back to readable text. Photos become their alt
// label in brackets and placeholders their label.
func PlainText(segments []Segment) string {
	var out []byte
	for _, s := range segments {
		switch s.Kind {
		case SegmentText:
			out = append(out, s.Value...)
		case SegmentPhoto:
			out = append(out, "["+s.AltLabel+"]"...)
		case SegmentPlaceholder:
			out = append(out, "["+s.Label+"]"...)
		}
	}
	return string(out)
}
