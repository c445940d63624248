package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/chris-regnier/moodctl/internal/render"
)

// rendererCache holds one glamour renderer keyed by width and style.
var rendererCache struct {
	sync.Mutex
	r     *glamour.TermRenderer
	width int
	style string
}

func markdownRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}

	if rendererCache.r != nil && rendererCache.width == width && rendererCache.style == style {
		return rendererCache.r, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.r, rendererCache.width, rendererCache.style = r, width, style
	return r, nil
}

// RenderMarkdownWithStyle renders markdown content using the specified glamour style.
// Returns the original content if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}

	rendererCache.Lock()
	defer rendererCache.Unlock()

	r, err := markdownRenderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// SegmentsToMarkdown turns rendered segments into markdown. Photos become
// image links with their caption in italics underneath; placeholders become
// an italic bracketed label.
func SegmentsToMarkdown(segments []render.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		switch s.Kind {
		case render.SegmentText:
			b.WriteString(s.Value)
		case render.SegmentPhoto:
			fmt.Fprintf(&b, "![%s](%s)", s.AltLabel, s.StoragePath)
			if s.Caption != "" {
				fmt.Fprintf(&b, " *%s*", s.Caption)
			}
		case render.SegmentPlaceholder:
			fmt.Fprintf(&b, "*[%s]*", s.Label)
		}
	}
	return b.String()
}
