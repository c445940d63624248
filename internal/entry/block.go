package entry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// BlockType identifies the kind of a content block.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
)

var (
	// ErrUnknownBlock indicates a block whose type is not paragraph or image.
	ErrUnknownBlock = errors.New("unknown content block type")

	// ErrEmptyImageURL indicates an image block without a URL.
	ErrEmptyImageURL = errors.New("image block must have a url")
)

// Block is one unit of an entry's body. It is either a paragraph (Text) or
// an image (URL, Caption, Meta). Blocks are kept in display order.
type Block struct {
	Type    BlockType         `json:"type" yaml:"type"`
	Text    string            `json:"text,omitempty" yaml:"text,omitempty"`
	URL     string            `json:"url,omitempty" yaml:"url,omitempty"`
	Caption string            `json:"caption,omitempty" yaml:"caption,omitempty"`
	Meta    map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Paragraph returns a paragraph block.
func Paragraph(text string) Block {
	return Block{Type: BlockParagraph, Text: text}
}

// Image returns an image block.
func Image(url, caption string) Block {
	return Block{Type: BlockImage, URL: url, Caption: caption}
}

// Validate checks that the block is one of the two known kinds and carries
// the fields its kind needs.
func (b Block) Validate() error {
	switch b.Type {
	case BlockParagraph:
		return nil
	case BlockImage:
		if strings.TrimSpace(b.URL) == "" {
			return ErrEmptyImageURL
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBlock, b.Type)
	}
}

// ValidateContent checks every block and requires at least one block with
// something to show.
func ValidateContent(blocks []Block) error {
	hasContent := false
	for i, b := range blocks {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		if b.Type == BlockImage || strings.TrimSpace(b.Text) != "" {
			hasContent = true
		}
	}
	if !hasContent {
		return ErrEmptyContent
	}
	return nil
}

// imageLine matches ![caption](url). Brackets and backslashes in the caption
// are backslash-escaped; a url with spaces or parentheses is wrapped in <>.
var imageLine = regexp.MustCompile(`^!\[((?:[^\\\[\]]|\\.)*)\]\((?:<([^<>\n]+)>|([^<)\s][^)\s]*))\)$`)

var captionEscape = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

var captionUnescape = regexp.MustCompile(`\\(.)`)

func formatImage(b Block) string {
	url := b.URL
	if strings.ContainsAny(url, " \t()") {
		url = "<" + url + ">"
	}
	return fmt.Sprintf("![%s](%s)", captionEscape.Replace(b.Caption), url)
}

// ParseBlocks turns editor text into blocks. Paragraphs are separated by
// blank lines; a paragraph that is exactly one ![caption](url) line becomes
// an image block.
func ParseBlocks(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []Block
	var para []string

	flush := func() {
		if len(para) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(para, "\n"))
		para = para[:0]
		if joined == "" {
			return
		}
		if m := imageLine.FindStringSubmatch(joined); m != nil {
			url := m[2]
			if url == "" {
				url = m[3]
			}
			blocks = append(blocks, Image(url, captionUnescape.ReplaceAllString(m[1], "$1")))
			return
		}
		blocks = append(blocks, Paragraph(joined))
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		para = append(para, line)
	}
	flush()
	return blocks
}

// FormatBlocks is the inverse of ParseBlocks. Image meta is not part of the
// text form.
func FormatBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case BlockImage:
			parts = append(parts, formatImage(b))
		default:
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
