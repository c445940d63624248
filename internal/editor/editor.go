// Package editor opens entry content in the user's $EDITOR.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chris-regnier/moodctl/internal/entry"
)

// ErrEditor indicates the editor could not be run or its output read.
var ErrEditor = errors.New("editor error")

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Edit opens initialContent in editorCmd and returns what was saved.
// Saving an empty file or leaving the text unchanged reports changed=false;
// an empty file returns "".
func Edit(editorCmd string, initialContent string) (content string, changed bool, err error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return "", false, fmt.Errorf("%w: empty editor command", ErrEditor)
	}

	tmp, err := os.CreateTemp("", "moodctl-*.md")
	if err != nil {
		return "", false, fmt.Errorf("%w: creating temp file: %v", ErrEditor, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initialContent); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("%w: writing temp file: %v", ErrEditor, err)
	}
	tmp.Close()

	cmd := exec.Command(parts[0], append(parts[1:], tmpName)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("%w: editor exited: %v", ErrEditor, err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("%w: reading edited file: %v", ErrEditor, err)
	}

	result := string(data)
	if strings.TrimSpace(result) == "" {
		return "", false, nil
	}
	if strings.TrimSpace(result) == strings.TrimSpace(initialContent) {
		return initialContent, false, nil
	}
	return result, true, nil
}

// EditBlocks edits content in its text form and parses the result back.
// Image blocks that keep their URL keep their meta.
func EditBlocks(editorCmd string, content []entry.Block) ([]entry.Block, bool, error) {
	text, changed, err := Edit(editorCmd, entry.FormatBlocks(content))
	if err != nil || !changed {
		return content, false, err
	}
	blocks := entry.ParseBlocks(text)
	carryMeta(content, blocks)
	return blocks, true, nil
}

func carryMeta(from, to []entry.Block) {
	meta := make(map[string]map[string]string)
	for _, b := range from {
		if b.Type == entry.BlockImage && len(b.Meta) > 0 {
			if _, seen := meta[b.URL]; !seen {
				meta[b.URL] = b.Meta
			}
		}
	}
	for i := range to {
		if to[i].Type == entry.BlockImage {
			if m, ok := meta[to[i].URL]; ok {
				to[i].Meta = m
			}
		}
	}
}
