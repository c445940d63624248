package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/moodctl/internal/config"
)

func TestPagerViewPreservesContent(t *testing.T) {
	m := pagerModel{
		content: "This is the pager content",
		theme:   ResolveTheme(config.ThemeConfig{Preset: "default-dark"}),
	}

	if got := m.View(); got != "Loading..." {
		t.Errorf("expected loading view before sizing, got %q", got)
	}

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(pagerModel)

	stripped := stripANSI(m.View())
	if !strings.Contains(stripped, "pager content") {
		t.Error("expected pager content in output")
	}
	if !strings.Contains(stripped, "scroll") {
		t.Error("expected footer help text in output")
	}
}

func TestPagerCentersWithMaxWidth(t *testing.T) {
	m := pagerModel{
		content:  "centered",
		maxWidth: 60,
		theme:    ResolveTheme(config.ThemeConfig{Preset: "dracula"}),
	}
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	m = sized.(pagerModel)

	if m.viewport.Width != 60 {
		t.Errorf("viewport width = %d, want 60", m.viewport.Width)
	}
	first := strings.Split(stripANSI(m.View()), "\n")[0]
	if !strings.HasPrefix(first, strings.Repeat(" ", 20)+"centered") {
		t.Errorf("expected 20 columns of left padding, got %q", first)
	}
}

func TestPagerQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := pagerModel{content: "x"}
		var msg tea.KeyMsg
		if key == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("%s: expected quit command", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
	}
}

func TestOutputOrPageNonStdout(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputOrPage(&buf, "hello\n", 80, Theme{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("got %q", buf.String())
	}
}
