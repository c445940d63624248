package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/moodctl/internal/calendar"
	"github.com/chris-regnier/moodctl/internal/datemath"
	"github.com/chris-regnier/moodctl/internal/entry"
	"github.com/chris-regnier/moodctl/internal/storage"
)

// browserScreen represents the current screen state.
type browserScreen int

const (
	screenMonth browserScreen = iota
	screenDay
	screenEntry
)

// StorageProvider abstracts storage operations for the TUI.
type StorageProvider interface {
	List(opts storage.ListOptions) ([]entry.Entry, error)
	ListPhotos(entryID string) ([]entry.Photo, error)
	Delete(id string) error
}

// TUIConfig holds settings for the calendar browser.
type TUIConfig struct {
	MaxWidth  int // maximum viewport width (0 = no limit)
	MaxPerDay int
	WeekStart time.Weekday
	Theme     Theme
	Now       func() time.Time
}

func (c TUIConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// entryItem implements list.Item for entry.Entry.
type entryItem struct {
	entry entry.Entry
}

func (e entryItem) Title() string {
	return fmt.Sprintf("%s  %s", e.entry.Mood, e.entry.Preview(60))
}

func (e entryItem) Description() string {
	return fmt.Sprintf("%s  %s", e.entry.ID, e.entry.CreatedAt.Local().Format("15:04"))
}

func (e entryItem) FilterValue() string { return e.entry.PlainText() }

type deleteCompleteMsg struct {
	err error
}

// browserModel is the Bubble Tea model for the month calendar browser.
type browserModel struct {
	store  StorageProvider
	cfg    TUIConfig
	screen browserScreen

	month, year int
	cells       []calendar.Cell
	cursor      int // selected day of month

	dayList  list.Model
	viewport viewport.Model
	entry    entry.Entry

	deleteActive bool

	width  int
	height int
	ready  bool
	err    error
}

func newBrowserModel(store StorageProvider, cfg TUIConfig, month, year int) browserModel {
	now := cfg.now()
	cursor := 1
	if now.Year() == year && int(now.Month()) == month {
		cursor = now.Day()
	}
	return browserModel{
		store:  store,
		cfg:    cfg,
		screen: screenMonth,
		month:  month,
		year:   year,
		cursor: cursor,
	}
}

// loadMonth fetches the current month and clamps the cursor into it.
func (m browserModel) loadMonth() (tea.Model, tea.Cmd) {
	cells, err := calendar.LoadMonth(m.store, m.month, m.year)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.cells = cells
	m.cursor = min(max(m.cursor, 1), len(cells))
	return m, nil
}

func (m browserModel) selectedCell() calendar.Cell {
	return m.cells[m.cursor-1]
}

// loadDay switches to the day screen for the cursor cell.
func (m browserModel) loadDay() (tea.Model, tea.Cmd) {
	c := m.selectedCell()
	items := make([]list.Item, len(c.Entries))
	for i, e := range c.Entries {
		items[i] = entryItem{entry: e}
	}
	m.dayList = m.cfg.Theme.NewList(items, m.contentWidth(), max(m.height-2, 5))
	m.dayList.Title = fmt.Sprintf("%s (%s)", datemath.FormatShort(c.Date), datemath.RelativeLabel(c.Date, m.cfg.now()))
	m.dayList.SetShowHelp(false)
	m.screen = screenDay
	return m, nil
}

// loadEntry switches to the entry screen for e.
func (m browserModel) loadEntry(e entry.Entry) (tea.Model, tea.Cmd) {
	photos, err := m.store.ListPhotos(e.ID)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.entry = e
	m.viewport = viewport.New(m.contentWidth(), max(m.height-4, 3))
	m.viewport.SetContent(RenderMarkdownWithStyle(EntryMarkdown(e, photos), m.contentWidth(), m.cfg.Theme.MarkdownStyle))
	m.screen = screenEntry
	return m, nil
}

func (m browserModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deleteCompleteMsg{err: m.store.Delete(id)}
	}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.screen == screenDay {
			m.dayList.SetSize(m.contentWidth(), max(m.height-2, 5))
		}
		if m.screen == screenEntry {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = max(m.height-4, 3)
		}
		return m, nil

	case deleteCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		loaded, cmd := m.loadMonth()
		m = loaded.(browserModel)
		if cmd != nil {
			return m, cmd
		}
		return m.loadDay()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMonth:
			return m.updateMonth(msg)
		case screenDay:
			return m.updateDay(msg)
		case screenEntry:
			return m.updateEntry(msg)
		}
	}
	return m, nil
}

func (m browserModel) shiftMonth(next bool) (tea.Model, tea.Cmd) {
	if next {
		m.month, m.year = calendar.Next(m.month, m.year)
	} else {
		m.month, m.year = calendar.Prev(m.month, m.year)
	}
	return m.loadMonth()
}

func (m browserModel) moveCursor(delta int) (tea.Model, tea.Cmd) {
	target := m.cursor + delta
	switch {
	case target < 1:
		loaded, cmd := m.shiftMonth(false)
		pm := loaded.(browserModel)
		pm.cursor = len(pm.cells) + target
		pm.cursor = min(max(pm.cursor, 1), len(pm.cells))
		return pm, cmd
	case target > len(m.cells):
		overflow := target - len(m.cells)
		loaded, cmd := m.shiftMonth(true)
		pm := loaded.(browserModel)
		pm.cursor = min(overflow, len(pm.cells))
		return pm, cmd
	}
	m.cursor = target
	return m, nil
}

func (m browserModel) updateMonth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		return m.moveCursor(-1)
	case "right", "l":
		return m.moveCursor(1)
	case "up", "k":
		return m.moveCursor(-7)
	case "down", "j":
		return m.moveCursor(7)
	case "n", "]":
		return m.shiftMonth(true)
	case "p", "[":
		return m.shiftMonth(false)
	case "t":
		now := m.cfg.now()
		m.month, m.year, m.cursor = int(now.Month()), now.Year(), now.Day()
		return m.loadMonth()
	case "enter":
		if len(m.selectedCell().Entries) == 0 {
			return m, nil
		}
		return m.loadDay()
	}
	return m, nil
}

func (m browserModel) updateDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deleteActive {
		m.deleteActive = false
		if strings.ToLower(msg.String()) == "y" {
			if item, ok := m.dayList.SelectedItem().(entryItem); ok {
				return m, m.deleteCmd(item.entry.ID)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenMonth
		return m, nil
	case "enter":
		if item, ok := m.dayList.SelectedItem().(entryItem); ok {
			return m.loadEntry(item.entry)
		}
		return m, nil
	case "d":
		if m.dayList.SelectedItem() != nil {
			m.deleteActive = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.dayList, cmd = m.dayList.Update(msg)
	return m, cmd
}

func (m browserModel) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenDay
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// contentWidth returns the effective content width, respecting MaxWidth.
func (m browserModel) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	if m.cfg.MaxWidth > 0 && w > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return w
}

func (m browserModel) View() string {
	if !m.ready || m.cells == nil {
		return "Loading..."
	}
	theme := m.cfg.Theme

	switch m.screen {
	case screenDay:
		footer := "↑/↓ navigate • enter open • d delete • esc back • q quit"
		if m.deleteActive {
			footer = theme.DangerStyle().Render("Delete this entry? [y/N]")
		} else {
			footer = theme.HelpStyle().Render(footer)
		}
		return m.dayList.View() + "\n" + footer

	case screenEntry:
		e := m.entry
		header := theme.HeaderStyle().Render(fmt.Sprintf("%s  %s", e.Mood, datemath.FormatShortString(e.Date)))
		if e.Title != "" {
			header += "  " + theme.AccentStyle().Render(e.Title)
		}
		footer := theme.HelpStyle().Render("↑/↓ scroll • esc back • q quit")
		return header + "\n\n" + m.viewport.View() + "\n" + footer
	}

	grid, err := RenderCalendar(m.cells, m.month, m.year, CalendarOptions{
		WeekStart: m.cfg.WeekStart,
		MaxPerDay: m.cfg.MaxPerDay,
		Today:     m.cfg.now(),
		Selected:  m.cursor,
		Theme:     theme,
	})
	if err != nil {
		return err.Error()
	}
	footer := theme.HelpStyle().Render("←/→/↑/↓ move • enter open day • n/p month • t today • q quit")
	return grid + "\n" + footer
}

// RunBrowser launches the interactive month calendar at month/year.
func RunBrowser(store StorageProvider, cfg TUIConfig, month, year int) error {
	loaded, _ := newBrowserModel(store, cfg, month, year).loadMonth()
	m := loaded.(browserModel)
	if m.err != nil {
		return m.err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}
	if bm, ok := result.(browserModel); ok && bm.err != nil {
		return bm.err
	}
	return nil
}
