package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/readctl/internal/library"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LibraryChangedMsg tells the watch view to re-read library state. The
// command layer sends it from the library's OnChange listener.
type LibraryChangedMsg struct{}

// WatchModel renders the library live: every snapshot push redraws the
// list. The model never mutates the library beyond triggering a manual
// refresh; it reads through the accessor methods only.
type WatchModel struct {
	lib     *library.Library
	refresh func()
	keys    WatchKeys
	spin    spinner.Model
	width   int
}

// NewWatch builds the live view. refresh is invoked on the r key and
// must not block.
func NewWatch(lib *library.Library, refresh func()) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorCyan)
	return WatchModel{
		lib:     lib,
		refresh: refresh,
		keys:    NewWatchKeys(),
		spin:    sp,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.refresh != nil {
				m.refresh()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case LibraryChangedMsg:
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	books := m.lib.Books()
	title := fmt.Sprintf("Library — %d books", len(books))
	if m.lib.Loading() {
		title = m.spin.View() + " " + title
	}
	b.WriteString(StyleHeader.Render(title))
	b.WriteString("\n\n")

	if lastErr := m.lib.LastError(); lastErr != "" {
		b.WriteString(StyleError.Render("✗ " + lastErr))
		b.WriteString("\n\n")
	}

	if len(books) == 0 {
		b.WriteString(StyleMeta.Render("Nothing saved yet."))
		b.WriteString("\n")
	}
	for _, book := range books {
		b.WriteString(renderBook(book))
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(m.keys))
	return b.String()
}

func renderBook(b library.Book) string {
	status := string(b.Status)
	badge := statusStyles[status].Render("[" + status + "]")

	line := fmt.Sprintf("%s %s — %s\n", badge,
		StyleTitle.Render(b.Title), strings.Join(b.Authors, ", "))

	meta := fmt.Sprintf("  %s · %s", b.ID, renderStars(b.Rating))
	if !b.AddedAt.IsZero() {
		meta += " · added " + b.AddedAt.Format("2006-01-02")
	}
	line += StyleMeta.Render(meta) + "\n"

	if len(b.Categories) > 0 {
		line += "  " + StyleCategory.Render(strings.Join(b.Categories, ", ")) + "\n"
	}
	return line
}

func renderStars(rating int) string {
	if rating == 0 {
		return "unrated"
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", library.MaxRating-rating)
}

func renderHelp(keys WatchKeys) string {
	var parts []string
	for _, binding := range keys.ShortHelp() {
		parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
	}
	return StyleHelp.Render(strings.Join(parts, " · "))
}
