package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"imgstudio/internal/catalog"
	"imgstudio/internal/providers"
	"imgstudio/internal/session"
	"imgstudio/internal/utils"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

// modelRow is one line of the grouped model list
type modelRow struct {
	header bool
	id     string
	text   string
}

// modelRows flattens the grouped catalog into display rows
func (m Model) modelRows() []modelRow {
	var rows []modelRow
	for _, g := range catalog.GroupByCategory(m.session.Models()) {
		rows = append(rows, modelRow{header: true, text: g.Category})
		for _, d := range g.Models.Descriptors() {
			rows = append(rows, modelRow{id: d.ID, text: d.Label()})
		}
	}
	return rows
}

// getEffectiveWidth returns the effective width for rendering, with a minimum and maximum
func (m Model) getEffectiveWidth(defaultWidth int) int {
	if m.width <= 0 {
		return defaultWidth
	}
	maxWidth := 80
	if m.width < maxWidth {
		return m.width - 2
	}
	return maxWidth
}

// getVisibleListHeight returns the number of list rows that fit
func (m *Model) getVisibleListHeight() int {
	// Title, separator and blank line above; separator and status bar below.
	headerLines := 4
	footerLines := 4

	available := m.height - headerLines - footerLines
	if available < 1 {
		available = 1
	}
	return available
}

// adjustScrollOffset keeps the model cursor within the visible window
func (m *Model) adjustScrollOffset() {
	visibleHeight := m.getVisibleListHeight()

	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visibleHeight {
		m.scrollOffset = m.cursor - visibleHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}

	maxOffset := len(m.modelIDs) - visibleHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
}

// getVisibleHelpHeight returns the number of lines available for help content
func (m *Model) getVisibleHelpHeight() int {
	headerLines := 3
	footerLines := 2

	available := m.height - headerLines - footerLines
	if available < 1 {
		available = 1
	}
	return available
}

// adjustHelpScrollOffset adjusts the help scroll offset to stay within bounds
func (m *Model) adjustHelpScrollOffset() {
	maxOffset := len(m.buildHelpLines()) - m.getVisibleHelpHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.helpScrollOffset > maxOffset {
		m.helpScrollOffset = maxOffset
	}
	if m.helpScrollOffset < 0 {
		m.helpScrollOffset = 0
	}
}

func (m Model) header(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.getEffectiveWidth(40))))
	b.WriteString("\n\n")
	return b.String()
}

func (m Model) footer() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.getEffectiveWidth(40))))
	b.WriteString("\n")
	b.WriteString(m.RenderStatusBar())
	return b.String()
}

func cursorMark(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

// RenderModelsView renders the grouped model list
func (m Model) RenderModelsView() string {
	var b strings.Builder

	profile := m.session.ActiveProfile()
	b.WriteString(m.header("Image Studio · " + profile.Name))

	status := m.discovery
	if m.discovering {
		status = m.spinner.View() + " Discovering models..."
	}
	if status != "" {
		b.WriteString(dimStyle.Render(status))
		b.WriteString("\n")
	}

	if len(m.modelIDs) == 0 {
		b.WriteString(dimStyle.Render("No models available. Press 'r' to rediscover."))
		b.WriteString("\n")
		b.WriteString(m.footer())
		return b.String()
	}

	visibleHeight := m.getVisibleListHeight()
	startIdx := m.scrollOffset
	endIdx := startIdx + visibleHeight
	if endIdx > len(m.modelIDs) {
		endIdx = len(m.modelIDs)
	}

	if startIdx > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ↑ %d more...", startIdx)))
		b.WriteString("\n")
	}

	selected := m.session.SelectedModel()
	index := -1
	category := ""
	for _, row := range m.modelRows() {
		if row.header {
			category = row.text
			continue
		}
		index++
		if index < startIdx || index >= endIdx {
			continue
		}
		if category != "" {
			b.WriteString(categoryStyle.Render(category))
			b.WriteString("\n")
			category = ""
		}

		text := cursorMark(index == m.cursor) + row.text
		if row.id == selected {
			text += " ✓"
		}
		switch {
		case index == m.cursor:
			b.WriteString(selectedStyle.Render(text))
		case row.id == selected:
			b.WriteString(activeStyle.Render(text))
		default:
			b.WriteString(normalStyle.Render(text))
		}
		b.WriteString("\n")
	}

	if endIdx < len(m.modelIDs) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more...", len(m.modelIDs)-endIdx)))
		b.WriteString("\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

// RenderPromptView renders the prompt form
func (m Model) RenderPromptView() string {
	title := "New Image · " + m.session.SelectedModel()
	footer := "Tab/↑↓: switch field │ Enter: generate │ Esc: back"
	out := RenderForm(m.promptInputs, promptLabels, promptHints, m.promptFocus, title, m.errorMsg, footer)
	if m.message != "" {
		out = messageStyle.Render("✓ "+m.message) + "\n\n" + out
	}
	return out
}

// RenderGeneratingView renders the in-progress screen
func (m Model) RenderGeneratingView() string {
	var b strings.Builder
	b.WriteString(m.header("Generating"))

	data := GetPromptFormData(m.promptInputs)
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(normalStyle.Render(fmt.Sprintf("Generating %s image(s) with %s", data.Count, m.session.SelectedModel())))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(utils.Truncate(data.Prompt, utils.LongMessageLimit)))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("ctrl+c: quit"))
	return b.String()
}

// RenderResultsView renders the images of the current entry
func (m Model) RenderResultsView() string {
	var b strings.Builder
	b.WriteString(m.header("Results"))

	if m.result == nil {
		b.WriteString(dimStyle.Render("Nothing to show"))
		b.WriteString("\n")
		b.WriteString(m.footer())
		return b.String()
	}

	e := m.result
	b.WriteString(normalStyle.Render(utils.Truncate(e.Prompt, utils.LongMessageLimit)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %s · %s", modelName(*e), e.Metadata.Size, e.CreatedAt.Format("2006-01-02 15:04:05"))))
	b.WriteString("\n\n")

	for i := range e.Images {
		star := "  "
		if m.session.IsFavorite(session.FavoriteID(e.ID, i)) {
			star = favoriteStyle.Render("★ ")
		}
		info := ""
		if i < len(m.resultInfo) {
			info = m.resultInfo[i]
		}
		line := fmt.Sprintf("%sImage %d  %s", cursorMark(i == m.resultCursor), i+1, info)
		if i == m.resultCursor {
			line = selectedStyle.Render(line)
		} else {
			line = normalStyle.Render(line)
		}
		b.WriteString(star + line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("f: favorite │ s: save all │ v: variation │ Esc: back"))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func modelName(e session.HistoryEntry) string {
	if e.Metadata.ModelName != "" {
		return e.Metadata.ModelName
	}
	return e.Model
}

// RenderHistoryView renders the history list, newest first
func (m Model) RenderHistoryView() string {
	var b strings.Builder
	history := m.session.History()
	b.WriteString(m.header(fmt.Sprintf("History (%d)", len(history))))

	if len(history) == 0 {
		b.WriteString(dimStyle.Render("No generations yet. Press 'n' to create one."))
		b.WriteString("\n")
	}

	width := m.getEffectiveWidth(40) - 30
	for i, e := range history {
		line := fmt.Sprintf("%s%s  %-3s %s", cursorMark(i == m.historyCursor),
			e.CreatedAt.Format("15:04:05"),
			fmt.Sprintf("×%d", len(e.Images)),
			utils.Truncate(e.Prompt, max(width, 10)))
		if i == m.historyCursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(normalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: open │ v: variation │ s: save │ c: clear │ Esc: back"))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// RenderFavoritesView renders the favorites list
func (m Model) RenderFavoritesView() string {
	var b strings.Builder
	favorites := m.session.Favorites()
	b.WriteString(m.header(fmt.Sprintf("Favorites (%d)", len(favorites))))

	if len(favorites) == 0 {
		b.WriteString(dimStyle.Render("No favorites yet. Press 'f' on a result to add one."))
		b.WriteString("\n")
	}

	width := m.getEffectiveWidth(40) - 20
	for i, f := range favorites {
		line := fmt.Sprintf("%s★ %s  %s", cursorMark(i == m.favoriteCursor),
			f.CreatedAt.Format("01-02 15:04"),
			utils.Truncate(f.Prompt, max(width, 10)))
		if i == m.favoriteCursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(favoriteStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s: save │ d: remove │ c: clear │ Esc: back"))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// RenderProfilesView renders the profile list
func (m Model) RenderProfilesView() string {
	var b strings.Builder
	b.WriteString(m.header("Profiles"))

	active := m.session.ActiveProfile().Name
	for i, p := range m.session.Profiles().List() {
		label := p.Provider
		if prov, err := providers.Get(p.Provider); err == nil {
			label = prov.Label()
		}
		marker := "  "
		if p.Name == active {
			marker = "● "
		}
		check := ""
		if p.Validated {
			check = " ✓"
		}
		line := fmt.Sprintf("%s%s%-16s %s%s", cursorMark(i == m.profileCursor), marker, p.Name, label, check)
		switch {
		case i == m.profileCursor:
			b.WriteString(selectedStyle.Render(line))
		case p.Name == active:
			b.WriteString(activeStyle.Render(line))
		default:
			b.WriteString(normalStyle.Render(line))
		}
		b.WriteString("\n")
		if i == m.profileCursor {
			detail := "    " + p.BaseURL
			if p.APIKey != "" {
				detail += "  key " + utils.MaskAPIKey(p.APIKey)
			}
			b.WriteString(dimStyle.Render(detail))
			b.WriteString("\n")
		}
	}

	if m.validating {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(dimStyle.Render(" Validating..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Enter: switch │ a: add │ e: edit │ d: delete │ t: validate │ Esc: back"))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// RenderProfileFormView renders the profile editor
func (m Model) RenderProfileFormView() string {
	title := "Edit Profile · " + m.editingName
	footer := "Tab/↑↓: switch field │ Enter: save │ Esc: cancel"
	return RenderForm(m.profileInputs, profileLabels, profileHints, m.profileFocus, title, m.errorMsg, footer)
}

// RenderDeleteConfirm renders the delete confirmation dialog
func (m Model) RenderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.header("Delete Profile"))

	profiles := m.session.Profiles().List()
	if m.profileCursor >= 0 && m.profileCursor < len(profiles) {
		p := profiles[m.profileCursor]
		b.WriteString(errorStyle.Render("⚠ This cannot be undone"))
		b.WriteString("\n\n")
		b.WriteString(normalStyle.Render("Delete profile: "))
		b.WriteString(selectedStyle.Render(p.Name))
		b.WriteString("\n\n")
		if p.Name == m.session.ActiveProfile().Name {
			b.WriteString(errorStyle.Render("This is the active profile; another one will take over."))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.getEffectiveWidth(40))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("y: confirm │ n/Esc: cancel"))
	return b.String()
}

// RenderHelpView renders the help panel
func (m Model) RenderHelpView() string {
	var b strings.Builder
	effectiveWidth := m.getEffectiveWidth(50)

	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n")

	helpLines := m.buildHelpLines()

	visibleHeight := m.getVisibleHelpHeight()
	startIdx := m.helpScrollOffset
	endIdx := startIdx + visibleHeight
	if endIdx > len(helpLines) {
		endIdx = len(helpLines)
	}

	if startIdx > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ↑ %d more lines...", startIdx)))
	}
	b.WriteString("\n")

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(helpLines[i])
		b.WriteString("\n")
	}

	if endIdx < len(helpLines) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more lines...", len(helpLines)-endIdx)))
		b.WriteString("\n")
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: scroll │ ?/Esc: back"))
	return b.String()
}

// buildHelpLines renders the full key map one binding per line
func (m Model) buildHelpLines() []string {
	sections := []string{"Navigation", "Views", "Images", "Profiles"}
	var lines []string
	for i, group := range m.keys.FullHelp() {
		if i < len(sections) {
			lines = append(lines, categoryStyle.Render(sections[i]))
		}
		for _, k := range group {
			lines = append(lines, renderHelpLine(k.Help().Key, k.Help().Desc))
		}
		lines = append(lines, "")
	}
	return lines
}

// renderHelpLine renders a single help line with key and description
func renderHelpLine(key, desc string) string {
	keyStyled := helpKeyStyle.Render(fmt.Sprintf("  %-10s", key))
	descStyled := normalStyle.Render(desc)
	return fmt.Sprintf("%s %s", keyStyled, descStyled)
}

// RenderStatusBar renders the bottom status bar
func (m Model) RenderStatusBar() string {
	var b strings.Builder

	if m.errorMsg != "" {
		b.WriteString(errorStyle.Render("✗ Error: " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	if m.errorMsg != "" || m.message != "" {
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}
