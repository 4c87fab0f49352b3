package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"imgstudio/config/models"
	"imgstudio/internal/export"
	"imgstudio/internal/presets"
	"imgstudio/internal/providers"
	"imgstudio/internal/session"
)

// ViewState represents the current view state
type ViewState int

const (
	ViewModels        ViewState = iota // Model list grouped by category
	ViewPrompt                         // Prompt form
	ViewGenerating                     // Generation in progress
	ViewResults                        // Images of one history entry
	ViewHistory                        // History list
	ViewFavorites                      // Favorites list
	ViewProfiles                       // Profile list
	ViewProfileForm                    // Profile editor
	ViewDeleteProfile                  // Delete confirmation dialog
	ViewHelp                           // Help panel
)

// Model is the core state model for TUI
type Model struct {
	session *session.Session
	deps    Deps
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	viewState ViewState
	backView  ViewState // where Esc returns from help

	// Model list
	modelIDs     []string
	cursor       int
	scrollOffset int
	discovering  bool
	discovery    string // last discovery summary

	// Prompt form
	promptInputs []textinput.Model
	promptFocus  int

	// Profile form
	profileInputs []textinput.Model
	profileFocus  int
	editingName   string

	// Lists
	profileCursor  int
	historyCursor  int
	favoriteCursor int

	// Results
	result       *session.HistoryEntry
	resultCursor int
	resultInfo   []string

	validating bool

	// Messages and errors
	message  string
	errorMsg string

	// Window size
	width  int
	height int

	helpScrollOffset int
}

// NewModel creates a new TUI model
func NewModel(sess *session.Session, deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	m := Model{
		session:      sess,
		deps:         deps.withDefaults(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		spinner:      sp,
		viewState:    ViewModels,
		promptInputs: PromptInputs(),
		width:        80,
		height:       24,
	}
	m.refreshModels()
	m.discovering = true
	return m
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, discoverModels(m.deps, m.session.ActiveProfile()))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.adjustScrollOffset()
		return m, nil

	case spinner.TickMsg:
		if !m.session.InProgress() && !m.discovering && !m.validating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ModelsDiscoveredMsg:
		// A result for a profile that is no longer active is stale.
		if msg.Profile != m.session.ActiveProfile().Name {
			return m, nil
		}
		m.discovering = false
		m.session.SetDiscovered(msg.Models)
		m.discovery = msg.Summary
		m.refreshModels()
		return m, nil

	case GenerationDoneMsg:
		return m.handleGenerationDone(msg)

	case ValidationMsg:
		m.validating = false
		if err := m.session.Profiles().SetValidated(msg.Profile, msg.OK); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if msg.OK {
			m.message = "✓ " + msg.Profile + ": " + msg.Message
		} else {
			m.errorMsg = msg.Profile + ": " + msg.Message
		}
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.errorMsg = "Export failed: " + msg.Err.Error()
			return m, nil
		}
		m.message = fmt.Sprintf("Saved %d image(s) to %s", len(msg.Paths), m.deps.Exporter.Dir())
		return m, nil
	}

	return m, nil
}

func (m Model) handleGenerationDone(msg GenerationDoneMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.Err, session.ErrProfileNotValidated) {
		m.viewState = ViewPrompt
		m.errorMsg = notValidatedMessage(m.session.ActiveProfile().Name)
		return m, nil
	}
	if msg.Err != nil {
		m.viewState = ViewPrompt
		m.errorMsg = msg.Err.Error()
		return m, nil
	}
	if !msg.Outcome.OK {
		m.viewState = ViewPrompt
		m.errorMsg = msg.Outcome.Reason
		return m, nil
	}

	m.showResult(msg.Entry)
	if msg.Outcome.Partial() {
		m.errorMsg = fmt.Sprintf("Only %d of %d images were generated", len(msg.Outcome.Result.Images), msg.Outcome.Result.Requested)
	} else {
		m.message = fmt.Sprintf("Generated %d image(s)", len(msg.Entry.Images))
	}
	return m, nil
}

// showResult opens the results view for entry
func (m *Model) showResult(entry *session.HistoryEntry) {
	m.result = entry
	m.resultCursor = 0
	m.resultInfo = make([]string, len(entry.Images))
	for i, b64 := range entry.Images {
		data, err := export.Decode(b64)
		if err != nil {
			m.resultInfo[i] = "undecodable payload"
			continue
		}
		info, err := export.Describe(data)
		if err != nil {
			m.resultInfo[i] = err.Error()
			continue
		}
		m.resultInfo[i] = info.String()
	}
	m.viewState = ViewResults
}

// refreshModels rebuilds the flat model id list in display order
func (m *Model) refreshModels() {
	m.modelIDs = m.modelIDs[:0]
	for _, row := range m.modelRows() {
		if !row.header {
			m.modelIDs = append(m.modelIDs, row.id)
		}
	}
	m.cursor = 0
	selected := m.session.SelectedModel()
	for i, id := range m.modelIDs {
		if id == selected {
			m.cursor = i
			break
		}
	}
	m.adjustScrollOffset()
}

func (m *Model) clearStatus() {
	m.message = ""
	m.errorMsg = ""
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewState {
	case ViewPrompt:
		return m.handlePromptKeys(msg)
	case ViewProfileForm:
		return m.handleProfileFormKeys(msg)
	case ViewGenerating:
		// During generation, only allow quit
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case ViewDeleteProfile:
		return m.handleDeleteKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	}

	if next, cmd, ok := m.handleGlobalKeys(msg); ok {
		return next, cmd
	}

	switch m.viewState {
	case ViewModels:
		return m.handleModelKeys(msg)
	case ViewResults:
		return m.handleResultKeys(msg)
	case ViewHistory:
		return m.handleHistoryKeys(msg)
	case ViewFavorites:
		return m.handleFavoriteKeys(msg)
	case ViewProfiles:
		return m.handleProfileKeys(msg)
	}
	return m, nil
}

// handleGlobalKeys handles navigation shared by the list views
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.backView = m.viewState
		m.viewState = ViewHelp
		m.helpScrollOffset = 0
		return m, nil, true
	case key.Matches(msg, m.keys.Prompt):
		m.clearStatus()
		m.viewState = ViewPrompt
		return m, textinput.Blink, true
	case key.Matches(msg, m.keys.Models):
		m.clearStatus()
		m.viewState = ViewModels
		return m, nil, true
	case key.Matches(msg, m.keys.History):
		m.clearStatus()
		m.historyCursor = 0
		m.viewState = ViewHistory
		return m, nil, true
	case key.Matches(msg, m.keys.Favorites):
		m.clearStatus()
		m.favoriteCursor = 0
		m.viewState = ViewFavorites
		return m, nil, true
	case key.Matches(msg, m.keys.Profiles):
		m.clearStatus()
		m.profileCursor = indexOf(m.session.Profiles().Names(), m.session.ActiveProfile().Name)
		m.viewState = ViewProfiles
		return m, nil, true
	}
	return m, nil, false
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return 0
}

// moveCursor applies list navigation keys to cursor over n items
func (m Model) moveCursor(msg tea.KeyMsg, cursor, n int) (int, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if cursor > 0 {
			cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if cursor < n-1 {
			cursor++
		}
	case key.Matches(msg, m.keys.Top):
		cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		if n > 0 {
			cursor = n - 1
		}
	default:
		return cursor, false
	}
	return cursor, true
}

// handleModelKeys handles keyboard input in the model list
func (m Model) handleModelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cursor, ok := m.moveCursor(msg, m.cursor, len(m.modelIDs)); ok {
		m.cursor = cursor
		m.adjustScrollOffset()
		m.clearStatus()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		if len(m.modelIDs) == 0 {
			return m, nil
		}
		id := m.modelIDs[m.cursor]
		if err := m.session.SelectModel(id); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.message = "Model selected: " + id
		m.viewState = ViewPrompt
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Discover):
		m.clearStatus()
		return m, m.startDiscovery()
	}
	return m, nil
}

// startDiscovery fetches models for the active profile in the background.
// Results for a profile that is no longer active are dropped on arrival.
func (m *Model) startDiscovery() tea.Cmd {
	m.discovering = true
	return tea.Batch(m.spinner.Tick, discoverModels(m.deps, m.session.ActiveProfile()))
}

func discoverModels(deps Deps, p models.Profile) tea.Cmd {
	return func() tea.Msg {
		found, summary := deps.Discover(context.Background(), p)
		return ModelsDiscoveredMsg{Profile: p.Name, Models: found, Summary: summary}
	}
}

// handlePromptKeys handles keyboard input in the prompt form
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewState = ViewModels
		m.errorMsg = ""
		return m, nil

	case "tab", "down":
		m.promptFocus = NextFormField(m.promptInputs, m.promptFocus)
		return m, nil

	case "shift+tab", "up":
		m.promptFocus = PrevFormField(m.promptInputs, m.promptFocus)
		return m, nil

	case "enter":
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.promptInputs[m.promptFocus], cmd = m.promptInputs[m.promptFocus].Update(msg)
	return m, cmd
}

func (m Model) activeKind() providers.Kind {
	if p, err := providers.Get(m.session.ActiveProfile().Provider); err == nil {
		return p.Kind()
	}
	return providers.KindCompatible
}

// submitPrompt validates the form and starts a generation
func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	m.clearStatus()
	if m.session.InProgress() {
		m.errorMsg = session.ErrGenerationInProgress.Error()
		return m, nil
	}
	if p := m.session.ActiveProfile(); !p.Validated {
		m.errorMsg = notValidatedMessage(p.Name)
		return m, nil
	}

	data := GetPromptFormData(m.promptInputs)
	params, style, err := data.Request(m.activeKind())
	if err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}

	m.viewState = ViewGenerating
	return m, tea.Batch(m.spinner.Tick, generate(m.session, m.deps, session.Request{Params: params, Style: style}))
}

func notValidatedMessage(name string) string {
	return fmt.Sprintf("Profile %s is not validated; press t in profiles (P) to check it", name)
}

func generate(sess *session.Session, deps Deps, req session.Request) tea.Cmd {
	return func() tea.Msg {
		outcome, entry, err := sess.Generate(context.Background(), deps.Dispatcher, nil, req)
		return GenerationDoneMsg{Outcome: outcome, Entry: entry, Err: err}
	}
}

// handleResultKeys handles keyboard input in the results view
func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.result == nil {
		return m, nil
	}
	if cursor, ok := m.moveCursor(msg, m.resultCursor, len(m.result.Images)); ok {
		m.resultCursor = cursor
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.viewState = ViewPrompt
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		m.clearStatus()
		on, err := m.session.ToggleFavorite(*m.result, m.resultCursor)
		switch {
		case errors.Is(err, session.ErrFavoritesFull):
			m.errorMsg = "Favorites are full; remove one first"
		case err != nil:
			m.errorMsg = err.Error()
		case on:
			m.message = fmt.Sprintf("★ Image %d added to favorites", m.resultCursor+1)
		default:
			m.message = fmt.Sprintf("Image %d removed from favorites", m.resultCursor+1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.clearStatus()
		return m, exportEntry(m.deps.Exporter, *m.result)

	case key.Matches(msg, m.keys.Variation):
		return m.startVariation(m.result.ID)
	}
	return m, nil
}

func exportEntry(e *export.Exporter, entry session.HistoryEntry) tea.Cmd {
	return func() tea.Msg {
		paths, err := e.SaveEntry(&entry)
		return ExportedMsg{Paths: paths, Err: err}
	}
}

func exportFavorite(e *export.Exporter, f session.Favorite) tea.Cmd {
	return func() tea.Msg {
		path, err := e.SaveFavorite(f)
		if err != nil {
			return ExportedMsg{Err: err}
		}
		return ExportedMsg{Paths: []string{path}}
	}
}

// startVariation loads a history entry into the prompt form
func (m Model) startVariation(historyID string) (tea.Model, tea.Cmd) {
	m.clearStatus()
	params, err := m.session.Variation(historyID)
	if err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}
	style := presets.StyleNone
	if e, ok := m.session.HistoryEntry(historyID); ok && e.Metadata.Style != "" {
		style = e.Metadata.Style
	}
	if params.Model != "" {
		if err := m.session.SelectModel(params.Model); err != nil {
			m.errorMsg = "Model no longer available; using " + m.session.SelectedModel()
		}
	}
	SetPromptParams(m.promptInputs, params, style)
	m.viewState = ViewPrompt
	return m, textinput.Blink
}

// handleHistoryKeys handles keyboard input in the history list
func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	history := m.session.History()
	if cursor, ok := m.moveCursor(msg, m.historyCursor, len(history)); ok {
		m.historyCursor = cursor
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.viewState = ViewModels
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.session.ClearHistory()
		m.historyCursor = 0
		m.message = "History cleared"
		return m, nil
	}
	if len(history) == 0 || m.historyCursor >= len(history) {
		return m, nil
	}

	entry := history[m.historyCursor]
	switch {
	case key.Matches(msg, m.keys.Select):
		m.clearStatus()
		m.showResult(&entry)
		return m, nil
	case key.Matches(msg, m.keys.Variation):
		return m.startVariation(entry.ID)
	case key.Matches(msg, m.keys.Save):
		m.clearStatus()
		return m, exportEntry(m.deps.Exporter, entry)
	}
	return m, nil
}

// handleFavoriteKeys handles keyboard input in the favorites list
func (m Model) handleFavoriteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	favorites := m.session.Favorites()
	if cursor, ok := m.moveCursor(msg, m.favoriteCursor, len(favorites)); ok {
		m.favoriteCursor = cursor
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.viewState = ViewModels
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.session.ClearFavorites()
		m.favoriteCursor = 0
		m.message = "Favorites cleared"
		return m, nil
	}
	if len(favorites) == 0 || m.favoriteCursor >= len(favorites) {
		return m, nil
	}

	fav := favorites[m.favoriteCursor]
	switch {
	case key.Matches(msg, m.keys.Delete), key.Matches(msg, m.keys.Favorite):
		m.session.RemoveFavorite(fav.ID)
		if m.favoriteCursor > 0 && m.favoriteCursor >= len(favorites)-1 {
			m.favoriteCursor--
		}
		m.message = "Removed from favorites"
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.clearStatus()
		return m, exportFavorite(m.deps.Exporter, fav)
	}
	return m, nil
}

// handleProfileKeys handles keyboard input in the profile list
func (m Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	profiles := m.session.Profiles().List()
	if cursor, ok := m.moveCursor(msg, m.profileCursor, len(profiles)); ok {
		m.profileCursor = cursor
		m.clearStatus()
		return m, nil
	}
	if key.Matches(msg, m.keys.Cancel) || len(profiles) == 0 {
		m.viewState = ViewModels
		return m, nil
	}
	m.profileCursor = min(max(m.profileCursor, 0), len(profiles)-1)
	selected := profiles[m.profileCursor]

	switch {
	case key.Matches(msg, m.keys.Select):
		m.clearStatus()
		if selected.Name == m.session.ActiveProfile().Name {
			m.viewState = ViewModels
			return m, nil
		}
		if err := m.session.SwitchProfile(selected.Name); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.message = "Switched to " + selected.Name
		m.discovery = ""
		m.refreshModels()
		m.viewState = ViewModels
		return m, m.startDiscovery()

	case key.Matches(msg, m.keys.Add):
		m.clearStatus()
		p := m.session.CreateProfile()
		m.refreshModels()
		m.profileCursor = len(profiles)
		m.initProfileForm(p)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		m.clearStatus()
		m.initProfileForm(selected)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		m.clearStatus()
		if len(profiles) <= 1 {
			m.errorMsg = "Cannot delete the last profile"
			return m, nil
		}
		m.viewState = ViewDeleteProfile
		return m, nil

	case key.Matches(msg, m.keys.Validate):
		m.clearStatus()
		if m.validating {
			return m, nil
		}
		m.validating = true
		m.message = "Validating " + selected.Name + "..."
		return m, tea.Batch(m.spinner.Tick, validateProfile(m.deps, selected))
	}
	return m, nil
}

func validateProfile(deps Deps, p models.Profile) tea.Cmd {
	return func() tea.Msg {
		ok, message := deps.Validate(context.Background(), p)
		return ValidationMsg{Profile: p.Name, OK: ok, Message: message}
	}
}

// initProfileForm opens the editor for p
func (m *Model) initProfileForm(p models.Profile) {
	m.profileInputs = ProfileInputs()
	m.profileFocus = 0
	m.editingName = p.Name
	SetProfileFormData(m.profileInputs, ProfileFormFrom(p))
	m.viewState = ViewProfileForm
}

// handleProfileFormKeys handles keyboard input in the profile editor
func (m Model) handleProfileFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewState = ViewProfiles
		m.profileInputs = nil
		m.errorMsg = ""
		return m, nil

	case "tab", "down":
		m.profileFocus = NextFormField(m.profileInputs, m.profileFocus)
		return m, nil

	case "shift+tab", "up":
		m.profileFocus = PrevFormField(m.profileInputs, m.profileFocus)
		return m, nil

	case "enter":
		return m.submitProfileForm()
	}

	var cmd tea.Cmd
	m.profileInputs[m.profileFocus], cmd = m.profileInputs[m.profileFocus].Update(msg)
	return m, cmd
}

// submitProfileForm saves the edited profile; it becomes active
func (m Model) submitProfileForm() (tea.Model, tea.Cmd) {
	data := GetProfileFormData(m.profileInputs)
	if err := data.Validate(); err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}

	before := m.session.ActiveProfile()
	saved, err := m.session.SaveProfile(m.editingName, data.Profile())
	if err != nil {
		m.errorMsg = err.Error()
		return m, nil
	}

	m.errorMsg = ""
	m.message = "Profile saved: " + saved.Name
	m.profileInputs = nil
	m.profileCursor = indexOf(m.session.Profiles().Names(), saved.Name)
	m.viewState = ViewProfiles

	m.validating = true
	cmds := []tea.Cmd{m.spinner.Tick, validateProfile(m.deps, saved)}
	if before.Name != saved.Name || before.Provider != saved.Provider || before.BaseURL != saved.BaseURL || before.APIKey != saved.APIKey {
		m.discovery = ""
		m.refreshModels()
		cmds = append(cmds, m.startDiscovery())
	}
	return m, tea.Batch(cmds...)
}

// handleDeleteKeys handles the delete confirmation dialog
func (m Model) handleDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		profiles := m.session.Profiles().List()
		if m.profileCursor >= len(profiles) {
			m.viewState = ViewProfiles
			return m, nil
		}
		name := profiles[m.profileCursor].Name
		wasActive := name == m.session.ActiveProfile().Name
		if err := m.session.RemoveProfile(name); err != nil {
			m.errorMsg = err.Error()
			m.viewState = ViewProfiles
			return m, nil
		}
		m.message = "Profile deleted: " + name
		if m.profileCursor >= len(profiles)-1 {
			m.profileCursor = len(profiles) - 2
		}
		m.viewState = ViewProfiles
		if wasActive {
			m.discovery = ""
			m.refreshModels()
			return m, m.startDiscovery()
		}
		return m, nil

	case "n", "N", "esc":
		m.viewState = ViewProfiles
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// handleHelpKeys handles keyboard input in help view
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "?":
		m.viewState = m.backView
		return m, nil
	case "j", "down":
		m.helpScrollOffset++
		m.adjustHelpScrollOffset()
		return m, nil
	case "k", "up":
		if m.helpScrollOffset > 0 {
			m.helpScrollOffset--
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI
func (m Model) View() string {
	switch m.viewState {
	case ViewPrompt:
		return m.RenderPromptView()
	case ViewGenerating:
		return m.RenderGeneratingView()
	case ViewResults:
		return m.RenderResultsView()
	case ViewHistory:
		return m.RenderHistoryView()
	case ViewFavorites:
		return m.RenderFavoritesView()
	case ViewProfiles:
		return m.RenderProfilesView()
	case ViewProfileForm:
		return m.RenderProfileFormView()
	case ViewDeleteProfile:
		return m.RenderDeleteConfirm()
	case ViewHelp:
		return m.RenderHelpView()
	default:
		return m.RenderModelsView()
	}
}
