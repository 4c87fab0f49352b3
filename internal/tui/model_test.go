package tui

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"imgstudio/config"
	"imgstudio/config/models"
	"imgstudio/internal/catalog"
	"imgstudio/internal/export"
	"imgstudio/internal/generation"
	"imgstudio/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sess := session.New(config.NewManager(nil), config.Settings{})
	deps := Deps{
		Exporter: export.NewExporter(t.TempDir()),
		Discover: func(ctx context.Context, p models.Profile) (catalog.Catalog, string) {
			return catalog.Catalog{}, "no models discovered"
		},
		Validate: func(ctx context.Context, p models.Profile) (bool, string) {
			return true, "Credentials are valid"
		},
	}
	return NewModel(sess, deps)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyPress(k))
		m = next.(Model)
	}
	return m, cmd
}

func pngPayload(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	if m.viewState != ViewModels {
		t.Errorf("viewState = %v, want ViewModels", m.viewState)
	}
	if len(m.modelIDs) == 0 {
		t.Fatal("expected hardcoded models for the default profile")
	}
	if got, want := m.modelIDs[m.cursor], m.session.SelectedModel(); got != want {
		t.Errorf("cursor on %q, want selected model %q", got, want)
	}
	if m.Init() == nil {
		t.Error("Init() should start discovery")
	}
}

func TestModelListNavigation(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		expect func(n int) int
	}{
		{"bottom", []string{"G"}, func(n int) int { return n - 1 }},
		{"top after bottom", []string{"G", "g"}, func(n int) int { return 0 }},
		{"down from top", []string{"g", "j"}, func(n int) int { return 1 }},
		{"up stops at top", []string{"g", "k", "k"}, func(n int) int { return 0 }},
		{"down stops at bottom", []string{"G", "j"}, func(n int) int { return n - 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = press(m, tt.keys...)
			if want := tt.expect(len(m.modelIDs)); m.cursor != want {
				t.Errorf("cursor = %d, want %d", m.cursor, want)
			}
		})
	}
}

func TestScrollOffsetFollowsCursor(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(Model)

	m, _ = press(m, "G")
	visible := m.getVisibleListHeight()
	if m.cursor < m.scrollOffset || m.cursor >= m.scrollOffset+visible {
		t.Errorf("cursor %d outside window [%d, %d)", m.cursor, m.scrollOffset, m.scrollOffset+visible)
	}

	m, _ = press(m, "g")
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d, want 0", m.scrollOffset)
	}
}

func TestSelectModelOpensPrompt(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "G")
	want := m.modelIDs[m.cursor]

	m, _ = press(m, "enter")
	if m.viewState != ViewPrompt {
		t.Fatalf("viewState = %v, want ViewPrompt", m.viewState)
	}
	if got := m.session.SelectedModel(); got != want {
		t.Errorf("SelectedModel() = %q, want %q", got, want)
	}
}

func TestGlobalViewKeys(t *testing.T) {
	tests := []struct {
		key  string
		want ViewState
	}{
		{"n", ViewPrompt},
		{"h", ViewHistory},
		{"F", ViewFavorites},
		{"P", ViewProfiles},
		{"?", ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = press(m, tt.key)
			if m.viewState != tt.want {
				t.Errorf("viewState = %v, want %v", m.viewState, tt.want)
			}
		})
	}
}

func TestHelpReturnsToPreviousView(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "h", "?")
	if m.viewState != ViewHelp {
		t.Fatalf("viewState = %v, want ViewHelp", m.viewState)
	}
	m, _ = press(m, "esc")
	if m.viewState != ViewHistory {
		t.Errorf("viewState = %v, want ViewHistory", m.viewState)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestSubmitPrompt(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		size      string
		wantView  ViewState
		wantError bool
	}{
		{"empty prompt", "", "", ViewPrompt, true},
		{"bad size", "a cat", "10x10", ViewPrompt, true},
		{"valid", "a cat", "512x512", ViewGenerating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = press(m, "n")
			m.promptInputs[PromptFieldPrompt].SetValue(tt.prompt)
			m.promptInputs[PromptFieldSize].SetValue(tt.size)

			m, cmd := press(m, "enter")
			if m.viewState != tt.wantView {
				t.Errorf("viewState = %v, want %v", m.viewState, tt.wantView)
			}
			if (m.errorMsg != "") != tt.wantError {
				t.Errorf("errorMsg = %q, wantError %v", m.errorMsg, tt.wantError)
			}
			if !tt.wantError && cmd == nil {
				t.Error("expected generation command")
			}
		})
	}
}

func TestSubmitPromptRequiresValidatedProfile(t *testing.T) {
	m := newTestModel(t)
	if err := m.session.Profiles().SetValidated(config.DefaultProfileName, false); err != nil {
		t.Fatal(err)
	}
	m, _ = press(m, "n")
	m.promptInputs[PromptFieldPrompt].SetValue("a cat")

	m, cmd := press(m, "enter")
	if m.viewState != ViewPrompt || cmd != nil {
		t.Errorf("viewState = %v, cmd nil = %v", m.viewState, cmd == nil)
	}
	if !strings.Contains(m.errorMsg, "not validated") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestGeneratingIgnoresKeys(t *testing.T) {
	m := newTestModel(t)
	m.viewState = ViewGenerating

	m, cmd := press(m, "q")
	if cmd != nil || m.viewState != ViewGenerating {
		t.Error("keys other than ctrl+c should be ignored while generating")
	}
}

func TestGenerationDone(t *testing.T) {
	payload := pngPayload(t, 4, 2)

	t.Run("success", func(t *testing.T) {
		m := newTestModel(t)
		entry := m.session.AddHistory("a cat", "", "flux", []string{payload, payload}, session.Metadata{Size: "4x2"})
		outcome := generation.Outcome{OK: true, Result: generation.NewGenerationResult(2, []generation.GeneratedImage{
			generation.NewImageFromBase64(payload), generation.NewImageFromBase64(payload),
		})}

		next, _ := m.Update(GenerationDoneMsg{Outcome: outcome, Entry: &entry})
		m = next.(Model)
		if m.viewState != ViewResults {
			t.Fatalf("viewState = %v, want ViewResults", m.viewState)
		}
		if len(m.resultInfo) != 2 || !strings.Contains(m.resultInfo[0], "4x2 PNG") {
			t.Errorf("resultInfo = %v", m.resultInfo)
		}
		if m.errorMsg != "" {
			t.Errorf("unexpected error %q", m.errorMsg)
		}
	})

	t.Run("partial", func(t *testing.T) {
		m := newTestModel(t)
		entry := m.session.AddHistory("a cat", "", "flux", []string{payload}, session.Metadata{})
		outcome := generation.Outcome{OK: true, Result: generation.NewGenerationResult(3, []generation.GeneratedImage{
			generation.NewImageFromBase64(payload),
		})}

		next, _ := m.Update(GenerationDoneMsg{Outcome: outcome, Entry: &entry})
		m = next.(Model)
		if !strings.Contains(m.errorMsg, "1 of 3") {
			t.Errorf("errorMsg = %q, want partial warning", m.errorMsg)
		}
	})

	t.Run("failure", func(t *testing.T) {
		m := newTestModel(t)
		m.viewState = ViewGenerating

		next, _ := m.Update(GenerationDoneMsg{Outcome: generation.Outcome{Reason: "HTTP 500"}})
		m = next.(Model)
		if m.viewState != ViewPrompt || m.errorMsg != "HTTP 500" {
			t.Errorf("viewState = %v, errorMsg = %q", m.viewState, m.errorMsg)
		}
	})

	t.Run("profile not validated", func(t *testing.T) {
		m := newTestModel(t)
		m.viewState = ViewGenerating

		err := fmt.Errorf("%w: %s", session.ErrProfileNotValidated, config.DefaultProfileName)
		next, _ := m.Update(GenerationDoneMsg{Err: err})
		m = next.(Model)
		if m.viewState != ViewPrompt || !strings.Contains(m.errorMsg, "not validated") {
			t.Errorf("viewState = %v, errorMsg = %q", m.viewState, m.errorMsg)
		}
	})
}

func TestResultFavoriteToggle(t *testing.T) {
	m := newTestModel(t)
	payload := pngPayload(t, 2, 2)
	entry := m.session.AddHistory("a cat", "", "flux", []string{payload, payload}, session.Metadata{})
	m.showResult(&entry)

	m, _ = press(m, "j", "f")
	if !m.session.IsFavorite(session.FavoriteID(entry.ID, 1)) {
		t.Fatal("image 2 should be a favorite")
	}
	if !strings.Contains(m.View(), "★") {
		t.Error("results view should mark the favorite")
	}

	m, _ = press(m, "f")
	if m.session.IsFavorite(session.FavoriteID(entry.ID, 1)) {
		t.Error("second toggle should remove the favorite")
	}
}

func TestResultExport(t *testing.T) {
	m := newTestModel(t)
	payload := pngPayload(t, 2, 2)
	entry := m.session.AddHistory("a cat", "", "flux", []string{payload}, session.Metadata{})
	m.showResult(&entry)

	_, cmd := press(m, "s")
	if cmd == nil {
		t.Fatal("expected export command")
	}
	msg, ok := cmd().(ExportedMsg)
	if !ok {
		t.Fatal("expected ExportedMsg")
	}
	if msg.Err != nil || len(msg.Paths) != 1 {
		t.Errorf("ExportedMsg = %+v", msg)
	}
}

func TestVariationFromHistory(t *testing.T) {
	m := newTestModel(t)
	entry := m.session.AddHistory("a red fox", "blurry", m.session.SelectedModel(), []string{"x"}, session.Metadata{Size: "768x1024", Count: 2, Style: "watercolor"})

	m, _ = press(m, "h", "v")
	if m.viewState != ViewPrompt {
		t.Fatalf("viewState = %v, want ViewPrompt", m.viewState)
	}
	data := GetPromptFormData(m.promptInputs)
	if data.Prompt != entry.Prompt || data.Size != "768x1024" || data.Count != "2" || data.Style != "watercolor" {
		t.Errorf("prompt form = %+v", data)
	}
}

func TestHistoryClear(t *testing.T) {
	m := newTestModel(t)
	m.session.AddHistory("a", "", "flux", []string{"x"}, session.Metadata{})

	m, _ = press(m, "h", "c")
	if len(m.session.History()) != 0 {
		t.Error("history should be empty")
	}
}

func TestFavoriteRemove(t *testing.T) {
	m := newTestModel(t)
	entry := m.session.AddHistory("a", "", "flux", []string{"x", "y"}, session.Metadata{})
	for i := range entry.Images {
		if err := m.session.AddFavorite(entry, i); err != nil {
			t.Fatalf("AddFavorite: %v", err)
		}
	}

	m, _ = press(m, "F", "G", "d")
	if got := len(m.session.Favorites()); got != 1 {
		t.Fatalf("favorites = %d, want 1", got)
	}
	if m.favoriteCursor != 0 {
		t.Errorf("favoriteCursor = %d, want 0", m.favoriteCursor)
	}
}

func TestModelsDiscovered(t *testing.T) {
	m := newTestModel(t)
	before := len(m.modelIDs)
	found := catalog.New(catalog.Describe("brand-new-model", "discovered", ""))

	next, _ := m.Update(ModelsDiscoveredMsg{Profile: "someone-else", Models: found})
	m = next.(Model)
	if len(m.modelIDs) != before {
		t.Error("stale discovery result should be ignored")
	}

	m.discovering = true
	next, _ = m.Update(ModelsDiscoveredMsg{Profile: m.session.ActiveProfile().Name, Models: found, Summary: "1 model"})
	m = next.(Model)
	if m.discovering {
		t.Error("discovering should be cleared")
	}
	if len(m.modelIDs) != before+1 {
		t.Errorf("modelIDs = %d, want %d", len(m.modelIDs), before+1)
	}
}

func TestProfileAddAndSave(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "P", "a")
	if m.viewState != ViewProfileForm {
		t.Fatalf("viewState = %v, want ViewProfileForm", m.viewState)
	}
	if m.editingName != config.NewProfileBaseName {
		t.Errorf("editingName = %q", m.editingName)
	}

	m.profileInputs[ProfileFieldName].SetValue("hf")
	m.profileInputs[ProfileFieldProvider].SetValue("huggingface")
	m.profileInputs[ProfileFieldBaseURL].SetValue("")
	m.profileInputs[ProfileFieldAPIKey].SetValue("hf_secret")
	m.profileInputs[ProfileFieldAuthMode].SetValue("")

	m, cmd := press(m, "enter")
	if m.viewState != ViewProfiles {
		t.Fatalf("viewState = %v, errorMsg = %q", m.viewState, m.errorMsg)
	}
	active := m.session.ActiveProfile()
	if active.Name != "hf" || active.Provider != "huggingface" || active.BaseURL == "" {
		t.Errorf("active profile = %+v", active)
	}
	if cmd == nil {
		t.Error("a provider change should trigger discovery")
	}
}

func TestProfileSaveRevalidates(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "P", "e")

	m, cmd := press(m, "enter")
	if m.viewState != ViewProfiles || !m.validating || cmd == nil {
		t.Fatalf("viewState = %v, validating = %v, cmd nil = %v", m.viewState, m.validating, cmd == nil)
	}
	if p, _ := m.session.Profiles().Get(config.DefaultProfileName); p.Validated {
		t.Error("saved profile should await validation")
	}

	var validation *ValidationMsg
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if v, ok := c().(ValidationMsg); ok {
				validation = &v
			}
		}
	}
	if validation == nil || validation.Profile != config.DefaultProfileName {
		t.Fatalf("validation = %+v, want a check of the saved profile", validation)
	}

	next, _ := m.Update(*validation)
	m = next.(Model)
	if p, _ := m.session.Profiles().Get(config.DefaultProfileName); !p.Validated {
		t.Error("profile should be validated after a passing check")
	}
}

func TestProfileFormValidationError(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "P", "e")
	m.profileInputs[ProfileFieldBaseURL].SetValue("not a url")

	m, _ = press(m, "enter")
	if m.viewState != ViewProfileForm || m.errorMsg == "" {
		t.Errorf("viewState = %v, errorMsg = %q", m.viewState, m.errorMsg)
	}
}

func TestProfileDelete(t *testing.T) {
	t.Run("last profile refused", func(t *testing.T) {
		m := newTestModel(t)
		m, _ = press(m, "P", "d")
		if m.viewState != ViewProfiles || m.errorMsg == "" {
			t.Errorf("viewState = %v, errorMsg = %q", m.viewState, m.errorMsg)
		}
	})

	t.Run("confirm", func(t *testing.T) {
		m := newTestModel(t)
		m.session.CreateProfile()
		m, _ = press(m, "P", "G", "d")
		if m.viewState != ViewDeleteProfile {
			t.Fatalf("viewState = %v, want ViewDeleteProfile", m.viewState)
		}
		m, _ = press(m, "y")
		if got := len(m.session.Profiles().List()); got != 1 {
			t.Errorf("profiles = %d, want 1", got)
		}
		if m.profileCursor != 0 {
			t.Errorf("profileCursor = %d, want 0", m.profileCursor)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		m := newTestModel(t)
		m.session.CreateProfile()
		m, _ = press(m, "P", "d", "n")
		if got := len(m.session.Profiles().List()); got != 2 {
			t.Errorf("profiles = %d, want 2", got)
		}
	})
}

func TestProfileSwitch(t *testing.T) {
	m := newTestModel(t)
	created := m.session.CreateProfile()
	if err := m.session.SwitchProfile(config.DefaultProfileName); err != nil {
		t.Fatal(err)
	}

	m, cmd := press(m, "P", "G", "enter")
	if got := m.session.ActiveProfile().Name; got != created.Name {
		t.Errorf("active = %q, want %q", got, created.Name)
	}
	if m.viewState != ViewModels || cmd == nil {
		t.Errorf("viewState = %v, cmd nil = %v", m.viewState, cmd == nil)
	}
}

func TestProfileValidate(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(m, "P", "t")
	if cmd == nil || !m.validating {
		t.Fatal("expected validation to start")
	}

	next, _ := m.Update(ValidationMsg{Profile: config.DefaultProfileName, OK: false, Message: "HTTP 401"})
	m = next.(Model)
	if m.validating {
		t.Error("validating should be cleared")
	}
	if p, _ := m.session.Profiles().Get(config.DefaultProfileName); p.Validated {
		t.Error("profile should be marked unvalidated")
	}
	if !strings.Contains(m.errorMsg, "HTTP 401") {
		t.Errorf("errorMsg = %q", m.errorMsg)
	}
}

func TestViewRendersEveryState(t *testing.T) {
	tests := []struct {
		state ViewState
		want  string
	}{
		{ViewModels, "Image Studio"},
		{ViewPrompt, "New Image"},
		{ViewGenerating, "Generating"},
		{ViewResults, "Results"},
		{ViewHistory, "History"},
		{ViewFavorites, "Favorites"},
		{ViewProfiles, "Profiles"},
		{ViewDeleteProfile, "Delete Profile"},
		{ViewHelp, "Keyboard Shortcuts"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m := newTestModel(t)
			m.viewState = tt.state
			if out := m.View(); !strings.Contains(out, tt.want) {
				t.Errorf("View() missing %q", tt.want)
			}
		})
	}
}

func TestProfileFormView(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "P", "e")
	if out := m.View(); !strings.Contains(out, "Edit Profile") {
		t.Error("expected profile editor")
	}
}

func TestGetEffectiveWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 40},
		{60, 58},
		{120, 80},
	}
	for _, tt := range tests {
		m := Model{width: tt.width}
		if got := m.getEffectiveWidth(40); got != tt.want {
			t.Errorf("getEffectiveWidth() with width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}
