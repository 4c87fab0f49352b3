package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up        key.Binding // k - move up
	Down      key.Binding // j - move down
	Top       key.Binding // g - jump to top
	Bottom    key.Binding // G - jump to bottom
	Select    key.Binding // Enter - select
	Prompt    key.Binding // n - new prompt
	Models    key.Binding // m - model list
	History   key.Binding // h - history
	Favorites key.Binding // F - favorites
	Profiles  key.Binding // P - profiles
	Discover  key.Binding // r - rediscover models
	Favorite  key.Binding // f - toggle favorite
	Save      key.Binding // s - save to disk
	Variation key.Binding // v - re-submit
	Add       key.Binding // a - add profile
	Edit      key.Binding // e - edit profile
	Delete    key.Binding // d - delete
	Validate  key.Binding // t - validate credentials
	Clear     key.Binding // c - clear list
	Help      key.Binding // ? - help
	Quit      key.Binding // q - quit
	Cancel    key.Binding // Esc - back
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "select")),
		Prompt:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new prompt")),
		Models:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "models")),
		History:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Favorites: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites")),
		Profiles:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "profiles")),
		Discover:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rediscover models")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save to disk")),
		Variation: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "variation")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add profile")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit profile")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Validate:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "validate")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back")),
	}
}

// ShortHelp returns short help text
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Prompt, k.History, k.Favorites, k.Profiles, k.Help, k.Quit}
}

// FullHelp returns full help text
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Select, k.Cancel},
		{k.Prompt, k.Models, k.History, k.Favorites, k.Profiles, k.Discover},
		{k.Favorite, k.Save, k.Variation, k.Clear},
		{k.Add, k.Edit, k.Delete, k.Validate, k.Help, k.Quit},
	}
}
