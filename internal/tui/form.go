package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"imgstudio/config"
	"imgstudio/config/models"
	"imgstudio/config/validation"
	"imgstudio/internal/generation"
	"imgstudio/internal/presets"
	"imgstudio/internal/providers"
	"imgstudio/internal/utils"
)

// Profile form field indexes
const (
	ProfileFieldName = iota
	ProfileFieldProvider
	ProfileFieldBaseURL
	ProfileFieldAPIKey
	ProfileFieldAuthMode
	ProfileFieldReferrer
	ProfileFieldToken
	ProfileFieldCount
)

// Prompt form field indexes
const (
	PromptFieldPrompt = iota
	PromptFieldNegative
	PromptFieldSize
	PromptFieldCount
	PromptFieldStyle
	PromptFieldTotal
)

// ProfileFormData represents the data collected from the profile form
type ProfileFormData struct {
	Name     string
	Provider string
	BaseURL  string
	APIKey   string
	AuthMode string
	Referrer string
	Token    string
}

// Validate validates the form data
func (f *ProfileFormData) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if _, err := providers.Get(strings.TrimSpace(f.Provider)); err != nil {
		return fmt.Errorf("unknown provider '%s'", f.Provider)
	}
	if strings.TrimSpace(f.BaseURL) != "" && !utils.ValidateURL(strings.TrimSpace(f.BaseURL)) {
		return errors.New("invalid URL format")
	}
	if !models.AuthMode(strings.TrimSpace(f.AuthMode)).Valid() {
		return fmt.Errorf("auth mode must be free, referrer or token")
	}
	return nil
}

// Profile converts the form into a profile. A blank URL takes the provider default.
func (f *ProfileFormData) Profile() models.Profile {
	provider := strings.TrimSpace(f.Provider)
	return models.Profile{
		Name:     strings.TrimSpace(f.Name),
		Provider: provider,
		BaseURL:  providers.BaseURLFor(provider, f.BaseURL),
		APIKey:   strings.TrimSpace(f.APIKey),
		AuthMode: models.AuthMode(strings.TrimSpace(f.AuthMode)),
		Referrer: strings.TrimSpace(f.Referrer),
		Token:    strings.TrimSpace(f.Token),
	}
}

// ProfileFormFrom fills form data from an existing profile
func ProfileFormFrom(p models.Profile) ProfileFormData {
	return ProfileFormData{
		Name:     p.Name,
		Provider: p.Provider,
		BaseURL:  p.BaseURL,
		APIKey:   p.APIKey,
		AuthMode: string(p.EffectiveAuthMode()),
		Referrer: p.Referrer,
		Token:    p.Token,
	}
}

// PromptFormData represents the data collected from the prompt form
type PromptFormData struct {
	Prompt   string
	Negative string
	Size     string
	Count    string
	Style    string
}

// Request validates the form and builds a generation request. Options
// default per provider kind.
func (f *PromptFormData) Request(kind providers.Kind) (generation.Params, string, error) {
	prompt := strings.TrimSpace(f.Prompt)
	if err := validation.NewInputValidator().ValidatePrompt(prompt); err != nil {
		return generation.Params{}, "", err
	}
	size, err := presets.ResolveSize(strings.TrimSpace(f.Size))
	if err != nil {
		return generation.Params{}, "", err
	}

	count := 1
	if s := strings.TrimSpace(f.Count); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return generation.Params{}, "", fmt.Errorf("count must be a number")
		}
		count = generation.ClampCount(n, config.MaxBatchSize)
	}

	style := strings.TrimSpace(f.Style)
	if style == "" {
		style = presets.StyleNone
	}
	if _, ok := presets.Find(presets.Styles, style); !ok {
		return generation.Params{}, "", fmt.Errorf("unknown style '%s'", style)
	}

	params := generation.Params{
		Prompt:         prompt,
		NegativePrompt: presets.NegativePrompt(strings.TrimSpace(f.Negative)),
		Size:           size,
		Count:          count,
	}
	if kind == providers.KindOpen {
		params.Options = presets.DefaultOpenEndpointOptions()
	}
	return params, style, nil
}

// Form styles
var (
	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	formFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 48
	in.Prompt = ""
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

// ProfileInputs creates the profile form inputs
func ProfileInputs() []textinput.Model {
	inputs := make([]textinput.Model, ProfileFieldCount)
	inputs[ProfileFieldName] = newInput("my-profile", 64, false)
	inputs[ProfileFieldProvider] = newInput(providers.Pollinations, 32, false)
	inputs[ProfileFieldBaseURL] = newInput("provider default", 256, false)
	inputs[ProfileFieldAPIKey] = newInput("API key", 256, true)
	inputs[ProfileFieldAuthMode] = newInput(string(models.AuthFree), 16, false)
	inputs[ProfileFieldReferrer] = newInput("my-app.example.com", 256, false)
	inputs[ProfileFieldToken] = newInput("Pollinations token", 256, true)
	inputs[ProfileFieldName].Focus()
	return inputs
}

// PromptInputs creates the prompt form inputs
func PromptInputs() []textinput.Model {
	inputs := make([]textinput.Model, PromptFieldTotal)
	inputs[PromptFieldPrompt] = newInput("a lighthouse at dusk, dramatic sky", 2000, false)
	inputs[PromptFieldNegative] = newInput("preset key or text (optional)", 1000, false)
	inputs[PromptFieldSize] = newInput(presets.DefaultSize, 16, false)
	inputs[PromptFieldCount] = newInput("1", 2, false)
	inputs[PromptFieldStyle] = newInput(presets.StyleNone, 32, false)
	inputs[PromptFieldPrompt].Focus()
	return inputs
}

// GetProfileFormData extracts ProfileFormData from form inputs
func GetProfileFormData(inputs []textinput.Model) ProfileFormData {
	return ProfileFormData{
		Name:     inputs[ProfileFieldName].Value(),
		Provider: inputs[ProfileFieldProvider].Value(),
		BaseURL:  inputs[ProfileFieldBaseURL].Value(),
		APIKey:   inputs[ProfileFieldAPIKey].Value(),
		AuthMode: inputs[ProfileFieldAuthMode].Value(),
		Referrer: inputs[ProfileFieldReferrer].Value(),
		Token:    inputs[ProfileFieldToken].Value(),
	}
}

// SetProfileFormData populates form inputs with existing data
func SetProfileFormData(inputs []textinput.Model, data ProfileFormData) {
	inputs[ProfileFieldName].SetValue(data.Name)
	inputs[ProfileFieldProvider].SetValue(data.Provider)
	inputs[ProfileFieldBaseURL].SetValue(data.BaseURL)
	inputs[ProfileFieldAPIKey].SetValue(data.APIKey)
	inputs[ProfileFieldAuthMode].SetValue(data.AuthMode)
	inputs[ProfileFieldReferrer].SetValue(data.Referrer)
	inputs[ProfileFieldToken].SetValue(data.Token)
}

// GetPromptFormData extracts PromptFormData from form inputs
func GetPromptFormData(inputs []textinput.Model) PromptFormData {
	return PromptFormData{
		Prompt:   inputs[PromptFieldPrompt].Value(),
		Negative: inputs[PromptFieldNegative].Value(),
		Size:     inputs[PromptFieldSize].Value(),
		Count:    inputs[PromptFieldCount].Value(),
		Style:    inputs[PromptFieldStyle].Value(),
	}
}

// SetPromptParams loads request params into the prompt form
func SetPromptParams(inputs []textinput.Model, p generation.Params, style string) {
	inputs[PromptFieldPrompt].SetValue(p.Prompt)
	inputs[PromptFieldNegative].SetValue(p.NegativePrompt)
	inputs[PromptFieldSize].SetValue(p.Size)
	inputs[PromptFieldCount].SetValue(strconv.Itoa(p.Count))
	inputs[PromptFieldStyle].SetValue(style)
}

var (
	profileLabels = []string{"Name:", "Provider:", "Base URL:", "API Key:", "Auth Mode:", "Referrer:", "Token:"}
	profileHints  = []string{
		"Unique profile name",
		"pollinations, navyai, huggingface or openai-compatible",
		"Leave empty for the provider default",
		"Required for every provider except Pollinations",
		"Pollinations only: free, referrer or token",
		"Pollinations referrer mode",
		"Pollinations token mode",
	}
	promptLabels = []string{"Prompt:", "Negative:", "Size:", "Count:", "Style:"}
	promptHints  = []string{
		"Describe the image",
		"basic, photo, portrait, anime, art, architecture or free text",
		fmt.Sprintf("Preset like 1024x1024 or custom WxH (%d-%d)", presets.MinCustomSize, presets.MaxCustomSize),
		fmt.Sprintf("1-%d images", config.MaxBatchSize),
		"Style preset key, e.g. watercolor (see `imgstudio presets styles`)",
	}
)

// RenderForm renders a form with labels and the focused field's hint
func RenderForm(inputs []textinput.Model, labels, hints []string, focusIndex int, title, errorMsg, footer string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")

	for i, input := range inputs {
		if i == focusIndex {
			b.WriteString(formFocusedStyle.Render(labels[i]))
		} else {
			b.WriteString(formLabelStyle.Render(labels[i]))
		}
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n")

		if i == focusIndex {
			b.WriteString(formLabelStyle.Render(""))
			b.WriteString(" ")
			b.WriteString(formHintStyle.Render(hints[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(formErrorStyle.Render("✗ " + errorMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(footer))

	return b.String()
}

// NextFormField moves focus to the next form field
func NextFormField(inputs []textinput.Model, currentFocus int) int {
	inputs[currentFocus].Blur()
	nextFocus := (currentFocus + 1) % len(inputs)
	inputs[nextFocus].Focus()
	return nextFocus
}

// PrevFormField moves focus to the previous form field
func PrevFormField(inputs []textinput.Model, currentFocus int) int {
	inputs[currentFocus].Blur()
	prevFocus := currentFocus - 1
	if prevFocus < 0 {
		prevFocus = len(inputs) - 1
	}
	inputs[prevFocus].Focus()
	return prevFocus
}
