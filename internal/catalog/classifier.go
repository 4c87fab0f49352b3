package catalog

import (
	"strings"
	"unicode"
)

type keywordRule struct {
	keywords []string
	category string
}

// categoryRules are evaluated top to bottom; the first match wins.
var categoryRules = []keywordRule{
	{keywords: []string{"flux", "kontext"}, category: CategoryFLUX},
	{keywords: []string{"stable-diffusion", "stable_diffusion", "sd-", "sdxl"}, category: CategoryStableDiffusion},
	{keywords: []string{"anime", "waifu", "anything", "counterfeit"}, category: CategoryAnime},
	{keywords: []string{"midjourney", "dalle", "playground", "leonardo"}, category: CategoryProfessional},
	{keywords: []string{"analog", "synthwave", "cyberpunk", "pixel"}, category: CategoryStyle},
}

// Icons used by IconFor.
const (
	IconFLUX         = "⚡"
	IconStable       = "💎"
	IconDALLE        = "🤖"
	IconMidjourney   = "🎭"
	IconAnime        = "🎌"
	IconStyle        = "🎨"
	IconProfessional = "🏆"
	IconDefault      = "🌟"
)

type iconRule struct {
	keywords []string
	icon     string
}

var iconRules = []iconRule{
	{keywords: []string{"flux"}, icon: IconFLUX},
	{keywords: []string{"stable", "sd"}, icon: IconStable},
	{keywords: []string{"dall"}, icon: IconDALLE},
	{keywords: []string{"midjourney"}, icon: IconMidjourney},
	{keywords: []string{"anime", "waifu"}, icon: IconAnime},
}

var categoryIcons = map[string]string{
	CategoryStyle:        IconStyle,
	CategoryProfessional: IconProfessional,
}

// displayPrefixes are removed by FormatDisplayName.
var displayPrefixes = []string{"stabilityai/", "runwayml/", "black-forest-labs/"}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Categorize maps a model id to a category by ordered keyword matching.
func Categorize(id string) string {
	lower := strings.ToLower(id)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return CategoryCommunity
}

// IconFor picks an icon from the id first, then from the category.
func IconFor(id, category string) string {
	lower := strings.ToLower(id)
	for _, rule := range iconRules {
		if containsAny(lower, rule.keywords) {
			return rule.icon
		}
	}
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return IconDefault
}

// FormatDisplayName turns "stabilityai/stable-diffusion-xl-base-1.0" into
// "Stable Diffusion Xl Base 1.0".
func FormatDisplayName(id string) string {
	name := id
	for _, p := range displayPrefixes {
		name = strings.ReplaceAll(name, p, "")
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Describe classifies id and builds a descriptor. descriptionPrefix is
// prepended to "<category> model", e.g. "HF" gives "HF FLUX model".
func Describe(id, displaySource, descriptionPrefix string) Descriptor {
	category := Categorize(id)
	if displaySource == "" {
		displaySource = id
	}
	return Descriptor{
		ID:          id,
		Name:        FormatDisplayName(displaySource),
		Icon:        IconFor(id, category),
		Category:    category,
		Description: descriptionPrefix + " " + category + " model",
	}
}
