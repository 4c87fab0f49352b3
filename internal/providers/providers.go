package providers

import (
	"errors"
	"fmt"
	"strings"

	"imgstudio/internal/catalog"
)

// Kind selects the request strategy and discovery variant for a provider.
type Kind int

const (
	// KindOpen is an open GET endpoint with a public model list.
	KindOpen Kind = iota
	// KindInference is an authenticated inference host with a curated model subset.
	KindInference
	// KindCompatible is an OpenAI-compatible images API.
	KindCompatible
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindInference:
		return "inference"
	case KindCompatible:
		return "compatible"
	default:
		return "unknown"
	}
}

// Provider identifiers.
const (
	Pollinations     = "pollinations"
	NavyAI           = "navyai"
	HuggingFace      = "huggingface"
	OpenAICompatible = "openai-compatible"
)

// ErrUnknownProvider is returned by Get for unregistered names.
var ErrUnknownProvider = errors.New("unknown provider")

// Provider defines the standard interface for image-generation services
type Provider interface {
	// ID returns the registry key (e.g., "pollinations")
	ID() string
	// Label returns the human-readable name
	Label() string
	Icon() string
	Description() string
	// DefaultBaseURL returns the default endpoint for the provider
	DefaultBaseURL() string
	Kind() Kind
	// Models returns the hardcoded model catalog. Callers get a copy.
	Models() catalog.Catalog
	// ValidateCredentials checks that the fields the provider needs are present
	ValidateCredentials(apiKey, token string) error
}

// registry stores all registered providers; order keeps List stable.
var (
	registry = make(map[string]Provider)
	order    []string
)

// Register registers a new provider
func Register(p Provider) {
	if _, exists := registry[p.ID()]; !exists {
		order = append(order, p.ID())
	}
	registry[p.ID()] = p
}

// Get returns a provider by id
func Get(id string) (Provider, error) {
	p, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}
	return p, nil
}

// MustGet returns a provider by id and panics if it is not registered
func MustGet(id string) Provider {
	p, err := Get(id)
	if err != nil {
		panic(err)
	}
	return p
}

// List returns all registered provider ids in registration order
func List() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// NormalizeBaseURL trims whitespace and trailing slashes.
func NormalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// BaseURLFor returns the normalized baseURL, or the provider's default when
// baseURL is blank.
func BaseURLFor(id, baseURL string) string {
	if u := NormalizeBaseURL(baseURL); u != "" {
		return u
	}
	if p, err := Get(id); err == nil {
		return p.DefaultBaseURL()
	}
	return ""
}

// HardcodedModels returns the static catalog for a provider, or BaseModels
// when the provider is unknown.
func HardcodedModels(id string) catalog.Catalog {
	p, err := Get(id)
	if err != nil {
		return BaseModels()
	}
	return p.Models()
}

// MergeForProvider merges discovered models over the provider's hardcoded catalog.
func MergeForProvider(id string, discovered catalog.Catalog) catalog.Catalog {
	return catalog.Merge(HardcodedModels(id), discovered)
}

type service struct {
	id          string
	label       string
	icon        string
	description string
	baseURL     string
	kind        Kind
	models      catalog.Catalog
	validate    func(apiKey, token string) error
}

func (s *service) ID() string              { return s.id }
func (s *service) Label() string           { return s.label }
func (s *service) Icon() string            { return s.icon }
func (s *service) Description() string     { return s.description }
func (s *service) DefaultBaseURL() string  { return s.baseURL }
func (s *service) Kind() Kind              { return s.kind }
func (s *service) Models() catalog.Catalog { return s.models.Clone() }

func (s *service) ValidateCredentials(apiKey, token string) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(apiKey, token)
}

func requireAPIKey(name string) func(string, string) error {
	return func(apiKey, _ string) error {
		if strings.TrimSpace(apiKey) == "" {
			return fmt.Errorf("%s: must provide API key", name)
		}
		return nil
	}
}

func init() {
	Register(&service{
		id:          Pollinations,
		label:       "Pollinations.ai Studio",
		icon:        "🌸",
		description: "Free image generation service with many community models",
		baseURL:     "https://image.pollinations.ai",
		kind:        KindOpen,
		models:      pollinationsModels,
	})
	Register(&service{
		id:          NavyAI,
		label:       "NavyAI",
		icon:        "⚓",
		description: "Commercial AI API platform",
		baseURL:     "https://api.navy/v1",
		kind:        KindCompatible,
		models:      navyModels,
		validate:    requireAPIKey("navyai"),
	})
	Register(&service{
		id:          HuggingFace,
		label:       "Hugging Face Inference",
		icon:        "🤗",
		description: "Open model inference platform",
		baseURL:     "https://api-inference.huggingface.co",
		kind:        KindInference,
		models:      huggingFaceModels,
		validate:    requireAPIKey("huggingface"),
	})
	Register(&service{
		id:          OpenAICompatible,
		label:       "OpenAI Compatible API",
		icon:        "🤖",
		description: "Any endpoint implementing the OpenAI images API",
		baseURL:     "https://api.openai.com/v1",
		kind:        KindCompatible,
		models:      openAIModels,
		validate:    requireAPIKey("openai-compatible"),
	})
}
