package providers

import (
	"errors"
	"testing"

	"imgstudio/internal/catalog"
)

func TestRegistry(t *testing.T) {
	want := []string{Pollinations, NavyAI, HuggingFace, OpenAICompatible}
	got := List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	t.Run("unknown provider", func(t *testing.T) {
		_, err := Get("midjourney-direct")
		if !errors.Is(err, ErrUnknownProvider) {
			t.Errorf("Get() error = %v, want ErrUnknownProvider", err)
		}
	})
}

func TestProviderKinds(t *testing.T) {
	tests := []struct {
		id      string
		kind    Kind
		baseURL string
		models  int
	}{
		{Pollinations, KindOpen, "https://image.pollinations.ai", 35},
		{NavyAI, KindCompatible, "https://api.navy/v1", 5},
		{HuggingFace, KindInference, "https://api-inference.huggingface.co", 4},
		{OpenAICompatible, KindCompatible, "https://api.openai.com/v1", 2},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, err := Get(tt.id)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if p.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", p.Kind(), tt.kind)
			}
			if p.DefaultBaseURL() != tt.baseURL {
				t.Errorf("DefaultBaseURL() = %q, want %q", p.DefaultBaseURL(), tt.baseURL)
			}
			if p.Models().Len() != tt.models {
				t.Errorf("Models().Len() = %d, want %d", p.Models().Len(), tt.models)
			}
		})
	}
}

func TestModelsReturnsCopy(t *testing.T) {
	p, _ := Get(Pollinations)
	c := p.Models()
	c.Set(catalog.Descriptor{ID: "injected"})

	if p.Models().Has("injected") {
		t.Error("mutating the returned catalog changed the registry")
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		id      string
		apiKey  string
		wantErr bool
	}{
		{Pollinations, "", false},
		{NavyAI, "", true},
		{NavyAI, "sk-navy", false},
		{HuggingFace, "  ", true},
		{HuggingFace, "hf_abc", false},
		{OpenAICompatible, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.apiKey, func(t *testing.T) {
			p, _ := Get(tt.id)
			err := p.ValidateCredentials(tt.apiKey, "")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHardcodedModels(t *testing.T) {
	if got := HardcodedModels("nope"); got.Len() != 3 || !got.Has("flux.1-schnell") {
		t.Errorf("HardcodedModels(unknown) = %v, want base models", got.Keys())
	}
	if got := HardcodedModels(OpenAICompatible); !got.Has("dall-e-3") {
		t.Errorf("HardcodedModels(openai-compatible) missing dall-e-3")
	}
}

func TestBaseURLFor(t *testing.T) {
	if got := BaseURLFor(NavyAI, ""); got != "https://api.navy/v1" {
		t.Errorf("BaseURLFor(navyai, \"\") = %q", got)
	}
	if got := BaseURLFor(NavyAI, "https://proxy.local/v1/"); got != "https://proxy.local/v1" {
		t.Errorf("BaseURLFor(navyai, proxy) = %q", got)
	}
	if got := BaseURLFor("nope", " "); got != "" {
		t.Errorf("BaseURLFor(unknown) = %q", got)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := map[string]string{
		"https://api.navy/v1/": "https://api.navy/v1",
		" https://x.io// ":     "https://x.io",
		"https://x.io":         "https://x.io",
	}
	for in, want := range tests {
		if got := NormalizeBaseURL(in); got != want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet(unknown) did not panic")
		}
	}()
	MustGet("nope")
}

func TestMergeForProvider(t *testing.T) {
	discovered := catalog.New(
		catalog.Descriptor{ID: "dall-e-3", Name: "Replaced", Category: "OpenAI"},
		catalog.Descriptor{ID: "flux-pro-api", Name: "Flux Pro Api", Category: catalog.CategoryFLUX},
	)
	got := MergeForProvider(OpenAICompatible, discovered)

	want := []string{"dall-e-3", "dall-e-2", "flux-pro-api"}
	keys := got.Keys()
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
	if d, _ := got.Get("dall-e-3"); d.Name != "Replaced" {
		t.Errorf("discovered entry did not win: %+v", d)
	}

	if base := MergeForProvider("unknown", catalog.Catalog{}); base.Len() != 3 {
		t.Errorf("unknown provider merge Len() = %d, want 3", base.Len())
	}
}
