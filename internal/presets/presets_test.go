package presets

import (
	"testing"

	"imgstudio/internal/generation"
)

func TestApplyStyle(t *testing.T) {
	tests := []struct {
		prompt string
		style  string
		want   string
	}{
		{"a cat", StyleNone, "a cat"},
		{"a cat", "", "a cat"},
		{"a cat", "unknown", "a cat"},
		{"a cat", "pixel-art", "a cat, pixel art, 8-bit style, retro gaming aesthetic, low resolution, sprite art"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			if got := ApplyStyle(tt.prompt, tt.style); got != tt.want {
				t.Errorf("ApplyStyle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", DefaultSize, false},
		{"1344x768", "1344x768", false},
		{"640X640", "640x640", false},
		{"100x100", "", true},
		{"4096x1024", "", true},
		{"wide", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolveSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveSize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNegativePrompt(t *testing.T) {
	if got := NegativePrompt("anime"); got != "realistic, photographic, 3d render, western cartoon, bad anatomy, low quality" {
		t.Errorf("NegativePrompt(anime) = %q", got)
	}
	if got := NegativePrompt("no text"); got != "no text" {
		t.Errorf("NegativePrompt(free text) = %q", got)
	}
}

func TestPresetKeysUnique(t *testing.T) {
	for name, list := range map[string][]Preset{"sizes": Sizes, "styles": Styles, "negative": NegativePrompts} {
		seen := map[string]bool{}
		for _, p := range list {
			if seen[p.Key] {
				t.Errorf("%s: duplicate key %q", name, p.Key)
			}
			seen[p.Key] = true
		}
	}
}

func TestValidateInferenceOptions(t *testing.T) {
	steps := func(n int) *int { return &n }
	guidance := func(f float64) *float64 { return &f }

	tests := []struct {
		name    string
		opts    generation.Options
		wantErr bool
	}{
		{"empty", generation.Options{}, false},
		{"valid", generation.Options{Steps: steps(50), Guidance: guidance(7.5), Scheduler: "DDIM"}, false},
		{"steps low", generation.Options{Steps: steps(5)}, true},
		{"guidance high", generation.Options{Guidance: guidance(25)}, true},
		{"scheduler", generation.Options{Scheduler: "LMS"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateInferenceOptions(tt.opts); (err != nil) != tt.wantErr {
				t.Errorf("ValidateInferenceOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultOpenEndpointOptions(t *testing.T) {
	o := DefaultOpenEndpointOptions()
	if !*o.Enhance || !*o.Private || !*o.NoLogo || *o.Safe {
		t.Errorf("DefaultOpenEndpointOptions() = %+v", o)
	}
}
