// Package generation turns a prompt into images using the strategy that
// matches the active profile's provider.
package generation

import (
	"encoding/base64"
)

// Options carries provider-specific advanced settings. Nil fields are omitted
// from requests.
type Options struct {
	// open endpoint flags
	Enhance *bool `json:"enhance,omitempty"`
	Private *bool `json:"private,omitempty"`
	NoLogo  *bool `json:"nologo,omitempty"`
	Safe    *bool `json:"safe,omitempty"`

	// inference overrides
	Steps     *int     `json:"num_inference_steps,omitempty"`
	Guidance  *float64 `json:"guidance_scale,omitempty"`
	Scheduler string   `json:"scheduler,omitempty"`
}

// Params describes a single generation request.
type Params struct {
	Prompt         string
	NegativePrompt string
	Model          string
	Size           string // "WIDTHxHEIGHT"
	Count          int
	Options        Options
}

// ClampCount limits n to 1..limit.
func ClampCount(n, limit int) int {
	if n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

// GeneratedImage is one base64-encoded image.
type GeneratedImage struct {
	B64JSON string
}

// NewImageFromBytes encodes raw image bytes.
func NewImageFromBytes(data []byte) GeneratedImage {
	return GeneratedImage{B64JSON: base64.StdEncoding.EncodeToString(data)}
}

// NewImageFromBase64 wraps an already encoded payload.
func NewImageFromBase64(b64 string) GeneratedImage {
	return GeneratedImage{B64JSON: b64}
}

// GenerationResult holds the images produced for one request.
type GenerationResult struct {
	Images    []GeneratedImage
	Requested int
}

// NewGenerationResult builds a result for a request of requested images.
func NewGenerationResult(requested int, images []GeneratedImage) *GenerationResult {
	return &GenerationResult{Images: images, Requested: requested}
}

// Payloads returns the base64 strings in order.
func (r *GenerationResult) Payloads() []string {
	out := make([]string, len(r.Images))
	for i, img := range r.Images {
		out[i] = img.B64JSON
	}
	return out
}

// Outcome reports whether a generation succeeded. On failure Reason holds a
// user-facing message and Result is nil.
type Outcome struct {
	OK     bool
	Result *GenerationResult
	Reason string
}

// Partial reports a successful outcome with fewer images than requested.
func (o Outcome) Partial() bool {
	return o.OK && o.Result != nil && len(o.Result.Images) < o.Result.Requested
}

func succeeded(requested int, images []GeneratedImage) Outcome {
	return Outcome{OK: true, Result: NewGenerationResult(requested, images)}
}

func failed(reason string) Outcome {
	return Outcome{Reason: reason}
}
