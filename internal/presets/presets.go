// Package presets holds the built-in image sizes, style presets, negative
// prompt presets and advanced option ranges.
package presets

import (
	"fmt"
	"strings"

	"imgstudio/config/validation"
	"imgstudio/internal/generation"
)

// Preset is a named value with a display label.
type Preset struct {
	Key   string
	Label string
	Value string
}

// StyleNone disables style composition.
const StyleNone = "none"

// Custom size bounds.
const (
	MinCustomSize  = 256
	MaxCustomSize  = 2048
	CustomSizeStep = 64
	DefaultSize    = "1024x1024"
)

// Sizes lists the size presets; Value is the "WxH" string.
var Sizes = []Preset{
	{"512x512", "SD standard (1:1)", "512x512"},
	{"768x768", "SDXL standard (1:1)", "768x768"},
	{"1024x1024", "Square (1:1)", "1024x1024"},
	{"1080x1080", "Instagram post (1:1)", "1080x1080"},
	{"512x768", "SD portrait (2:3)", "512x768"},
	{"768x1024", "SDXL portrait (3:4)", "768x1024"},
	{"1080x1350", "Instagram portrait (4:5)", "1080x1350"},
	{"1080x1920", "Instagram story (9:16)", "1080x1920"},
	{"896x1152", "Portrait mode (7:9)", "896x1152"},
	{"768x512", "SD landscape (3:2)", "768x512"},
	{"1024x768", "SDXL landscape (4:3)", "1024x768"},
	{"1200x630", "Facebook landscape (1.91:1)", "1200x630"},
	{"1536x640", "Ultra-wide banner (2.4:1)", "1536x640"},
	{"1152x896", "Landscape mode (9:7)", "1152x896"},
	{"640x1536", "Tall portrait (5:12)", "640x1536"},
	{"1344x768", "Widescreen (16:9)", "1344x768"},
	{"832x1216", "Book page (13:19)", "832x1216"},
}

// Styles lists the style presets; Value is appended to the prompt.
var Styles = []Preset{
	{StyleNone, "None", ""},
	{"cinematic", "Cinematic", "cinematic, dramatic lighting, high detail, sharp focus, epic scene, movie still"},
	{"anime", "Anime", "anime, manga style, vibrant colors, clean line art, studio ghibli style, cel shading"},
	{"cyberpunk", "Cyberpunk", "cyberpunk, neon lights, futuristic city, high-tech, Blade Runner style, dystopian"},
	{"portrait", "Portrait photography", "portrait photography, professional headshot, studio lighting, bokeh background, 85mm lens"},
	{"street", "Street photography", "street photography, candid moment, urban setting, documentary style, natural lighting"},
	{"landscape", "Landscape photography", "landscape photography, golden hour lighting, wide angle view, nature scenery, HDR"},
	{"macro", "Macro photography", "macro photography, extreme close-up, detailed textures, shallow depth of field"},
	{"black-and-white", "Black and white", "black and white photography, monochrome, high contrast, dramatic shadows"},
	{"impressionism", "Impressionism", "impressionism, soft brushstrokes, natural light, Monet style, plein air painting"},
	{"surrealism", "Surrealism", "surrealism, dreamlike imagery, impossible scenes, Salvador Dali style, melting reality"},
	{"pop-art", "Pop art", "pop art, bold colors, comic book style, Andy Warhol aesthetic, screen printing effect"},
	{"abstract-expressionism", "Abstract expressionism", "abstract expressionism, emotional brushwork, Jackson Pollock style, paint splatters"},
	{"cubism", "Cubism", "cubism, geometric shapes, fragmented perspective, Pablo Picasso style, analytical"},
	{"art-nouveau", "Art nouveau", "art nouveau, ornate decorations, flowing organic lines, Alphonse Mucha style"},
	{"ink-wash", "Ink wash", "traditional Chinese ink painting, brush strokes, minimalist zen aesthetic, black ink on rice paper"},
	{"watercolor", "Watercolor", "watercolor painting, soft transparent washes, wet-on-wet technique, delicate colors"},
	{"oil-painting", "Oil painting", "oil painting, thick impasto, rich textures, renaissance style, classical technique"},
	{"sketch", "Pencil sketch", "pencil sketch, graphite drawing, crosshatching, detailed line work, academic drawing"},
	{"3d-render", "3D render", "3D render, octane rendering, photorealistic, volumetric lighting, global illumination"},
	{"pixel-art", "Pixel art", "pixel art, 8-bit style, retro gaming aesthetic, low resolution, sprite art"},
	{"low-poly", "Low poly", "low poly art, geometric shapes, minimal vertices, isometric view, faceted surfaces"},
	{"vector", "Vector illustration", "vector illustration, clean geometric lines, flat design, scalable graphics"},
	{"steampunk", "Steampunk", "steampunk aesthetic, Victorian era meets technology, brass gears, copper pipes, clockwork"},
	{"cyberpunk-street", "Cyberpunk street", "cyberpunk style, neon-soaked streets, high-tech low-life, neural implants, megacorp"},
	{"solarpunk", "Solarpunk", "solarpunk, ecological futurism, sustainable technology, green architecture, hopeful future"},
	{"vaporwave", "Vaporwave", "vaporwave aesthetic, 80s nostalgia, neon grids, palm trees, retro futurism"},
	{"fantasy", "Fantasy", "fantasy art, magical creatures, epic landscapes, detailed armor, mystical atmosphere"},
	{"dark-fantasy", "Dark fantasy", "dark fantasy, gothic horror, ominous mood, dramatic shadows, supernatural elements"},
	{"sci-fi", "Science fiction", "science fiction art, futuristic technology, space scenes, alien worlds, concept art"},
	{"american-comic", "American comic", "American comic book style, bold outlines, dynamic poses, superhero aesthetic, halftone dots"},
	{"manga", "Manga", "manga style, detailed line art, expressive characters, screen tones, Japanese comics"},
	{"european-comic", "European comic", "European comic art, detailed backgrounds, realistic proportions, graphic novel style"},
	{"bauhaus", "Bauhaus", "Bauhaus design, geometric minimalism, functional aesthetics, primary colors, clean typography"},
	{"art-deco", "Art deco", "art deco style, geometric patterns, luxury aesthetics, gold accents, 1920s glamour"},
	{"vintage-poster", "Vintage poster", "vintage poster design, retro color palette, bold typography, propaganda style"},
	{"paper-cut", "Paper cut", "paper cut art, layered paper sculpture, shadow box effect, handcraft aesthetic"},
	{"ceramic", "Ceramic", "ceramic art, glazed pottery, handmade textures, earthy color palette"},
	{"metallic", "Metallic", "metallic finish, brushed steel, chrome reflection, industrial materials"},
	{"neon", "Neon", "neon lighting effect, glowing edges, electric colors, night club atmosphere"},
	{"ray-traced", "Ray traced", "ray traced lighting, realistic reflections, caustics, global illumination"},
	{"double-exposure", "Double exposure", "double exposure effect, overlapping images, transparent blending, artistic composition"},
}

// NegativePrompts lists the negative prompt presets.
var NegativePrompts = []Preset{
	{"basic", "Basic", "blurry, low quality, distorted, deformed, ugly, bad anatomy"},
	{"photo", "Photography", "blurry, low resolution, overexposed, underexposed, noise, grain, amateur"},
	{"portrait", "Portrait", "bad anatomy, deformed face, extra limbs, missing fingers, asymmetric eyes, ugly"},
	{"anime", "Anime", "realistic, photographic, 3d render, western cartoon, bad anatomy, low quality"},
	{"art", "Art", "photographic, realistic, low quality, commercial, amateur, stock photo"},
	{"architecture", "Architecture", "blurry, distorted perspective, bad proportions, amateur photography, low quality"},
}

// Schedulers are the sampling schedulers offered for inference providers.
var Schedulers = []string{"DPMSolverMultistep", "EulerDiscrete", "DDIM", "PNDMScheduler"}

// Inference option ranges.
const (
	MinSteps    = 10
	MaxSteps    = 100
	MinGuidance = 1.0
	MaxGuidance = 20.0
)

// Find returns the preset with key from list.
func Find(list []Preset, key string) (Preset, bool) {
	for _, p := range list {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyStyle appends the style preset to prompt. Unknown or empty styles and
// StyleNone leave the prompt unchanged.
func ApplyStyle(prompt, style string) string {
	p, ok := Find(Styles, style)
	if !ok || p.Value == "" {
		return prompt
	}
	return prompt + ", " + p.Value
}

// ResolveSize maps a preset key or a custom "WxH" string to a size. Custom
// sizes must lie within MinCustomSize..MaxCustomSize.
func ResolveSize(size string) (string, error) {
	if size == "" {
		return DefaultSize, nil
	}
	if p, ok := Find(Sizes, size); ok {
		return p.Value, nil
	}
	w, h, err := validation.ParseSize(size)
	if err != nil {
		return "", err
	}
	for _, d := range []int{w, h} {
		if d < MinCustomSize || d > MaxCustomSize {
			return "", fmt.Errorf("custom size %dx%d out of range %d-%d", w, h, MinCustomSize, MaxCustomSize)
		}
	}
	return fmt.Sprintf("%dx%d", w, h), nil
}

// NegativePrompt returns the preset text for key, or key itself when it is
// not a preset name.
func NegativePrompt(key string) string {
	if p, ok := Find(NegativePrompts, strings.TrimSpace(key)); ok {
		return p.Value
	}
	return key
}

func boolPtr(b bool) *bool { return &b }

// DefaultOpenEndpointOptions are the advanced flags enabled by default for
// open endpoints.
func DefaultOpenEndpointOptions() generation.Options {
	return generation.Options{
		Enhance: boolPtr(true),
		Private: boolPtr(true),
		NoLogo:  boolPtr(true),
		Safe:    boolPtr(false),
	}
}

// ValidateInferenceOptions checks steps, guidance and scheduler ranges.
func ValidateInferenceOptions(o generation.Options) error {
	if o.Steps != nil && (*o.Steps < MinSteps || *o.Steps > MaxSteps) {
		return fmt.Errorf("steps must be between %d and %d", MinSteps, MaxSteps)
	}
	if o.Guidance != nil && (*o.Guidance < MinGuidance || *o.Guidance > MaxGuidance) {
		return fmt.Errorf("guidance must be between %.1f and %.1f", MinGuidance, MaxGuidance)
	}
	if o.Scheduler != "" {
		for _, s := range Schedulers {
			if s == o.Scheduler {
				return nil
			}
		}
		return fmt.Errorf("unknown scheduler '%s'", o.Scheduler)
	}
	return nil
}
