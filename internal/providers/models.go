package providers

import "imgstudio/internal/catalog"

func m(id, name, icon, category, description string) catalog.Descriptor {
	return catalog.Descriptor{ID: id, Name: name, Icon: icon, Category: category, Description: description}
}

var pollinationsModels = catalog.New(
	m("flux-1.1-pro", "Flux 1.1 Pro", "🏆", catalog.CategoryFLUX, "Latest flagship FLUX model"),
	m("flux.1-kontext-pro", "Flux.1 Kontext Pro", "🧠", catalog.CategoryFLUX, "Improved context understanding"),
	m("flux.1-kontext-max", "Flux.1 Kontext Max", "👑", catalog.CategoryFLUX, "Strongest context understanding"),
	m("flux-dev", "Flux Dev", "🛠️", catalog.CategoryFLUX, "Developer build"),
	m("flux-schnell", "Flux Schnell", "⚡", catalog.CategoryFLUX, "Fast generation"),
	m("flux-realism", "Flux Realism", "📷", catalog.CategoryFLUX, "Photorealistic style"),
	m("flux-anime", "Flux Anime", "🎌", catalog.CategoryFLUX, "Anime style"),
	m("flux-3d", "Flux 3D", "🎯", catalog.CategoryFLUX, "3D render style"),

	m("stable-diffusion-3.5-large", "SD 3.5 Large", "🎯", catalog.CategoryStableDiffusion, "Latest large SD model"),
	m("stable-diffusion-3.5-medium", "SD 3.5 Medium", "⚖️", catalog.CategoryStableDiffusion, "Balanced performance"),
	m("stable-diffusion-xl", "SDXL 1.0", "💎", catalog.CategoryStableDiffusion, "High resolution standard"),
	m("stable-diffusion-xl-turbo", "SDXL Turbo", "🚀", catalog.CategoryStableDiffusion, "Fast SDXL"),
	m("stable-diffusion-2.1", "SD 2.1", "🔄", catalog.CategoryStableDiffusion, "Stable release"),
	m("stable-diffusion-1.5", "SD 1.5", "🔰", catalog.CategoryStableDiffusion, "Classic release"),

	m("midjourney", "Midjourney", "🎭", catalog.CategoryProfessional, "Artistic creation"),
	m("dalle-3", "DALL-E 3", "🤖", catalog.CategoryProfessional, "OpenAI model"),
	m("playground-v2.5", "Playground v2.5", "🎪", catalog.CategoryProfessional, "Commercial grade"),
	m("leonardo-diffusion", "Leonardo Diffusion", "🎨", catalog.CategoryProfessional, "Professional creative tool"),

	m("dreamshaper", "DreamShaper", "💫", catalog.CategoryCommunity, "Dreamlike style"),
	m("realistic-vision", "Realistic Vision", "👁️", catalog.CategoryCommunity, "Hyperrealism"),
	m("deliberate", "Deliberate", "🎨", catalog.CategoryCommunity, "Fine control"),
	m("revanimated", "ReV Animated", "🎬", catalog.CategoryCommunity, "Animation style"),
	m("protogen", "Protogen", "🤖", catalog.CategoryCommunity, "Sci-fi style"),
	m("openjourney", "OpenJourney", "🗺️", catalog.CategoryCommunity, "Open creation"),

	m("anything-v5", "Anything v5", "🌟", catalog.CategoryAnime, "General anime model"),
	m("waifu-diffusion", "Waifu Diffusion", "👩‍🎨", catalog.CategoryAnime, "Anime characters"),
	m("anythingv4", "Anything v4", "✨", catalog.CategoryAnime, "Classic anime model"),
	m("counterfeit", "Counterfeit", "🎪", catalog.CategoryAnime, "High quality anime"),
	m("pastel-mix", "Pastel Mix", "🌈", catalog.CategoryAnime, "Soft colors"),

	m("analog-diffusion", "Analog Film", "📸", catalog.CategoryStyle, "Film photography"),
	m("synthwave-diffusion", "Synthwave", "🌆", catalog.CategoryStyle, "Synthwave style"),
	m("cyberpunk-anime", "Cyberpunk Anime", "🤖", catalog.CategoryStyle, "Cyberpunk anime"),
	m("pixel-art-xl", "Pixel Art XL", "🎮", catalog.CategoryStyle, "Pixel art"),
	m("papercut-diffusion", "Papercut", "✂️", catalog.CategoryStyle, "Paper cut art"),
	m("ink-painting", "Ink Painting", "🖋️", catalog.CategoryStyle, "Ink wash painting"),
)

var navyModels = catalog.New(
	m("flux-pro", "Flux Pro", "🏆", catalog.CategoryFLUX, "Commercial FLUX"),
	m("flux-schnell", "Flux Schnell", "⚡", catalog.CategoryFLUX, "Fast generation"),
	m("stable-diffusion-xl", "SDXL", "💎", catalog.CategoryStableDiffusion, "High resolution"),
	m("midjourney-v6", "Midjourney v6", "🎭", catalog.CategoryProfessional, "Latest Midjourney"),
	m("dalle-3", "DALL-E 3", "🤖", catalog.CategoryProfessional, "OpenAI model"),
)

var huggingFaceModels = catalog.New(
	m("stable-diffusion-v1-5", "SD 1.5 (HF)", "🔰", catalog.CategoryStableDiffusion, "Open source classic"),
	m("stable-diffusion-xl-base-1.0", "SDXL Base (HF)", "💎", catalog.CategoryStableDiffusion, "Open source SDXL"),
	m("flux-1-dev", "Flux.1 Dev (HF)", "🛠️", catalog.CategoryFLUX, "Open source FLUX"),
	m("stable-diffusion-2-1", "SD 2.1 (HF)", "🔄", catalog.CategoryStableDiffusion, "Open source SD 2.1"),
)

var openAIModels = catalog.New(
	m("dall-e-3", "DALL-E 3", "🤖", "OpenAI", "Latest DALL-E"),
	m("dall-e-2", "DALL-E 2", "🔄", "OpenAI", "Classic DALL-E"),
)

var baseModels = catalog.New(
	m("flux.1-schnell", "FLUX.1 Schnell", "⚡", catalog.CategoryFLUX, "Fast FLUX generation"),
	m("stable-diffusion-xl", "Stable Diffusion XL", "💎", catalog.CategoryStableDiffusion, "High resolution SD"),
	m("stable-diffusion-1.5", "Stable Diffusion 1.5", "🔰", catalog.CategoryStableDiffusion, "Classic SD"),
)

// BaseModels is the fallback catalog for profiles naming an unknown provider.
func BaseModels() catalog.Catalog {
	return baseModels.Clone()
}
