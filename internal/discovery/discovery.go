// Package discovery fetches model lists from provider endpoints at runtime.
package discovery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"imgstudio/config/models"
	"imgstudio/internal/catalog"
	"imgstudio/internal/openai"
	"imgstudio/internal/providers"
	"imgstudio/internal/utils"
)

// DefaultTimeout bounds a single discovery request.
const DefaultTimeout = 15 * time.Second

// StatusError reports a non-2xx listing response. It is not fatal: Run turns
// it into a warning summary and an empty catalog.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Discoverer returns the models a provider currently offers.
type Discoverer interface {
	Discover(ctx context.Context) (catalog.Catalog, error)
}

// CuratedHuggingFaceModels is the fixed inference subset offered without a network call.
var CuratedHuggingFaceModels = []string{
	"runwayml/stable-diffusion-v1-5",
	"stabilityai/stable-diffusion-xl-base-1.0",
	"black-forest-labs/flux-schnell",
	"stabilityai/stable-diffusion-2-1",
}

// allowList keeps image models out of a generic /models listing.
var allowList = []string{"flux", "stable", "dall", "midjourney", "sd", "xl"}

// IsImageModel reports whether id matches the image model allow-list.
func IsImageModel(id string) bool {
	lower := strings.ToLower(id)
	for _, kw := range allowList {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// OpenCatalog lists models from an unauthenticated GET <base>/models.
type OpenCatalog struct {
	BaseURL string
	Client  *http.Client
}

// Discover implements Discoverer.
func (o *OpenCatalog) Discover(ctx context.Context) (catalog.Catalog, error) {
	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	requestCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, utils.JoinURL(o.BaseURL, "models"), nil)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithFields(log.Fields{
			"status":   resp.StatusCode,
			"base_url": o.BaseURL,
		}).Warn("model discovery: unexpected status")
		return catalog.Catalog{}, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("read response: %w", err)
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return catalog.Catalog{}, fmt.Errorf("unexpected models payload: not an array")
	}

	var c catalog.Catalog
	parsed.ForEach(func(_, item gjson.Result) bool {
		id := item.String()
		if item.IsObject() {
			id = item.Get("name").String()
		}
		if id != "" {
			c.Set(catalog.Describe(id, id, "Pollinations"))
		}
		return true
	})
	return c, nil
}

// CuratedSubset returns CuratedHuggingFaceModels without touching the network.
type CuratedSubset struct{}

// Discover implements Discoverer.
func (CuratedSubset) Discover(context.Context) (catalog.Catalog, error) {
	var c catalog.Catalog
	for _, id := range CuratedHuggingFaceModels {
		short := id
		if i := strings.LastIndex(id, "/"); i >= 0 {
			short = id[i+1:]
		}
		c.Set(catalog.Describe(id, short, "HF"))
	}
	return c, nil
}

// Authenticated lists models through an OpenAI-compatible client and keeps
// allow-listed ids. A nil Client yields an empty catalog.
type Authenticated struct {
	Client *openai.Client
}

// Discover implements Discoverer.
func (a *Authenticated) Discover(ctx context.Context) (catalog.Catalog, error) {
	if a.Client == nil {
		return catalog.Catalog{}, nil
	}
	requestCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	ids, err := a.Client.ListModels(requestCtx)
	if err != nil {
		return catalog.Catalog{}, err
	}

	var c catalog.Catalog
	for _, id := range ids {
		if IsImageModel(id) {
			c.Set(catalog.Describe(id, id, "API"))
		}
	}
	return c, nil
}

// ForKind selects the discovery variant for a provider kind. httpClient may be nil.
func ForKind(kind providers.Kind, baseURL, apiKey string, httpClient *http.Client) Discoverer {
	switch kind {
	case providers.KindOpen:
		return &OpenCatalog{BaseURL: baseURL, Client: httpClient}
	case providers.KindInference:
		return CuratedSubset{}
	default:
		if strings.TrimSpace(apiKey) == "" {
			return &Authenticated{}
		}
		opts := []openai.Option{openai.WithTimeout(DefaultTimeout)}
		if httpClient != nil {
			opts = []openai.Option{openai.WithHTTPClient(httpClient)}
		}
		return &Authenticated{Client: openai.NewClient(baseURL, apiKey, opts...)}
	}
}

// ForProfile selects the discovery variant for a profile's provider. Unknown
// providers use the authenticated listing.
func ForProfile(p models.Profile, httpClient *http.Client) Discoverer {
	kind := providers.KindCompatible
	if provider, err := providers.Get(p.Provider); err == nil {
		kind = provider.Kind()
	}
	return ForKind(kind, providers.BaseURLFor(p.Provider, p.BaseURL), p.APIKey, httpClient)
}

// Run executes d and never fails: errors and panics are logged and reported in
// the summary, with an empty catalog returned.
func Run(ctx context.Context, d Discoverer) (c catalog.Catalog, summary string) {
	defer func() {
		if r := recover(); r != nil {
			c = catalog.Catalog{}
			summary = utils.Truncate(fmt.Sprintf("Model discovery failed: %v", r), utils.ShortMessageLimit)
			log.WithField("panic", r).Warn("model discovery panicked")
		}
	}()

	found, err := d.Discover(ctx)
	if err != nil {
		summary = utils.Truncate("Model discovery failed: "+err.Error(), utils.ShortMessageLimit)
		log.WithError(err).Warn("model discovery failed")
		return catalog.Catalog{}, summary
	}
	summary = fmt.Sprintf("Discovered %d models", found.Len())
	log.WithField("count", found.Len()).Debug("model discovery finished")
	return found, summary
}
