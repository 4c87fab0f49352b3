package generation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"

	"imgstudio/config/models"
	"imgstudio/config/validation"
	"imgstudio/internal/openai"
	"imgstudio/internal/utils"
)

// Inference defaults applied when Options does not override them.
const (
	DefaultInferenceSteps = 25
	DefaultGuidanceScale  = 7.5
)

// fetchFunc performs the i-th request of a looped strategy.
type fetchFunc func(ctx context.Context, i int) ([]byte, error)

// loop runs fetch count times sequentially. Failed images are logged and
// skipped; the outcome fails only when nothing was produced.
func loop(ctx context.Context, timeout time.Duration, count int, model string, fetch fetchFunc) Outcome {
	var images []GeneratedImage
	for i := 0; i < count; i++ {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		data, err := fetch(callCtx, i)
		cancel()
		if err != nil {
			log.WithFields(log.Fields{
				"image": i + 1,
				"of":    count,
				"model": model,
			}).Warn("image generation failed: " + utils.TruncateError(err, utils.ShortMessageLimit))
			continue
		}
		images = append(images, NewImageFromBytes(data))
	}

	if len(images) == 0 {
		return failed(ErrAllFailed)
	}
	return succeeded(count, images)
}

func readOK(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// openEndpoint issues one GET per image with a fresh seed.
type openEndpoint struct {
	http    *http.Client
	timeout time.Duration
	seed    SeedSource
}

// OpenEndpointPrompt appends the negative prompt marker when neg is set.
func OpenEndpointPrompt(prompt, neg string) string {
	if neg == "" {
		return prompt
	}
	return prompt + " --no " + neg
}

// OpenEndpointQuery builds the query parameters for one image.
func OpenEndpointQuery(model string, width, height int, seed uint32, opts Options) url.Values {
	q := url.Values{}
	if model != "" {
		q.Set("model", model)
	}
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	q.Set("seed", strconv.FormatUint(uint64(seed), 10))
	for name, flag := range map[string]*bool{
		"nologo":  opts.NoLogo,
		"private": opts.Private,
		"enhance": opts.Enhance,
		"safe":    opts.Safe,
	} {
		if flag != nil {
			q.Set(name, strconv.FormatBool(*flag))
		}
	}
	return q
}

// SetAuthHeaders applies the open endpoint auth mode.
func SetAuthHeaders(h http.Header, p models.Profile) {
	switch p.EffectiveAuthMode() {
	case models.AuthToken:
		if p.Token != "" {
			h.Set("Authorization", "Bearer "+p.Token)
		}
	case models.AuthReferrer:
		if p.Referrer != "" {
			h.Set("Referer", p.Referrer)
		}
	}
}

func (s *openEndpoint) Generate(ctx context.Context, _ *openai.Client, profile models.Profile, params Params) Outcome {
	prompt := OpenEndpointPrompt(params.Prompt, params.NegativePrompt)
	endpoint := utils.JoinURL(profile.BaseURL, "prompt/"+url.PathEscape(prompt))

	return loop(ctx, s.timeout, params.Count, params.Model, func(ctx context.Context, _ int) ([]byte, error) {
		width, height, err := validation.ParseSize(params.Size)
		if err != nil {
			return nil, err
		}
		query := OpenEndpointQuery(params.Model, width, height, s.seed(), params.Options)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}
		SetAuthHeaders(req.Header, profile)

		resp, err := s.http.Do(req)
		if err != nil {
			return nil, err
		}
		return readOK(resp)
	})
}

// inference POSTs one JSON request per image to <base>/models/<model>.
type inference struct {
	http    *http.Client
	timeout time.Duration
}

// InferenceBody builds the inference payload for params.
func InferenceBody(params Params) ([]byte, error) {
	width, height, err := validation.ParseSize(params.Size)
	if err != nil {
		return nil, err
	}

	steps := DefaultInferenceSteps
	if params.Options.Steps != nil {
		steps = *params.Options.Steps
	}
	guidance := DefaultGuidanceScale
	if params.Options.Guidance != nil {
		guidance = *params.Options.Guidance
	}

	body := []byte(`{}`)
	set := func(path string, value any) {
		if err == nil {
			body, err = sjson.SetBytes(body, path, value)
		}
	}
	set("inputs", params.Prompt)
	set("parameters.negative_prompt", params.NegativePrompt)
	set("parameters.num_inference_steps", steps)
	set("parameters.guidance_scale", guidance)
	set("parameters.width", width)
	set("parameters.height", height)
	if params.Options.Scheduler != "" {
		set("parameters.scheduler", params.Options.Scheduler)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build inference body: %w", err)
	}
	return body, nil
}

func (s *inference) Generate(ctx context.Context, _ *openai.Client, profile models.Profile, params Params) Outcome {
	endpoint := utils.JoinURL(profile.BaseURL, "models/"+params.Model)

	return loop(ctx, s.timeout, params.Count, params.Model, func(ctx context.Context, _ int) ([]byte, error) {
		body, err := InferenceBody(params)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+profile.APIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err != nil {
			return nil, err
		}
		return readOK(resp)
	})
}

// compatible makes a single images/generations call for all images.
type compatible struct {
	http    *http.Client
	timeout time.Duration
}

func (s *compatible) Generate(ctx context.Context, client *openai.Client, profile models.Profile, params Params) Outcome {
	if client == nil {
		client = openai.NewClient(profile.BaseURL, profile.APIKey, openai.WithHTTPClient(s.http))
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payloads, err := client.GenerateImages(callCtx, openai.ImageRequest{
		Model:          params.Model,
		Prompt:         params.Prompt,
		Size:           params.Size,
		N:              params.Count,
		NegativePrompt: params.NegativePrompt,
	})
	if err != nil {
		log.WithError(err).WithField("model", params.Model).Warn("image generation failed")
		return failed(utils.TruncateError(err, utils.LongMessageLimit))
	}

	images := make([]GeneratedImage, len(payloads))
	for i, b64 := range payloads {
		images[i] = NewImageFromBase64(b64)
	}
	return succeeded(params.Count, images)
}
