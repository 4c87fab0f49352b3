package compatibility

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"imgstudio/config/models"
	"imgstudio/internal/discovery"
	"imgstudio/internal/openai"
	"imgstudio/internal/providers"
	"imgstudio/internal/utils"
)

// DefaultTimeout bounds a validation request.
const DefaultTimeout = 10 * time.Second

// Tester checks a profile's credentials against its provider
type Tester struct {
	client   *http.Client
	profile  models.Profile
	provider providers.Provider
	timeout  time.Duration
}

// TesterOption is a functional option for configuring a Tester
type TesterOption func(*Tester)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) TesterOption {
	return func(t *Tester) {
		t.client = client
	}
}

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) TesterOption {
	return func(t *Tester) {
		t.timeout = timeout
	}
}

// NewTester creates a tester for profile. It fails for unknown providers.
func NewTester(profile models.Profile, opts ...TesterOption) (*Tester, error) {
	provider, err := providers.Get(profile.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}
	if profile.BaseURL == "" {
		profile.BaseURL = provider.DefaultBaseURL()
	}

	t := &Tester{
		client:   &http.Client{Timeout: DefaultTimeout},
		profile:  profile,
		provider: provider,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Run performs the checks appropriate to the provider kind.
func (t *Tester) Run(ctx context.Context) *Result {
	start := time.Now()
	result := &Result{Provider: t.provider.ID()}

	if t.provider.Kind() == providers.KindOpen {
		result.add(CheckCredentials, true, t.provider.Label()+" requires no validation", true)
		return t.finish(result, start)
	}

	if err := t.provider.ValidateCredentials(t.profile.APIKey, t.profile.Token); err != nil {
		result.add(CheckCredentials, false, err.Error(), true)
		result.Error = GetUserMessage(ErrorCategoryMissingCredentials)
		return t.finish(result, start)
	}
	result.add(CheckCredentials, true, "API key present", true)

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if t.provider.Kind() == providers.KindInference {
		t.checkInference(ctx, result)
	} else {
		t.checkCompatible(ctx, result)
	}
	return t.finish(result, start)
}

func (t *Tester) finish(result *Result, start time.Time) *Result {
	result.ResponseTime = time.Since(start)
	result.Level, _ = DetermineLevel(result.Checks)
	result.Success = result.Level != LevelNone
	return result
}

func (r *Result) add(name string, passed bool, message string, critical bool) {
	r.Checks = append(r.Checks, CheckResult{Name: name, Passed: passed, Message: message, Critical: critical})
}

func (r *Result) failStatus(statusCode int, body []byte) {
	info := StatusErrorInfo(statusCode, body)
	r.add(CheckConnection, true, fmt.Sprintf("Connected successfully (HTTP %d)", statusCode), true)
	r.add(CheckAuthentication, false, info.UserMessage, true)
	r.Error = fmt.Sprintf("HTTP %d: %s", statusCode, info.Message)
}

func (r *Result) failNetwork(err error) {
	info := NetworkErrorInfo(err)
	r.add(CheckConnection, false, info.UserMessage, true)
	r.Error = "network error: " + info.Message
}

// checkInference issues GET <base>/models with the bearer key.
func (t *Tester) checkInference(ctx context.Context, result *Result) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, utils.JoinURL(t.profile.BaseURL, "models"), nil)
	if err != nil {
		result.failNetwork(err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+t.profile.APIKey)

	resp, err := t.client.Do(req)
	if err != nil {
		result.failNetwork(err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK {
		result.failStatus(resp.StatusCode, body)
		return
	}
	result.add(CheckConnection, true, "Connected successfully (HTTP 200)", true)
	result.add(CheckAuthentication, true, t.provider.Label()+" token accepted", true)
}

// checkCompatible lists models through the OpenAI-compatible client.
func (t *Tester) checkCompatible(ctx context.Context, result *Result) {
	client := openai.NewClient(t.profile.BaseURL, t.profile.APIKey, openai.WithHTTPClient(t.client))
	ids, err := client.ListModels(ctx)
	if err != nil {
		var statusErr *openai.StatusError
		switch {
		case errors.As(err, &statusErr):
			result.failStatus(statusErr.StatusCode, statusErr.Body)
		case ctx.Err() != nil:
			result.failNetwork(err)
		default:
			if errors.Is(err, openai.ErrUnexpectedResponse) {
				result.add(CheckConnection, true, "Connected successfully (HTTP 200)", true)
				result.add(CheckAuthentication, false, GetUserMessage(ErrorCategoryUnexpectedListing), true)
				result.Error = err.Error()
				return
			}
			result.failNetwork(err)
		}
		return
	}

	result.add(CheckConnection, true, "Connected successfully (HTTP 200)", true)
	result.add(CheckAuthentication, true, "API key accepted", true)

	for _, id := range ids {
		if discovery.IsImageModel(id) {
			result.Models = append(result.Models, id)
		}
	}
	if len(result.Models) == 0 {
		result.add(CheckImageModels, false, "No image models in listing; built-in models will be used", false)
		return
	}
	result.add(CheckImageModels, true, fmt.Sprintf("%d image models available", len(result.Models)), false)
}

// Validate checks profile credentials and returns whether they are usable
// and a message of at most 100 characters.
func Validate(ctx context.Context, profile models.Profile, opts ...TesterOption) (bool, string) {
	tester, err := NewTester(profile, opts...)
	if err != nil {
		return false, utils.Truncate("API validation failed: "+err.Error(), utils.ShortMessageLimit)
	}

	result := tester.Run(ctx)
	if !result.Success {
		log.WithFields(log.Fields{
			"profile":  profile.Name,
			"provider": profile.Provider,
		}).Warn("credential validation failed: " + result.Error)
		return false, utils.Truncate("API validation failed: "+result.Error, utils.ShortMessageLimit)
	}

	if c, ok := result.Check(CheckAuthentication); ok {
		return true, utils.Truncate(c.Message, utils.ShortMessageLimit)
	}
	c, _ := result.Check(CheckCredentials)
	return true, utils.Truncate(c.Message, utils.ShortMessageLimit)
}
