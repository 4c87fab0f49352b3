package compatibility

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgstudio/config/models"
	"imgstudio/internal/providers"
)

func TestNewTester_UnknownProvider(t *testing.T) {
	_, err := NewTester(models.Profile{Name: "x", Provider: "nope"})
	assert.ErrorIs(t, err, providers.ErrUnknownProvider)
}

func TestRun_OpenProviderNeedsNoRequest(t *testing.T) {
	tester, err := NewTester(models.Profile{Name: "p", Provider: providers.Pollinations})
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, LevelFull, result.Level)
	require.Len(t, result.Checks, 1)
	assert.Contains(t, result.Checks[0].Message, "requires no validation")
}

func TestRun_MissingKeyFailsWithoutRequest(t *testing.T) {
	tester, err := NewTester(models.Profile{Name: "n", Provider: providers.NavyAI, BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.False(t, result.Success)
	c, ok := result.Check(CheckCredentials)
	require.True(t, ok)
	assert.False(t, c.Passed)
	_, ok = result.Check(CheckConnection)
	assert.False(t, ok)
}

func TestRun_InferenceProbe(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth = r.URL.Path, r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tester, err := NewTester(models.Profile{
		Name: "hf", Provider: providers.HuggingFace, BaseURL: server.URL, APIKey: "hf_abc",
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, "/models", gotPath)
	assert.Equal(t, "Bearer hf_abc", gotAuth)
}

func TestRun_InferenceRejectedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials in Authorization header"}`))
	}))
	defer server.Close()

	tester, err := NewTester(models.Profile{
		Name: "hf", Provider: providers.HuggingFace, BaseURL: server.URL, APIKey: "bad",
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, "HTTP 401: Invalid credentials in Authorization header", result.Error)
	conn, _ := result.Check(CheckConnection)
	assert.True(t, conn.Passed)
	auth, _ := result.Check(CheckAuthentication)
	assert.False(t, auth.Passed)
}

func TestRun_CompatibleListsImageModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"flux.1-schnell"},{"id":"gpt-4o"},{"id":"stable-diffusion-xl"}]}`))
	}))
	defer server.Close()

	tester, err := NewTester(models.Profile{
		Name: "navy", Provider: providers.NavyAI, BaseURL: server.URL, APIKey: "sk-1",
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.Equal(t, LevelFull, result.Level)
	assert.Equal(t, []string{"flux.1-schnell", "stable-diffusion-xl"}, result.Models)
}

func TestRun_CompatibleWithoutImageModelsIsPartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-4o"}]}`))
	}))
	defer server.Close()

	tester, err := NewTester(models.Profile{
		Name: "oa", Provider: providers.OpenAICompatible, BaseURL: server.URL, APIKey: "sk-1",
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, LevelPartial, result.Level)
}

func TestRun_CompatibleMalformedListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	tester, err := NewTester(models.Profile{
		Name: "oa", Provider: providers.OpenAICompatible, BaseURL: server.URL, APIKey: "sk-1",
	}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.False(t, result.Success)
	auth, _ := result.Check(CheckAuthentication)
	assert.Equal(t, GetUserMessage(ErrorCategoryUnexpectedListing), auth.Message)
}

func TestRun_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	tester, err := NewTester(models.Profile{
		Name: "navy", Provider: providers.NavyAI, BaseURL: server.URL, APIKey: "sk-1",
	}, WithHTTPClient(server.Client()), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	result := tester.Run(context.Background())
	assert.False(t, result.Success)
	conn, _ := result.Check(CheckConnection)
	assert.False(t, conn.Passed)
	assert.Contains(t, result.Error, "network error")
}

func TestValidate_Messages(t *testing.T) {
	ok, msg := Validate(context.Background(), models.Profile{Name: "p", Provider: providers.Pollinations})
	assert.True(t, ok)
	assert.Contains(t, msg, "requires no validation")

	ok, msg = Validate(context.Background(), models.Profile{Name: "n", Provider: providers.NavyAI})
	assert.False(t, ok)
	assert.Contains(t, msg, "API validation failed")
	assert.LessOrEqual(t, len([]rune(msg)), 100)

	ok, msg = Validate(context.Background(), models.Profile{Name: "x", Provider: "nope"})
	assert.False(t, ok)
	assert.Contains(t, msg, "unknown provider")
}

func TestValidate_LongErrorIsTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ok, msg := Validate(context.Background(), models.Profile{
		Name: "hf", Provider: providers.HuggingFace, BaseURL: server.URL, APIKey: "hf_x",
	}, WithHTTPClient(server.Client()))
	assert.False(t, ok)
	assert.Contains(t, msg, "API validation failed: HTTP 429")
	assert.LessOrEqual(t, len([]rune(msg)), 100)
}
