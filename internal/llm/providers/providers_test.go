package providers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/pocket-analyst/internal/llm"
)

func TestProvidersRegistered(t *testing.T) {
	assert.NotNil(t, llm.GetProvider("openai"))
	assert.NotNil(t, llm.GetProvider("ollama"))
}

func TestOllamaBuildURL(t *testing.T) {
	p := &OllamaProvider{}

	assert.Equal(t, "http://localhost:11434/v1/chat/completions", p.BuildURL(""))
	assert.Equal(t, "http://box:8080/v1/chat/completions", p.BuildURL("http://box:8080/v1"))
	assert.Equal(t, "http://box:8080/v1/chat/completions", p.BuildURL("http://box:8080/v1/"))
	assert.Equal(t, "http://box:8080/v1/chat/completions", p.BuildURL("http://box:8080/v1/chat/completions"))
}

func TestOpenAIBuildURL(t *testing.T) {
	p := &OpenAIProvider{}
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", p.BuildURL(""))
}

func TestOpenAISetHeaders(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	req, err := http.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", nil)
	require.NoError(t, err)

	p := &OpenAIProvider{}
	p.SetHeaders(req)
	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
}

func TestBuildRequestBody(t *testing.T) {
	p := &OllamaProvider{}
	temp := 0.3
	body, err := p.BuildRequestBody("gpt-3.5-turbo", []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
	}, &temp, 800)
	require.NoError(t, err)

	var req map[string]any
	require.NoError(t, json.Unmarshal(body, &req))
	assert.Equal(t, "gpt-3.5-turbo", req["model"])
	assert.Equal(t, 0.3, req["temperature"])
	assert.Equal(t, float64(800), req["max_tokens"])
	assert.Len(t, req["messages"], 2)
}

func TestBuildRequestBodyOmitsDefaults(t *testing.T) {
	p := &OllamaProvider{}
	body, err := p.BuildRequestBody("m", []llm.Message{{Role: "user", Content: "hi"}}, nil, 0)
	require.NoError(t, err)

	var req map[string]any
	require.NoError(t, json.Unmarshal(body, &req))
	assert.NotContains(t, req, "temperature")
	assert.NotContains(t, req, "max_tokens")
}

func TestParseResponse(t *testing.T) {
	raw := `{
		"model": "gpt-3.5-turbo-0125",
		"choices": [
			{
				"index": 0,
				"message": {"role": "assistant", "content": "the answer"},
				"finish_reason": "stop"
			}
		],
		"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
	}`

	p := &OllamaProvider{}
	resp, err := p.ParseResponse([]byte(raw), "gpt-3.5-turbo")
	require.NoError(t, err)
	assert.Equal(t, "the answer", resp.Content)
	assert.Equal(t, "gpt-3.5-turbo-0125", resp.Model)
	assert.Equal(t, 14, resp.Usage.TotalTokens)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestParseResponseNoChoices(t *testing.T) {
	p := &OllamaProvider{}
	_, err := p.ParseResponse([]byte(`{"model": "m", "choices": []}`), "m")
	require.Error(t, err)

	_, err = p.ParseResponse([]byte("not json"), "m")
	require.Error(t, err)
}
