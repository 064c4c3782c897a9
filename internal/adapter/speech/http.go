package speech

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"voicetutor/internal/domain"
)

// HTTPEngine synthesizes speech through an OpenAI-compatible
// /audio/speech endpoint and writes the audio next to the cache so later
// requests for the same text are free.
type HTTPEngine struct {
	name    string
	baseURL string
	apiKey  string
	voice   string
	cache   *AudioCache
	client  *http.Client
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

func NewHTTPEngine(name, baseURL, apiKeyEnv, voice string, cache *AudioCache) (*HTTPEngine, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable %s: %w", apiKeyEnv, domain.ErrUnauthorized)
	}

	return &HTTPEngine{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		voice:   voice,
		cache:   cache,
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (e *HTTPEngine) Name() string {
	return e.name
}

func (e *HTTPEngine) Synthesize(text string) (string, error) {
	reqBody := speechRequest{
		Model: "tts-1",
		Input: text,
		Voice: e.voice,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", e.baseURL+"/audio/speech", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech request failed (%v): %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return "", fmt.Errorf("speech API returned status %d: %w", resp.StatusCode, domain.ErrUnauthorized)
		case resp.StatusCode == http.StatusTooManyRequests:
			return "", fmt.Errorf("speech API returned status %d: %w", resp.StatusCode, domain.ErrRateLimited)
		default:
			return "", fmt.Errorf("speech API returned status %d: %s: %w", resp.StatusCode, body, domain.ErrUnavailable)
		}
	}

	path := e.cache.Path(text, ".mp3")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return path, nil
}
