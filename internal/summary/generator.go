package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"secondbrain/internal/domain"
)

// Ollama generates text with an Ollama-compatible /api/generate endpoint.
type Ollama struct {
	client *Client
	host   string
	model  string
}

func NewOllama(client *Client, host, model string) *Ollama {
	return &Ollama{client: client, host: strings.TrimRight(host, "/"), model: model}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Model: o.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSummaryGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSummaryGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := o.client.Do(req)
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decoding generation: %w", domain.ErrSummaryGenerationFailed, err)
	}
	if strings.TrimSpace(resp.Response) == "" {
		return "", fmt.Errorf("%w: empty generation", domain.ErrSummaryGenerationFailed)
	}
	return resp.Response, nil
}
