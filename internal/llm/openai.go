package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Annallisboa/QA-app/internal/prompt"
)

// DefaultOpenAIEndpoint is the base URL of the OpenAI API.
const DefaultOpenAIEndpoint = "https://api.openai.com/v1"

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *chatError `json:"error,omitempty"`
}

type chatError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func openAIRole(r prompt.Role) string {
	if r == prompt.RoleHuman {
		return "user"
	}
	return string(r)
}

// Complete sends the messages and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, messages []prompt.Message) (string, error) {
	reqBody := chatRequest{
		Model:       c.Model,
		Temperature: Temperature,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: openAIRole(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultOpenAIEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(endpoint, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &UpstreamError{Provider: "openai", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Provider: "openai", StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{Provider: "openai", StatusCode: resp.StatusCode, Err: errors.New(errorMessage(respBody))}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &UpstreamError{Provider: "openai", StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing response: %w", err)}
	}
	if chatResp.Error != nil {
		return "", &UpstreamError{Provider: "openai", StatusCode: resp.StatusCode, Err: fmt.Errorf("%s: %s", chatResp.Error.Type, chatResp.Error.Message)}
	}
	if len(chatResp.Choices) == 0 {
		return "", &UpstreamError{Provider: "openai", StatusCode: resp.StatusCode, Err: errors.New("empty choices in response")}
	}

	return chatResp.Choices[0].Message.Content, nil
}

// errorMessage pulls the API's error message out of a failed response body.
func errorMessage(body []byte) string {
	var r chatResponse
	if err := json.Unmarshal(body, &r); err == nil && r.Error != nil && r.Error.Message != "" {
		return r.Error.Message
	}
	return fmt.Sprintf("%.200s", strings.TrimSpace(string(body)))
}
