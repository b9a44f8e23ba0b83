package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// RecService forwards a prompt plus the caller's goals and journal to the
// completion API and returns the generated text verbatim. No retries.
type RecService struct {
	client *http.Client
	apiKey string
	model  string
}

func NewRecService() *RecService {
	return &RecService{
		client: &http.Client{Timeout: 15 * time.Second},
		apiKey: os.Getenv("OPENAI_API_KEY"),
		model:  "gpt-3.5-turbo",
	}
}

type RecommendationRequest struct {
	Prompt  string           `json:"prompt" binding:"required"`
	Goals   []map[string]any `json:"goals"`
	Journal []map[string]any `json:"journal"`
}

func (r *RecService) Generate(req *RecommendationRequest) (string, error) {
	if r.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	var sb strings.Builder
	sb.WriteString(req.Prompt)
	if len(req.Goals) > 0 {
		goalsJSON, _ := json.MarshalIndent(req.Goals, "", "  ")
		sb.WriteString("\n\nUser Goals: ")
		sb.Write(goalsJSON)
	}
	if len(req.Journal) > 0 {
		journalJSON, _ := json.MarshalIndent(req.Journal, "", "  ")
		sb.WriteString("\n\nUser Journal Entries: ")
		sb.Write(journalJSON)
	}

	body := map[string]any{
		"model": r.model,
		"messages": []map[string]string{
			{"role": "user", "content": sb.String()},
		},
		"temperature": 0.7,
		"max_tokens":  1000,
	}
	b, _ := json.Marshal(body)

	httpReq, err := http.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("completion api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("completion api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode completion response error: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return out.Choices[0].Message.Content, nil
}
