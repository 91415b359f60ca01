package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Quangqueee/hanoi-residences/internal/models"
)

// Client talks to an OpenAI-compatible chat completions API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a client. The API key is read from AI_API_KEY.
func NewClient(baseURL, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  os.Getenv("AI_API_KEY"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Enabled reports whether the client is configured to make requests.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateListingSummary produces a short Vietnamese blurb for a
// listing card from its full details.
func (c *Client) GenerateListingSummary(ctx context.Context, listing *models.Listing) (string, error) {
	system := "Bạn là biên tập viên của một trang cho thuê phòng ở Hà Nội. " +
		"Viết tóm tắt 2-3 câu, thân thiện, không bịa thêm thông tin."

	user := fmt.Sprintf(
		"Tiêu đề: %s\nQuận: %s\nLoại phòng: %s\nDiện tích: %.0f m²\nGiá: %.1f triệu/tháng\nMô tả: %s",
		listing.Title, listing.District, listing.RoomType, listing.Area, listing.Price, listing.Details,
	)

	reply, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("ai: empty completion")
	}
	return reply, nil
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("ai: baseURL is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.4,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("ai: status %d: %v", resp.StatusCode, errorBody)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai: no choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}
