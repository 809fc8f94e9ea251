package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Gateway represents a WhatsApp message gateway
type Gateway interface {
	SendMessage(ctx context.Context, to, message string) (string, error)
}

// CloudGateway sends messages through the WhatsApp Business Cloud API. All
// calls go through a circuit breaker so a flapping upstream fails fast
// instead of stalling a whole campaign run.
type CloudGateway struct {
	baseURL       string
	phoneNumberID string
	accessToken   string
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker
}

// NewCloudGateway creates a new CloudGateway
func NewCloudGateway(baseURL, phoneNumberID, accessToken string) *CloudGateway {
	settings := gobreaker.Settings{
		Name:    "whatsapp-cloud",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &CloudGateway{
		baseURL:       baseURL,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		breaker:       gobreaker.NewCircuitBreaker(settings),
	}
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendMessage sends a text message and returns the provider message ID
func (g *CloudGateway) SendMessage(ctx context.Context, to, message string) (string, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.send(ctx, to, message)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (g *CloudGateway) send(ctx context.Context, to, message string) (string, error) {
	payload := sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             sendText{Body: message},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s/messages", g.baseURL, g.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unexpected gateway response: %w", err)
	}
	if resp.StatusCode >= 400 {
		if parsed.Error != nil {
			return "", fmt.Errorf("gateway error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	if len(parsed.Messages) == 0 {
		return "", errors.New("gateway returned no message ID")
	}

	return parsed.Messages[0].ID, nil
}

// MockGateway is an in-memory gateway for development and tests
type MockGateway struct {
	// FailFor lists recipient numbers whose sends should fail.
	FailFor map[string]bool
	Sent    []MockSend
}

// MockSend records a single mock delivery
type MockSend struct {
	To      string
	Message string
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{FailFor: map[string]bool{}}
}

// SendMessage records the send and returns a synthetic message ID
func (g *MockGateway) SendMessage(_ context.Context, to, message string) (string, error) {
	if g.FailFor[to] {
		return "", fmt.Errorf("mock delivery failure for %s", to)
	}
	g.Sent = append(g.Sent, MockSend{To: to, Message: message})
	return fmt.Sprintf("WA-MOCK-%d", time.Now().UnixNano()), nil
}
