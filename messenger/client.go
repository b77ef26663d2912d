package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"sales-agent/config"

	"go.uber.org/zap"
)

const graphAPIVersion = "v18.0"

// Client sends messages through the Facebook Graph API.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		accessToken: cfg.FBPageAccessToken,
		baseURL:     cfg.GraphAPIBase,
		httpClient:  &http.Client{Timeout: cfg.SendTimeoutSeconds},
		logger:      logger,
	}
}

type sendRequest struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
}

// SendMessage delivers a text message to a Messenger recipient.
func (c *Client) SendMessage(ctx context.Context, recipientID, text string) error {
	if c.accessToken == "" {
		return fmt.Errorf("page access token not configured")
	}

	var body sendRequest
	body.Recipient.ID = recipientID
	body.Message.Text = text
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/me/messages?access_token=%s",
		strings.TrimRight(c.baseURL, "/"),
		graphAPIVersion,
		url.QueryEscape(c.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("graph api status %s: %s", resp.Status, string(respBody))
	}

	c.logger.Debug("Message sent",
		zap.String("recipient_id", recipientID),
		zap.Int("length", len(text)))
	return nil
}
