// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

var (
	// ErrAddressEmpty means no agent endpoint was configured.
	ErrAddressEmpty = errors.New("agent address is required")
)

var (
	errNonSuccessResponse = errors.New("agent responded with a non-success status code")
	errNewRequestFailure  = errors.New("failed creating an HTTP request")
	errDoRequestFailure   = errors.New("http client failed while sending request")
	errReadingBodyFailure = errors.New("failed while reading http response body")
	errJSONUnmarshal      = errors.New("failed unmarshaling JSON response payload")
	errJSONMarshal        = errors.New("failed marshaling JSON request payload")
)

const chatPath = "/agent/chat"

// Config contains the settings for the conversational agent client.
type Config struct {
	// Address is the agent service URL (e.g. https://toolkit.example.com).
	Address string

	// HTTPClient refers to the client that will be used to send requests.
	// (Optional) Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger to be used by the client.
	// (Optional) Defaults to a no-op logger.
	Logger *zap.Logger
}

// Client forwards chat messages to the external conversational agent. It holds
// no conversational state; the caller supplies the whole message history on
// each call.
type Client struct {
	client  *http.Client
	chatURL string
	logger  *zap.Logger
}

// Message is one chat turn, oldest first.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is what the agent sends back.
type Reply struct {
	Completion string `json:"completion"`
}

type chatRequest struct {
	Messages []Message `json:"messages"`
}

// New creates a Client talking to the configured agent endpoint.
func New(config Config) (*Client, error) {
	if config.Address == "" {
		return nil, ErrAddressEmpty
	}
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Client{
		client:  config.HTTPClient,
		chatURL: config.Address + chatPath,
		logger:  config.Logger,
	}, nil
}

// Send forwards the message history and returns the agent's reply. Failures
// are surfaced unchanged; there is no retry here.
func (c *Client) Send(ctx context.Context, messages []Message) (Reply, error) {
	payload, err := json.Marshal(chatRequest{Messages: messages})
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", errJSONMarshal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", errNewRequestFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", errDoRequestFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", errReadingBodyFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("agent returned non-200 response",
			zap.Int("code", resp.StatusCode))
		return Reply{}, fmt.Errorf("%w: received status %v", errNonSuccessResponse, resp.StatusCode)
	}

	var reply Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", errJSONUnmarshal, err)
	}
	return reply, nil
}
