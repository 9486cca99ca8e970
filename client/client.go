// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

// Package client is the Go client for the pump API. Each method invokes one
// named operation under the RPC prefix and decodes either the result or the
// error envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/aquapump/aquapump/model"
	"github.com/aquapump/aquapump/store"
)

var (
	// ErrAddressEmpty means no API address was configured.
	ErrAddressEmpty = errors.New("api address is required")

	// ErrBadRequest means the API rejected the request as invalid.
	ErrBadRequest = errors.New("api rejected the request as invalid")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

var (
	errNonSuccessResponse = errors.New("api responded with a non-success status code")
	errNewRequestFailure  = errors.New("failed creating an HTTP request")
	errDoRequestFailure   = errors.New("http client failed while sending request")
	errReadingBodyFailure = errors.New("failed while reading http response body")
	errJSONUnmarshal      = errors.New("failed unmarshaling JSON response payload")
	errJSONMarshal        = errors.New("failed marshaling JSON request payload")
)

const rpcBasePath = "/api/rpc"

// Config contains the settings for a pump API client.
type Config struct {
	// Address is the API base URL (e.g. http://localhost:8081).
	Address string

	// HTTPClient refers to the client that will be used to send requests.
	// (Optional) Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger to be used by the client.
	// (Optional) Defaults to a no-op logger.
	Logger *zap.Logger
}

// Client calls the pump API over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// New creates a Client for the API at the configured address.
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
		baseURL: config.Address + rpcBasePath,
		logger:  config.Logger,
	}, nil
}

// ListPumps fetches every pump, newest first.
func (c *Client) ListPumps(ctx context.Context) ([]model.Pump, error) {
	var pumps []model.Pump
	if err := c.call(ctx, "pumps.list", nil, &pumps); err != nil {
		return nil, err
	}
	return pumps, nil
}

// GetPump fetches one pump by id.
func (c *Client) GetPump(ctx context.Context, id string) (model.Pump, error) {
	var pump model.Pump
	err := c.call(ctx, "pumps.get", store.GetPumpRequest{ID: id}, &pump)
	return pump, err
}

// CreatePump registers a new pump and returns it with its generated id and
// timestamps.
func (c *Client) CreatePump(ctx context.Context, input store.CreatePumpRequest) (model.Pump, error) {
	var pump model.Pump
	err := c.call(ctx, "pumps.create", input, &pump)
	return pump, err
}

// UpdatePump patches the supplied fields on one pump and returns the result.
func (c *Client) UpdatePump(ctx context.Context, input store.UpdatePumpRequest) (model.Pump, error) {
	var pump model.Pump
	err := c.call(ctx, "pumps.update", input, &pump)
	return pump, err
}

// DeletePump removes one pump. The acknowledgment does not distinguish a
// missing id from a deleted one.
func (c *Client) DeletePump(ctx context.Context, id string) error {
	var ack store.DeleteAck
	return c.call(ctx, "pumps.delete", store.DeletePumpRequest{ID: id}, &ack)
}

// ListLogs fetches recent logs for one pump. A nil limit means the server
// default.
func (c *Client) ListLogs(ctx context.Context, pumpID string, limit *int) ([]model.PumpLog, error) {
	var logs []model.PumpLog
	err := c.call(ctx, "pumps.logs.list", store.ListLogsRequest{PumpID: pumpID, Limit: limit}, &logs)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// CreateLog appends one event to a pump's log.
func (c *Client) CreateLog(ctx context.Context, input store.CreateLogRequest) (model.PumpLog, error) {
	var log model.PumpLog
	err := c.call(ctx, "pumps.logs.create", input, &log)
	return log, err
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func (c *Client) call(ctx context.Context, operation string, input, output any) error {
	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return fmt.Errorf("%w: %v", errJSONMarshal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+operation, body)
	if err != nil {
		return fmt.Errorf("%w: %v", errNewRequestFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errDoRequestFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errReadingBodyFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return c.translateError(operation, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, output); err != nil {
		return fmt.Errorf("%w: %v", errJSONUnmarshal, err)
	}
	return nil
}

func (c *Client) translateError(operation string, code int, data []byte) error {
	var envelope errorEnvelope
	message := http.StatusText(code)
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	c.logger.Error("api returned non-200 response",
		zap.String("operation", operation),
		zap.Int("code", code),
		zap.String("message", message))

	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		return fmt.Errorf("%w: received status %v", errNonSuccessResponse, code)
	}
}
