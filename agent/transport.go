// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aquapump/aquapump/store"
)

// SendRequest is the chat.send input shape: one user message plus the prior
// turns the widget has accumulated.
type SendRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history,omitempty"`
}

// SendResponse carries the agent's reply text.
type SendResponse struct {
	Reply string `json:"reply"`
}

func decodeSendRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req SendRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	if req.Message == "" {
		return nil, store.BadRequestErr{Field: "message", Message: "required field is missing or empty"}
	}
	return &req, nil
}

func decodeJSONBody(r *http.Request, target any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return store.BadRequestErr{Message: "failed to read request body"}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return store.BadRequestErr{Message: "failed to unmarshal json"}
	}
	return nil
}

func newSendEndpoint(c *Client) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*SendRequest)
		if !ok {
			return nil, store.ErrCasting
		}
		messages := append([]Message{}, req.History...)
		messages = append(messages, Message{Role: "user", Content: req.Message})
		reply, err := c.Send(ctx, messages)
		if err != nil {
			return nil, err
		}
		return &SendResponse{Reply: reply.Completion}, nil
	}
}

type handlerIn struct {
	fx.In

	Client *Client
	Logger *zap.Logger
}

// ProvideHandler publishes the chat.send handler under its routing name.
func ProvideHandler() fx.Option {
	return fx.Provide(
		fx.Annotated{
			Name: "chat_send_handler",
			Target: func(in handlerIn) store.Handler {
				return kithttp.NewServer(
					logSendErrors(in.Logger)(newSendEndpoint(in.Client)),
					decodeSendRequest,
					store.EncodeJSONResponse,
					kithttp.ServerErrorEncoder(store.EncodeError),
				)
			},
		},
	)
}

func logSendErrors(logger *zap.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			response, err := next(ctx, request)
			if err != nil {
				logger.Error("operation failed",
					zap.String("operation", "chat.send"),
					zap.Error(err))
			}
			return response, err
		}
	}
}
