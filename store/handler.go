// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"go.uber.org/zap"
)

// Handler is an http.Handler serving exactly one named operation.
type Handler http.Handler

// newHandler assembles the go-kit server for one operation: decode+validate,
// run the endpoint, encode the result or the error envelope.
func newHandler(operation string, e endpoint.Endpoint, decode kithttp.DecodeRequestFunc, logger *zap.Logger) Handler {
	return kithttp.NewServer(
		errorLogging(logger, operation)(e),
		decode,
		EncodeJSONResponse,
		kithttp.ServerErrorEncoder(EncodeError),
	)
}

// errorLogging records every storage failure with its operation context before
// the error travels back to the caller unchanged. Nothing is swallowed and
// nothing is retried here.
func errorLogging(logger *zap.Logger, operation string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			response, err := next(ctx, request)
			if err != nil {
				fields := []zap.Field{
					zap.String("operation", operation),
					zap.Error(err),
				}
				var ie InternalErr
				if errors.As(err, &ie) && ie.Err != nil {
					fields = append(fields, zap.NamedError("cause", ie.Err))
				}
				logger.Error("operation failed", fields...)
			}
			return response, err
		}
	}
}
