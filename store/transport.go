// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"
)

// ErrCasting indicates a middleware wiring mistake with the go-kit style
// encoders.
var ErrCasting = errors.New("casting error due to middleware wiring mistake")

const contentTypeJSON = "application/json; charset=utf-8"

// DeleteAck is the uniform acknowledgment for pump deletion. It carries no
// not-found signal on purpose; deleting an absent id looks identical to
// deleting a live one.
type DeleteAck struct {
	Success bool `json:"success"`
}

// errorEnvelope is the wire shape for every failed operation.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func decodeListPumpsRequest(_ context.Context, _ *http.Request) (interface{}, error) {
	// no input shape to validate
	return struct{}{}, nil
}

func decodeGetPumpRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req GetPumpRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateInput(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeCreatePumpRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req CreatePumpRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateInput(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeUpdatePumpRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req UpdatePumpRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateInput(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeDeletePumpRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req DeletePumpRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateInput(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeListLogsRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req ListLogsRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateInput(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func decodeCreateLogRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req CreateLogRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateInput(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// decodeBody unmarshals the request payload into target. An empty body decodes
// to the zero value so that missing-field reporting comes from validation, not
// from the JSON parser.
func decodeBody(r *http.Request, target any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return BadRequestErr{Message: "failed to read request body"}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return BadRequestErr{Message: "failed to unmarshal json"}
	}
	return nil
}

// EncodeJSONResponse writes any successful operation result as JSON.
func EncodeJSONResponse(_ context.Context, rw http.ResponseWriter, response interface{}) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}
	rw.Header().Set("Content-Type", contentTypeJSON)
	rw.Write(data)
	return nil
}

// EncodeError translates the error taxonomy into the JSON error envelope.
// Errors carrying a go-kit StatusCoder keep their code; anything else is an
// internal error.
func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	code := http.StatusInternalServerError
	if sc, ok := err.(kithttp.StatusCoder); ok {
		code = sc.StatusCode()
	}

	body := errorBody{Code: errorCode(code), Message: err.Error()}
	var bre BadRequestErr
	if errors.As(err, &bre) {
		body.Field = bre.Field
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorEnvelope{Error: body})
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "internal_error"
	}
}
