// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/aquapump/aquapump/model"
)

// Each endpoint maps one validated operation onto the adapter 1:1. By the time
// an endpoint runs, the request has already passed its declared shape check.

func newListPumpsEndpoint(s S) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.ListPumps(ctx)
	}
}

func newGetPumpEndpoint(s S) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*GetPumpRequest)
		if !ok {
			return nil, ErrCasting
		}
		pump, err := s.GetPump(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return &pump, nil
	}
}

func newCreatePumpEndpoint(s S) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*CreatePumpRequest)
		if !ok {
			return nil, ErrCasting
		}
		pump, err := s.CreatePump(ctx, model.Pump{
			Name:             req.Name,
			Model:            req.Model,
			Status:           req.Status,
			Pressure:         *req.Pressure,
			FlowRate:         *req.FlowRate,
			PowerConsumption: *req.PowerConsumption,
			Location:         req.Location,
		})
		if err != nil {
			return nil, err
		}
		return &pump, nil
	}
}

func newUpdatePumpEndpoint(s S) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*UpdatePumpRequest)
		if !ok {
			return nil, ErrCasting
		}
		patch := model.PumpPatch{
			Name:             req.Name,
			Model:            req.Model,
			Status:           req.Status,
			Pressure:         req.Pressure,
			FlowRate:         req.FlowRate,
			PowerConsumption: req.PowerConsumption,
			Location:         req.Location,
		}
		// a patch with no fields reads the current record instead of
		// issuing a write
		if patch.Empty() {
			pump, err := s.GetPump(ctx, req.ID)
			if err != nil {
				return nil, err
			}
			return &pump, nil
		}
		pump, err := s.UpdatePump(ctx, req.ID, patch)
		if err != nil {
			return nil, err
		}
		return &pump, nil
	}
}

func newDeletePumpEndpoint(s S) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*DeletePumpRequest)
		if !ok {
			return nil, ErrCasting
		}
		if err := s.DeletePump(ctx, req.ID); err != nil {
			return nil, err
		}
		return &DeleteAck{Success: true}, nil
	}
}

func newListLogsEndpoint(s S) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*ListLogsRequest)
		if !ok {
			return nil, ErrCasting
		}
		return s.ListLogs(ctx, req.PumpID, req.normalizedLimit())
	}
}

func newCreateLogEndpoint(s S) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*CreateLogRequest)
		if !ok {
			return nil, ErrCasting
		}
		log, err := s.CreateLog(ctx, model.PumpLog{
			PumpID:    req.PumpID,
			EventType: req.EventType,
			Message:   req.Message,
			Metadata:  req.normalizedMetadata(),
		})
		if err != nil {
			return nil, err
		}
		return &log, nil
	}
}
