// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/aquapump/aquapump/model"
)

const (
	// TypeLabel is for labeling metrics by operation kind.
	TypeLabel  = "type"
	InsertType = "insert"
	UpdateType = "update"
	DeleteType = "delete"
	ReadType   = "read"
)

// S is the data store adapter contract. Implementations own nothing beyond
// parameter marshaling and error propagation; every call round-trips to the
// backing store. ListPumps returns pumps ordered by creation time descending.
// ListLogs returns at most limit rows for one pump, newest first.
//
// DeletePump acknowledges uniformly whether or not a row existed. That
// mirrors the hosted store's delete semantics: a repeat delete is
// indistinguishable from the first one. Deleting a pump removes its logs in
// every backend.
type S interface {
	ListPumps(ctx context.Context) ([]model.Pump, error)
	GetPump(ctx context.Context, id string) (model.Pump, error)
	CreatePump(ctx context.Context, pump model.Pump) (model.Pump, error)
	UpdatePump(ctx context.Context, id string, patch model.PumpPatch) (model.Pump, error)
	DeletePump(ctx context.Context, id string) error

	ListLogs(ctx context.Context, pumpID string, limit int) ([]model.PumpLog, error)
	CreateLog(ctx context.Context, log model.PumpLog) (model.PumpLog, error)
}

// ApplyPatch copies the patch's non-nil fields onto the pump. Identity and
// timestamps are left alone; the storage layer owns those.
func ApplyPatch(pump *model.Pump, patch model.PumpPatch) {
	if patch.Name != nil {
		pump.Name = *patch.Name
	}
	if patch.Model != nil {
		pump.Model = *patch.Model
	}
	if patch.Status != nil {
		pump.Status = *patch.Status
	}
	if patch.Pressure != nil {
		pump.Pressure = *patch.Pressure
	}
	if patch.FlowRate != nil {
		pump.FlowRate = *patch.FlowRate
	}
	if patch.PowerConsumption != nil {
		pump.PowerConsumption = *patch.PowerConsumption
	}
	if patch.Location != nil {
		pump.Location = *patch.Location
	}
}
