// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aquapump/aquapump/model"
	"github.com/aquapump/aquapump/store"
)

// InMem keeps pumps and logs in process memory. The clock and id source are
// swappable for deterministic tests.
type InMem struct {
	lock  sync.Mutex
	pumps map[string]model.Pump
	logs  map[string][]model.PumpLog
	now   func() time.Time
	newID func() string
}

func New() *InMem {
	return &InMem{
		pumps: map[string]model.Pump{},
		logs:  map[string][]model.PumpLog{},
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

var _ store.S = (*InMem)(nil)

func (i *InMem) ListPumps(_ context.Context) ([]model.Pump, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	result := make([]model.Pump, 0, len(i.pumps))
	for _, p := range i.pumps {
		result = append(result, p)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	return result, nil
}

func (i *InMem) GetPump(_ context.Context, id string) (model.Pump, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	pump, ok := i.pumps[id]
	if !ok {
		return model.Pump{}, store.ItemNotFoundErr{Kind: "pump", ID: id}
	}
	return pump, nil
}

func (i *InMem) CreatePump(_ context.Context, pump model.Pump) (model.Pump, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	now := i.now()
	pump.ID = i.newID()
	pump.CreatedAt = now
	pump.UpdatedAt = now
	i.pumps[pump.ID] = pump
	return pump, nil
}

func (i *InMem) UpdatePump(_ context.Context, id string, patch model.PumpPatch) (model.Pump, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	pump, ok := i.pumps[id]
	if !ok {
		return model.Pump{}, store.ItemNotFoundErr{Kind: "pump", ID: id}
	}
	store.ApplyPatch(&pump, patch)
	pump.UpdatedAt = i.now()
	i.pumps[id] = pump
	return pump, nil
}

// DeletePump succeeds whether or not the pump existed, matching the hosted
// store's delete semantics.
func (i *InMem) DeletePump(_ context.Context, id string) error {
	i.lock.Lock()
	defer i.lock.Unlock()
	delete(i.pumps, id)
	delete(i.logs, id)
	return nil
}

func (i *InMem) ListLogs(_ context.Context, pumpID string, limit int) ([]model.PumpLog, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	logs := i.logs[pumpID]
	result := make([]model.PumpLog, len(logs))
	copy(result, logs)
	sort.Slice(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (i *InMem) CreateLog(_ context.Context, log model.PumpLog) (model.PumpLog, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	log.ID = i.newID()
	log.CreatedAt = i.now()
	if log.Metadata == nil {
		log.Metadata = map[string]any{}
	}
	i.logs[log.PumpID] = append(i.logs[log.PumpID], log)
	return log, nil
}
