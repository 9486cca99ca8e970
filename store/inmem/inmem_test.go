// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package inmem

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquapump/aquapump/model"
	"github.com/aquapump/aquapump/store"
)

func stringPtr(s string) *string    { return &s }
func float64Ptr(f float64) *float64 { return &f }

// newFixed returns a store with a deterministic clock and id sequence. Each
// call to the clock advances by one second so creation order is observable.
func newFixed() *InMem {
	s := New()
	seq := 0
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		seq++
		return base.Add(time.Duration(seq) * time.Second)
	}
	ids := 0
	s.newID = func() string {
		ids++
		return fmt.Sprintf("id-%04d", ids)
	}
	return s
}

func TestCreateAndGetPump(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s := newFixed()
	ctx := context.Background()

	created, err := s.CreatePump(ctx, model.Pump{
		Name:             "AquaPro 3000",
		Model:            "AP-3000",
		Status:           model.StatusOnline,
		Pressure:         8,
		FlowRate:         150,
		PowerConsumption: 3,
		Location:         "Site A",
	})
	require.NoError(err)
	assert.Equal("id-0001", created.ID)
	assert.False(created.CreatedAt.IsZero())
	assert.Equal(created.CreatedAt, created.UpdatedAt)

	fetched, err := s.GetPump(ctx, created.ID)
	require.NoError(err)
	assert.Equal(created, fetched)
}

func TestGetPumpNotFound(t *testing.T) {
	assert := assert.New(t)
	s := newFixed()
	_, err := s.GetPump(context.Background(), "id-9999")
	assert.ErrorIs(err, store.ErrNotFound)
}

func TestListPumpsNewestFirst(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s := newFixed()
	ctx := context.Background()

	first, err := s.CreatePump(ctx, model.Pump{Name: "first"})
	require.NoError(err)
	second, err := s.CreatePump(ctx, model.Pump{Name: "second"})
	require.NoError(err)

	pumps, err := s.ListPumps(ctx)
	require.NoError(err)
	require.Len(pumps, 2)
	assert.Equal(second.ID, pumps[0].ID)
	assert.Equal(first.ID, pumps[1].ID)
}

func TestUpdatePumpPartialPatch(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s := newFixed()
	ctx := context.Background()

	created, err := s.CreatePump(ctx, model.Pump{
		Name:     "AquaPro 3000",
		Model:    "AP-3000",
		Status:   model.StatusOnline,
		Pressure: 8,
		Location: "Site A",
	})
	require.NoError(err)

	updated, err := s.UpdatePump(ctx, created.ID, model.PumpPatch{
		Status:   stringPtr(model.StatusMaintenance),
		Pressure: float64Ptr(0),
	})
	require.NoError(err)

	// patched fields change, the rest survive untouched
	assert.Equal(model.StatusMaintenance, updated.Status)
	assert.Zero(updated.Pressure)
	assert.Equal("AquaPro 3000", updated.Name)
	assert.Equal("AP-3000", updated.Model)
	assert.Equal("Site A", updated.Location)
	assert.Equal(created.CreatedAt, updated.CreatedAt)
	assert.True(updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdatePumpNotFound(t *testing.T) {
	assert := assert.New(t)
	s := newFixed()
	_, err := s.UpdatePump(context.Background(), "id-9999", model.PumpPatch{Name: stringPtr("x")})
	assert.ErrorIs(err, store.ErrNotFound)
}

func TestDeletePumpThenGet(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s := newFixed()
	ctx := context.Background()

	created, err := s.CreatePump(ctx, model.Pump{Name: "doomed"})
	require.NoError(err)
	_, err = s.CreateLog(ctx, model.PumpLog{PumpID: created.ID, EventType: model.EventStop, Message: "halt"})
	require.NoError(err)

	require.NoError(s.DeletePump(ctx, created.ID))

	_, err = s.GetPump(ctx, created.ID)
	assert.ErrorIs(err, store.ErrNotFound)

	logs, err := s.ListLogs(ctx, created.ID, store.DefaultLogLimit)
	require.NoError(err)
	assert.Empty(logs)
}

func TestDeletePumpAbsentIDSucceeds(t *testing.T) {
	assert := assert.New(t)
	s := newFixed()
	assert.NoError(s.DeletePump(context.Background(), "id-9999"))
}

func TestListLogsOrderAndLimit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s := newFixed()
	ctx := context.Background()

	pump, err := s.CreatePump(ctx, model.Pump{Name: "chatty"})
	require.NoError(err)

	for i := 0; i < 5; i++ {
		_, err = s.CreateLog(ctx, model.PumpLog{
			PumpID:    pump.ID,
			EventType: model.EventWarning,
			Message:   fmt.Sprintf("event %d", i),
		})
		require.NoError(err)
	}

	logs, err := s.ListLogs(ctx, pump.ID, 3)
	require.NoError(err)
	require.Len(logs, 3)
	assert.Equal("event 4", logs[0].Message)
	assert.Equal("event 3", logs[1].Message)
	assert.Equal("event 2", logs[2].Message)

	all, err := s.ListLogs(ctx, pump.ID, store.DefaultLogLimit)
	require.NoError(err)
	assert.Len(all, 5)
}

func TestListLogsUnknownPumpIsEmpty(t *testing.T) {
	assert := assert.New(t)
	s := newFixed()
	logs, err := s.ListLogs(context.Background(), "id-9999", store.DefaultLogLimit)
	assert.NoError(err)
	assert.Empty(logs)
}

func TestCreateLogDefaultsMetadata(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s := newFixed()

	log, err := s.CreateLog(context.Background(), model.PumpLog{
		PumpID:    "id-0001",
		EventType: model.EventError,
		Message:   "overpressure",
	})
	require.NoError(err)
	assert.NotNil(log.Metadata)
	assert.Empty(log.Metadata)
	assert.False(log.CreatedAt.IsZero())
}
