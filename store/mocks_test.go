// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aquapump/aquapump/model"
)

type MockS struct {
	mock.Mock
}

func (m *MockS) ListPumps(_ context.Context) ([]model.Pump, error) {
	args := m.Called()
	return args.Get(0).([]model.Pump), args.Error(1)
}

func (m *MockS) GetPump(_ context.Context, id string) (model.Pump, error) {
	args := m.Called(id)
	return args.Get(0).(model.Pump), args.Error(1)
}

func (m *MockS) CreatePump(_ context.Context, pump model.Pump) (model.Pump, error) {
	args := m.Called(pump)
	return args.Get(0).(model.Pump), args.Error(1)
}

func (m *MockS) UpdatePump(_ context.Context, id string, patch model.PumpPatch) (model.Pump, error) {
	args := m.Called(id, patch)
	return args.Get(0).(model.Pump), args.Error(1)
}

func (m *MockS) DeletePump(_ context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockS) ListLogs(_ context.Context, pumpID string, limit int) ([]model.PumpLog, error) {
	args := m.Called(pumpID, limit)
	return args.Get(0).([]model.PumpLog), args.Error(1)
}

func (m *MockS) CreateLog(_ context.Context, log model.PumpLog) (model.PumpLog, error) {
	args := m.Called(log)
	return args.Get(0).(model.PumpLog), args.Error(1)
}
