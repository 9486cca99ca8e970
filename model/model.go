// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package model

import "time"

// Pump statuses accepted by the API.
const (
	StatusOnline      = "online"
	StatusOffline     = "offline"
	StatusMaintenance = "maintenance"
)

// PumpLog event types accepted by the API.
const (
	EventStart       = "start"
	EventStop        = "stop"
	EventMaintenance = "maintenance"
	EventError       = "error"
	EventWarning     = "warning"
)

// Pump is one physical pump unit tracked by the system. The id and both
// timestamps are assigned at the storage boundary and are never client-settable.
type Pump struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Model            string    `json:"model"`
	Status           string    `json:"status"`
	Pressure         float64   `json:"pressure"`
	FlowRate         float64   `json:"flow_rate"`
	PowerConsumption float64   `json:"power_consumption"`
	Location         string    `json:"location"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PumpPatch is a partial update to a Pump. Only non-nil fields are applied.
type PumpPatch struct {
	Name             *string  `json:"name,omitempty"`
	Model            *string  `json:"model,omitempty"`
	Status           *string  `json:"status,omitempty"`
	Pressure         *float64 `json:"pressure,omitempty"`
	FlowRate         *float64 `json:"flow_rate,omitempty"`
	PowerConsumption *float64 `json:"power_consumption,omitempty"`
	Location         *string  `json:"location,omitempty"`
}

// Empty returns true when the patch carries no fields.
func (p PumpPatch) Empty() bool {
	return p.Name == nil && p.Model == nil && p.Status == nil &&
		p.Pressure == nil && p.FlowRate == nil && p.PowerConsumption == nil &&
		p.Location == nil
}

// PumpLog is one discrete event recorded against a Pump. Logs are append-only:
// there is no update or delete path for them.
type PumpLog struct {
	ID        string         `json:"id"`
	PumpID    string         `json:"pump_id"`
	EventType string         `json:"event_type"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}
