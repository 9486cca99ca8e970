// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Log listing bounds. The default applies when the caller omits limit; a
// caller-supplied limit above the ceiling is clamped rather than rejected.
const (
	DefaultLogLimit = 100
	MaxLogLimit     = 500
)

// GetPumpRequest fetches a single pump by id.
type GetPumpRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// CreatePumpRequest carries the full field set for a new pump. Numeric
// readings are pointers so a legitimate zero reading survives the required
// check.
type CreatePumpRequest struct {
	Name             string   `json:"name" validate:"required,min=1"`
	Model            string   `json:"model" validate:"required,min=1"`
	Status           string   `json:"status" validate:"required,oneof=online offline maintenance"`
	Pressure         *float64 `json:"pressure" validate:"required,gte=0"`
	FlowRate         *float64 `json:"flow_rate" validate:"required,gte=0"`
	PowerConsumption *float64 `json:"power_consumption" validate:"required,gte=0"`
	Location         string   `json:"location" validate:"required,min=1"`
}

// UpdatePumpRequest carries a partial patch. Every optional field is validated
// individually when present; omitnil skips only absent fields, so a supplied
// empty string or negative reading still fails.
type UpdatePumpRequest struct {
	ID               string   `json:"id" validate:"required,uuid"`
	Name             *string  `json:"name" validate:"omitnil,min=1"`
	Model            *string  `json:"model" validate:"omitnil,min=1"`
	Status           *string  `json:"status" validate:"omitnil,oneof=online offline maintenance"`
	Pressure         *float64 `json:"pressure" validate:"omitnil,gte=0"`
	FlowRate         *float64 `json:"flow_rate" validate:"omitnil,gte=0"`
	PowerConsumption *float64 `json:"power_consumption" validate:"omitnil,gte=0"`
	Location         *string  `json:"location" validate:"omitnil,min=1"`
}

// DeletePumpRequest removes a pump by id.
type DeletePumpRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// ListLogsRequest fetches recent logs for one pump.
type ListLogsRequest struct {
	PumpID string `json:"pumpId" validate:"required,uuid"`
	Limit  *int   `json:"limit" validate:"omitnil,min=1"`
}

// CreateLogRequest appends one event to a pump's log.
type CreateLogRequest struct {
	PumpID    string         `json:"pump_id" validate:"required,uuid"`
	EventType string         `json:"event_type" validate:"required,oneof=start stop maintenance error warning"`
	Message   string         `json:"message" validate:"required,min=1"`
	Metadata  map[string]any `json:"metadata"`
}

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report offending fields by their wire name, not the Go name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks the request against its declared shape and converts the
// first violation into a BadRequestErr naming the offending field. Validation
// is pure: no storage access happens here or before here.
func validateInput(input any) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return BadRequestErr{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		}
	}
	return BadRequestErr{Message: err.Error()}
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field is missing or empty"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}

// normalizedLimit applies the boundary defaults for log listing: absent means
// DefaultLogLimit, anything above MaxLogLimit is capped to it.
func (r ListLogsRequest) normalizedLimit() int {
	if r.Limit == nil {
		return DefaultLogLimit
	}
	if *r.Limit > MaxLogLimit {
		return MaxLogLimit
	}
	return *r.Limit
}

// normalizedMetadata applies the boundary default for log creation: an omitted
// metadata mapping becomes an empty one, never nil.
func (r CreateLogRequest) normalizedMetadata() map[string]any {
	if r.Metadata == nil {
		return map[string]any{}
	}
	return r.Metadata
}
