// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/aquapump/aquapump/model"
	"github.com/aquapump/aquapump/store"
	"github.com/aquapump/aquapump/store/db/metric"
)

const (
	defaultPumpTable  = "pumps"
	defaultLogTable   = "pump_logs"
	defaultMaxRetries = 3
)

// Config holds the connection settings for the hosted DynamoDB tables.
type Config struct {
	// PumpTable and LogTable default to "pumps" and "pump_logs".
	PumpTable string
	LogTable  string

	// Endpoint overrides the AWS endpoint, e.g. for dynamodb-local.
	Endpoint string

	Region     string
	AccessKey  string
	SecretKey  string
	MaxRetries int
}

func (c *Config) applyDefaults() {
	if c.PumpTable == "" {
		c.PumpTable = defaultPumpTable
	}
	if c.LogTable == "" {
		c.LogTable = defaultLogTable
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
}

// DynamoDB adapts the hosted tables to the store contract and keeps the query
// counters up to date. Every method is a single network round trip.
type DynamoDB struct {
	inner    store.S
	measures metric.Measures
}

var _ store.S = (*DynamoDB)(nil)

// New connects to DynamoDB and returns the measured adapter.
func New(ctx context.Context, config Config, measures metric.Measures) (*DynamoDB, error) {
	config.applyDefaults()

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
		awsconfig.WithRetryMaxAttempts(config.MaxRetries),
	}
	if config.AccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, err
	}

	c := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
	})

	return &DynamoDB{
		inner:    newExecutor(c, config.PumpTable, config.LogTable),
		measures: measures,
	}, nil
}

// newMeasured wraps an executor for tests.
func newMeasured(inner store.S, measures metric.Measures) *DynamoDB {
	return &DynamoDB{inner: inner, measures: measures}
}

func (d *DynamoDB) observe(kind string, err error) {
	if err != nil {
		d.measures.QueryFailureCount.With(prometheusLabels(kind)).Add(1)
		return
	}
	d.measures.QuerySuccessCount.With(prometheusLabels(kind)).Add(1)
}

func prometheusLabels(kind string) map[string]string {
	return map[string]string{store.TypeLabel: kind}
}

func (d *DynamoDB) ListPumps(ctx context.Context) ([]model.Pump, error) {
	pumps, err := d.inner.ListPumps(ctx)
	d.observe(store.ReadType, err)
	return pumps, err
}

func (d *DynamoDB) GetPump(ctx context.Context, id string) (model.Pump, error) {
	pump, err := d.inner.GetPump(ctx, id)
	d.observe(store.ReadType, err)
	return pump, err
}

func (d *DynamoDB) CreatePump(ctx context.Context, pump model.Pump) (model.Pump, error) {
	created, err := d.inner.CreatePump(ctx, pump)
	d.observe(store.InsertType, err)
	return created, err
}

func (d *DynamoDB) UpdatePump(ctx context.Context, id string, patch model.PumpPatch) (model.Pump, error) {
	updated, err := d.inner.UpdatePump(ctx, id, patch)
	d.observe(store.UpdateType, err)
	return updated, err
}

func (d *DynamoDB) DeletePump(ctx context.Context, id string) error {
	err := d.inner.DeletePump(ctx, id)
	d.observe(store.DeleteType, err)
	return err
}

func (d *DynamoDB) ListLogs(ctx context.Context, pumpID string, limit int) ([]model.PumpLog, error) {
	logs, err := d.inner.ListLogs(ctx, pumpID, limit)
	d.observe(store.ReadType, err)
	return logs, err
}

func (d *DynamoDB) CreateLog(ctx context.Context, log model.PumpLog) (model.PumpLog, error) {
	created, err := d.inner.CreateLog(ctx, log)
	d.observe(store.InsertType, err)
	return created, err
}
