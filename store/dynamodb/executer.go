// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package dynamodb

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/aquapump/aquapump/model"
	"github.com/aquapump/aquapump/store"
)

// client captures the DynamoDB API methods of interest. It keeps the executor
// mockable in tests.
type client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// executor speaks raw DynamoDB. The measured wrapper in db.go adapts it to the
// store contract; instrumentation stays out of here.
type executor struct {
	c         client
	pumpTable string
	logTable  string
	now       func() time.Time
	newID     func() string
}

func newExecutor(c client, pumpTable, logTable string) *executor {
	return &executor{
		c:         c,
		pumpTable: pumpTable,
		logTable:  logTable,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Attribute keys on the pump and log tables.
const (
	idAttributeKey      = "id"
	pumpIDAttributeKey  = "pump_id"
	createdAtAttribute  = "created_at"
	updatedAtAttribute  = "updated_at"
	existsCondition     = "attribute_exists(" + idAttributeKey + ")"
	pumpQueryExpression = pumpIDAttributeKey + " = :pump_id"
)

type pumpRecord struct {
	ID               string    `dynamodbav:"id"`
	Name             string    `dynamodbav:"name"`
	Model            string    `dynamodbav:"model"`
	Status           string    `dynamodbav:"status"`
	Pressure         float64   `dynamodbav:"pressure"`
	FlowRate         float64   `dynamodbav:"flow_rate"`
	PowerConsumption float64   `dynamodbav:"power_consumption"`
	Location         string    `dynamodbav:"location"`
	CreatedAt        time.Time `dynamodbav:"created_at"`
	UpdatedAt        time.Time `dynamodbav:"updated_at"`
}

type logRecord struct {
	ID        string         `dynamodbav:"id"`
	PumpID    string         `dynamodbav:"pump_id"`
	EventType string         `dynamodbav:"event_type"`
	Message   string         `dynamodbav:"message"`
	Metadata  map[string]any `dynamodbav:"metadata"`
	CreatedAt time.Time      `dynamodbav:"created_at"`
}

func toPumpRecord(p model.Pump) pumpRecord {
	return pumpRecord(p)
}

func (r pumpRecord) toModel() model.Pump {
	return model.Pump(r)
}

func (r logRecord) toModel() model.PumpLog {
	l := model.PumpLog(r)
	if l.Metadata == nil {
		l.Metadata = map[string]any{}
	}
	return l
}

func (e *executor) ListPumps(ctx context.Context) ([]model.Pump, error) {
	pumps := []model.Pump{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := e.c.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(e.pumpTable),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, store.SanitizeError("pumps.list", err)
		}
		var page []pumpRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, store.SanitizeError("pumps.list", err)
		}
		for _, r := range page {
			pumps = append(pumps, r.toModel())
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	// newest first; the table itself has no useful ordering for a scan
	sort.Slice(pumps, func(a, b int) bool {
		return pumps[a].CreatedAt.After(pumps[b].CreatedAt)
	})
	return pumps, nil
}

func (e *executor) GetPump(ctx context.Context, id string) (model.Pump, error) {
	out, err := e.c.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(e.pumpTable),
		Key: map[string]types.AttributeValue{
			idAttributeKey: &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return model.Pump{}, store.SanitizeError("pumps.get", err)
	}
	if len(out.Item) == 0 {
		return model.Pump{}, store.ItemNotFoundErr{Kind: "pump", ID: id}
	}
	var record pumpRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return model.Pump{}, store.SanitizeError("pumps.get", err)
	}
	return record.toModel(), nil
}

func (e *executor) CreatePump(ctx context.Context, pump model.Pump) (model.Pump, error) {
	now := e.now()
	pump.ID = e.newID()
	pump.CreatedAt = now
	pump.UpdatedAt = now

	av, err := attributevalue.MarshalMap(toPumpRecord(pump))
	if err != nil {
		return model.Pump{}, store.SanitizeError("pumps.create", err)
	}
	_, err = e.c.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(e.pumpTable),
		Item:      av,
	})
	if err != nil {
		return model.Pump{}, store.SanitizeError("pumps.create", err)
	}
	return pump, nil
}

func (e *executor) UpdatePump(ctx context.Context, id string, patch model.PumpPatch) (model.Pump, error) {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	var sets []string

	set := func(attr string, value any) error {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		placeholder := "#" + attr
		names[placeholder] = attr
		values[":"+attr] = av
		sets = append(sets, placeholder+" = :"+attr)
		return nil
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Model != nil {
		fields["model"] = *patch.Model
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.Pressure != nil {
		fields["pressure"] = *patch.Pressure
	}
	if patch.FlowRate != nil {
		fields["flow_rate"] = *patch.FlowRate
	}
	if patch.PowerConsumption != nil {
		fields["power_consumption"] = *patch.PowerConsumption
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	fields[updatedAtAttribute] = e.now()

	for attr, value := range fields {
		if err := set(attr, value); err != nil {
			return model.Pump{}, store.SanitizeError("pumps.update", err)
		}
	}

	out, err := e.c.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(e.pumpTable),
		Key: map[string]types.AttributeValue{
			idAttributeKey: &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String(existsCondition),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return model.Pump{}, store.ItemNotFoundErr{Kind: "pump", ID: id}
		}
		return model.Pump{}, store.SanitizeError("pumps.update", err)
	}
	var record pumpRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &record); err != nil {
		return model.Pump{}, store.SanitizeError("pumps.update", err)
	}
	return record.toModel(), nil
}

// batchWriteLimit is DynamoDB's per-request cap on batch write operations.
const batchWriteLimit = 25

// DeletePump is unconditional: removing an absent id acknowledges exactly like
// removing a live one. The pump's logs go with it; the log table has no
// foreign key to cascade through, so the adapter removes them itself.
func (e *executor) DeletePump(ctx context.Context, id string) error {
	_, err := e.c.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(e.pumpTable),
		Key: map[string]types.AttributeValue{
			idAttributeKey: &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return store.SanitizeError("pumps.delete", err)
	}
	return e.deleteLogs(ctx, id)
}

func (e *executor) deleteLogs(ctx context.Context, pumpID string) error {
	var startKey map[string]types.AttributeValue
	for {
		out, err := e.c.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(e.logTable),
			KeyConditionExpression: aws.String(pumpQueryExpression),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pump_id": &types.AttributeValueMemberS{Value: pumpID},
			},
			ProjectionExpression: aws.String(pumpIDAttributeKey + ", " + createdAtAttribute),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			return store.SanitizeError("pumps.delete", err)
		}

		for start := 0; start < len(out.Items); start += batchWriteLimit {
			end := start + batchWriteLimit
			if end > len(out.Items) {
				end = len(out.Items)
			}
			requests := make([]types.WriteRequest, 0, end-start)
			for _, key := range out.Items[start:end] {
				requests = append(requests, types.WriteRequest{
					DeleteRequest: &types.DeleteRequest{Key: key},
				})
			}
			_, err := e.c.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					e.logTable: requests,
				},
			})
			if err != nil {
				return store.SanitizeError("pumps.delete", err)
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (e *executor) ListLogs(ctx context.Context, pumpID string, limit int) ([]model.PumpLog, error) {
	out, err := e.c.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(e.logTable),
		KeyConditionExpression: aws.String(pumpQueryExpression),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pump_id": &types.AttributeValueMemberS{Value: pumpID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, store.SanitizeError("pumps.logs.list", err)
	}
	var records []logRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, store.SanitizeError("pumps.logs.list", err)
	}
	logs := make([]model.PumpLog, 0, len(records))
	for _, r := range records {
		logs = append(logs, r.toModel())
	}
	return logs, nil
}

func (e *executor) CreateLog(ctx context.Context, log model.PumpLog) (model.PumpLog, error) {
	log.ID = e.newID()
	log.CreatedAt = e.now()
	if log.Metadata == nil {
		log.Metadata = map[string]any{}
	}
	av, err := attributevalue.MarshalMap(logRecord(log))
	if err != nil {
		return model.PumpLog{}, store.SanitizeError("pumps.logs.create", err)
	}
	_, err = e.c.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(e.logTable),
		Item:      av,
	})
	if err != nil {
		return model.PumpLog{}, store.SanitizeError("pumps.logs.create", err)
	}
	return log, nil
}
