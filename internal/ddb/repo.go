// Package ddb provides the typed record-store client for inspection records.
//
// Layout: single table keyed PK=INSPECTION#<id> SK=METADATA, with GSI1
// projecting GSI1PK=STATUS#<status> GSI1SK=createdAt for filtered listing.
package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/propertypulse/inspection-platform/internal/apperr"
	"github.com/propertypulse/inspection-platform/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	skMetadata  = "METADATA"
	pkPrefix    = "INSPECTION#"
	statusIndex = "GSI1"
)

// API is the subset of the DynamoDB client the repo uses. Tests substitute
// an in-memory implementation.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Repo wraps a DynamoDB client and table name for inspection operations.
type Repo struct {
	DB    API
	Table string
}

// MakeKeys constructs the partition and sort key for an inspection record.
func MakeKeys(inspectionID string) (pk, sk string) {
	return pkPrefix + inspectionID, skMetadata
}

// StatusKey constructs the GSI1 partition key for a status.
func StatusKey(status models.InspectionStatus) string {
	return fmt.Sprintf("STATUS#%s", status)
}

func (r *Repo) key(inspectionID string) map[string]types.AttributeValue {
	pk, sk := MakeKeys(inspectionID)
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

// Insert writes a fresh inspection, refusing to overwrite an existing id.
// The caller supplies a freshly generated id so the condition only guards
// against generator collisions.
func (r *Repo) Insert(ctx context.Context, insp models.Inspection) error {
	insp.PK, insp.SK = MakeKeys(insp.InspectionID)
	insp.GSI1PK = StatusKey(insp.Status)
	insp.GSI1SK = insp.CreatedAt

	item, err := attributevalue.MarshalMap(insp)
	if err != nil {
		return fmt.Errorf("marshal inspection: %w", err)
	}
	_, err = r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.Table,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("put inspection %s: %w", insp.InspectionID, err)
	}
	return nil
}

// Get performs a point lookup by inspection id.
func (r *Repo) Get(ctx context.Context, inspectionID string) (*models.Inspection, error) {
	out, err := r.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.Table,
		Key:       r.key(inspectionID),
	})
	if err != nil {
		return nil, fmt.Errorf("get inspection %s: %w", inspectionID, err)
	}
	if len(out.Item) == 0 {
		return nil, apperr.ErrNotFound
	}
	var insp models.Inspection
	if err := attributevalue.UnmarshalMap(out.Item, &insp); err != nil {
		return nil, fmt.Errorf("unmarshal inspection %s: %w", inspectionID, err)
	}
	return &insp, nil
}

// ListByStatus queries GSI1 for one status partition, most recent first
// (GSI1SK is createdAt, read descending).
func (r *Repo) ListByStatus(ctx context.Context, status models.InspectionStatus) ([]models.Inspection, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(StatusKey(status)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}

	var items []models.Inspection
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.DB.Query(ctx, &dynamodb.QueryInput{
			TableName:                 &r.Table,
			IndexName:                 aws.String(statusIndex),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query status %s: %w", status, err)
		}
		var page []models.Inspection
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal status page: %w", err)
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

// ListAll scans every inspection record. Ordering is the caller's concern;
// a table scan has no natural order.
func (r *Repo) ListAll(ctx context.Context) ([]models.Inspection, error) {
	filter := expression.BeginsWith(expression.Name("PK"), pkPrefix)
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("build scan filter: %w", err)
	}

	var items []models.Inspection
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.DB.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 &r.Table,
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan inspections: %w", err)
		}
		var page []models.Inspection
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal scan page: %w", err)
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

// Apply merges a patch into an existing record as one conditional UpdateItem:
// existence check, field merge, updatedAt refresh, and — when the patch
// carries a status — the GSI1PK projection rewrite all land atomically.
// Returns the post-update record.
func (r *Repo) Apply(ctx context.Context, inspectionID string, p models.Patch, updatedAt string) (*models.Inspection, error) {
	upd := expression.Set(expression.Name("updatedAt"), expression.Value(updatedAt))
	for name, value := range p.Updates() {
		upd = upd.Set(expression.Name(name), expression.Value(value))
	}
	if p.Status != nil {
		upd = upd.Set(expression.Name("GSI1PK"), expression.Value(StatusKey(*p.Status)))
	}
	cond := expression.AttributeExists(expression.Name("PK"))

	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("build patch expression: %w", err)
	}

	out, err := r.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &r.Table,
		Key:                       r.key(inspectionID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("patch inspection %s: %w", inspectionID, err)
	}

	var insp models.Inspection
	if err := attributevalue.UnmarshalMap(out.Attributes, &insp); err != nil {
		return nil, fmt.Errorf("unmarshal patched inspection %s: %w", inspectionID, err)
	}
	return &insp, nil
}
