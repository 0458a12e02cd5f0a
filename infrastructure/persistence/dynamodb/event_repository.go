package dynamodb

import (
	"context"
	"fmt"
	"time"

	"insight-backend/application/ports"
	"insight-backend/domain/access"
	"insight-backend/domain/core/entities"
	"insight-backend/domain/core/valueobjects"
	appErrors "insight-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// EventRepository implements ports.EventRepository using DynamoDB
type EventRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.EventRepository {
	return &EventRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// eventItem represents the DynamoDB item structure for an event
type eventItem struct {
	PK            string   `dynamodbav:"PK"`
	SK            string   `dynamodbav:"SK"`
	GSI1PK        string   `dynamodbav:"GSI1PK"`
	GSI1SK        string   `dynamodbav:"GSI1SK"`
	EntityType    string   `dynamodbav:"EntityType"`
	EventID       string   `dynamodbav:"EventID"`
	Title         string   `dynamodbav:"Title"`
	Description   string   `dynamodbav:"Description"`
	Location      string   `dynamodbav:"Location"`
	StartDate     string   `dynamodbav:"StartDate"`
	EndDate       string   `dynamodbav:"EndDate"`
	StaticStatus  string   `dynamodbav:"StaticStatus"`
	Visibility    string   `dynamodbav:"Visibility"`
	AllowedEmails []string `dynamodbav:"AllowedEmails,stringset,omitempty"`
	CreatedAt     string   `dynamodbav:"CreatedAt"`
	UpdatedAt     string   `dynamodbav:"UpdatedAt"`
	Version       int      `dynamodbav:"Version"`
}

// Save persists an event to DynamoDB
func (r *EventRepository) Save(ctx context.Context, event *entities.Event) error {
	record := eventItem{
		PK:            fmt.Sprintf("EVENT#%s", event.ID().String()),
		SK:            skMetadata,
		GSI1PK:        fmt.Sprintf("TYPE#%s", entityTypeEvent),
		GSI1SK:        fmt.Sprintf("%s#%s", event.CreatedAt().UTC().Format(time.RFC3339), event.ID().String()),
		EntityType:    entityTypeEvent,
		EventID:       event.ID().String(),
		Title:         event.Title(),
		Description:   event.Description(),
		Location:      event.Location(),
		StartDate:     event.StartDate(),
		EndDate:       event.EndDate(),
		StaticStatus:  event.StaticStatus(),
		Visibility:    string(event.Policy().Visibility),
		AllowedEmails: event.Policy().AllowedEmails,
		CreatedAt:     event.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:     event.UpdatedAt().UTC().Format(time.RFC3339),
		Version:       event.Version(),
	}

	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save event",
			zap.Error(err),
			zap.String("eventID", event.ID().String()),
		)
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by its ID
func (r *EventRepository) GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.Event, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("EVENT#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if result.Item == nil {
		return nil, appErrors.ErrEventNotFound
	}

	var record eventItem
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return reconstructEvent(record)
}

// List retrieves all events via the entity-type index
func (r *EventRepository) List(ctx context.Context) ([]*entities.Event, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("TYPE#%s", entityTypeEvent)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	events := make([]*entities.Event, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query events: %w", err)
		}
		for _, raw := range page.Items {
			var record eventItem
			if err := attributevalue.UnmarshalMap(raw, &record); err != nil {
				r.logger.Warn("Failed to unmarshal event", zap.Error(err))
				continue
			}
			event, err := reconstructEvent(record)
			if err != nil {
				r.logger.Warn("Failed to reconstruct event",
					zap.String("eventID", record.EventID),
					zap.Error(err))
				continue
			}
			events = append(events, event)
		}
	}

	return events, nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("EVENT#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func reconstructEvent(record eventItem) (*entities.Event, error) {
	id, err := valueobjects.NewContentIDFromString(record.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored event ID: %w", err)
	}

	createdAt, _ := time.Parse(time.RFC3339, record.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, record.UpdatedAt)

	policy := access.VisibilityPolicy{
		Visibility:    access.Visibility(record.Visibility),
		AllowedEmails: record.AllowedEmails,
	}

	return entities.ReconstructEvent(
		id,
		record.Title,
		record.Description,
		record.Location,
		record.StartDate,
		record.EndDate,
		record.StaticStatus,
		policy,
		createdAt,
		updatedAt,
		record.Version,
	)
}
