package dynamodb

import (
	"context"
	"fmt"
	"time"

	"insight-backend/application/ports"
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

// Single-table layout shared by all repositories in this package.
//
//	PK = <ENTITY>#<id>     SK = "METADATA"
//	GSI1PK = TYPE#<ENTITY> GSI1SK = <createdAt>#<id>   (type-level listings)
//	GSI2PK = PARENT#<id>   GSI2SK = <ENTITY>#<suffix>  (engagement by item)
const (
	skMetadata = "METADATA"

	entityTypeContent  = "CONTENT"
	entityTypeComment  = "COMMENT"
	entityTypeReaction = "REACTION"
	entityTypeEvent    = "EVENT"
)

// ContentRepository implements ports.ContentRepository using DynamoDB
type ContentRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.ContentRepository {
	return &ContentRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// contentItem represents the DynamoDB item structure for a content item
type contentItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	ContentID  string `dynamodbav:"ContentID"`
	Kind       string `dynamodbav:"Kind"`
	Title      string `dynamodbav:"Title"`
	Body       string `dynamodbav:"Body"`
	Format     string `dynamodbav:"Format"`
	AuthorID   string `dynamodbav:"AuthorID"`
	Status     string `dynamodbav:"Status"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
	Version    int    `dynamodbav:"Version"`
}

// Save persists a content item to DynamoDB
func (r *ContentRepository) Save(ctx context.Context, item *entities.ContentItem) error {
	record := contentItem{
		PK:         fmt.Sprintf("CONTENT#%s", item.ID().String()),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("TYPE#%s", entityTypeContent),
		GSI1SK:     fmt.Sprintf("%s#%s", item.CreatedAt().UTC().Format(time.RFC3339), item.ID().String()),
		EntityType: entityTypeContent,
		ContentID:  item.ID().String(),
		Kind:       string(item.Kind()),
		Title:      item.Content().Title(),
		Body:       item.Content().Body(),
		Format:     string(item.Content().Format()),
		AuthorID:   item.AuthorID(),
		Status:     string(item.Status()),
		CreatedAt:  item.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:  item.UpdatedAt().UTC().Format(time.RFC3339),
		Version:    item.Version(),
	}

	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal content item: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save content item",
			zap.Error(err),
			zap.String("contentID", item.ID().String()),
		)
		return fmt.Errorf("failed to save content item: %w", err)
	}

	return nil
}

// GetByID retrieves a content item by its ID
func (r *ContentRepository) GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.ContentItem, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONTENT#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get content item: %w", err)
	}
	if result.Item == nil {
		return nil, appErrors.ErrContentNotFound
	}

	var record contentItem
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content item: %w", err)
	}

	return r.reconstruct(record)
}

// List retrieves all content items via the entity-type index
func (r *ContentRepository) List(ctx context.Context) ([]*entities.ContentItem, error) {
	return r.query(ctx, expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("TYPE#%s", entityTypeContent))), nil)
}

// ListByKind retrieves all content items of one kind
func (r *ContentRepository) ListByKind(ctx context.Context, kind entities.ContentKind) ([]*entities.ContentItem, error) {
	filter := expression.Name("Kind").Equal(expression.Value(string(kind)))
	return r.query(ctx, expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("TYPE#%s", entityTypeContent))), &filter)
}

// Delete removes a content item
func (r *ContentRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONTENT#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	return nil
}

func (r *ContentRepository) query(ctx context.Context, keyCond expression.KeyConditionBuilder, filter *expression.ConditionBuilder) ([]*entities.ContentItem, error) {
	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter != nil {
		builder = builder.WithFilter(*filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	items := make([]*entities.ContentItem, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query content items: %w", err)
		}
		for _, raw := range page.Items {
			var record contentItem
			if err := attributevalue.UnmarshalMap(raw, &record); err != nil {
				r.logger.Warn("Failed to unmarshal content item", zap.Error(err))
				continue
			}
			item, err := r.reconstruct(record)
			if err != nil {
				r.logger.Warn("Failed to reconstruct content item",
					zap.String("contentID", record.ContentID),
					zap.Error(err))
				continue
			}
			items = append(items, item)
		}
	}

	return items, nil
}

func (r *ContentRepository) reconstruct(record contentItem) (*entities.ContentItem, error) {
	id, err := valueobjects.NewContentIDFromString(record.ContentID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored content ID: %w", err)
	}

	content, err := valueobjects.NewItemContent(record.Title, record.Body, valueobjects.ContentFormat(record.Format))
	if err != nil {
		return nil, fmt.Errorf("invalid stored content: %w", err)
	}

	createdAt, _ := time.Parse(time.RFC3339, record.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, record.UpdatedAt)

	return entities.ReconstructContentItem(
		id,
		entities.ContentKind(record.Kind),
		content,
		record.AuthorID,
		entities.ContentStatus(record.Status),
		createdAt,
		updatedAt,
		record.Version,
	)
}
