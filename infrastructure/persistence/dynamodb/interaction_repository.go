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

// CommentRepository implements ports.CommentRepository using DynamoDB
type CommentRepository struct {
	client      *dynamodb.Client
	tableName   string
	typeIndex   string
	parentIndex string
	logger      *zap.Logger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(client *dynamodb.Client, tableName, typeIndex, parentIndex string, logger *zap.Logger) ports.CommentRepository {
	return &CommentRepository{
		client:      client,
		tableName:   tableName,
		typeIndex:   typeIndex,
		parentIndex: parentIndex,
		logger:      logger,
	}
}

// commentItem represents the DynamoDB item structure for a comment
type commentItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	GSI2PK     string `dynamodbav:"GSI2PK"`
	GSI2SK     string `dynamodbav:"GSI2SK"`
	EntityType string `dynamodbav:"EntityType"`
	CommentID  string `dynamodbav:"CommentID"`
	ParentID   string `dynamodbav:"ParentID"`
	AuthorID   string `dynamodbav:"AuthorID"`
	Body       string `dynamodbav:"Body"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// Save persists a comment to DynamoDB
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	createdAt := comment.CreatedAt().UTC().Format(time.RFC3339)
	record := commentItem{
		PK:         fmt.Sprintf("COMMENT#%s", comment.ID().String()),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("TYPE#%s", entityTypeComment),
		GSI1SK:     fmt.Sprintf("%s#%s", createdAt, comment.ID().String()),
		GSI2PK:     fmt.Sprintf("PARENT#%s", comment.ParentID()),
		GSI2SK:     fmt.Sprintf("%s#%s#%s", entityTypeComment, createdAt, comment.ID().String()),
		EntityType: entityTypeComment,
		CommentID:  comment.ID().String(),
		ParentID:   comment.ParentID(),
		AuthorID:   comment.AuthorID(),
		Body:       comment.Body(),
		CreatedAt:  createdAt,
	}

	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save comment",
			zap.Error(err),
			zap.String("commentID", comment.ID().String()),
		)
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment by its ID
func (r *CommentRepository) GetByID(ctx context.Context, id valueobjects.ContentID) (*entities.Comment, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("COMMENT#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if result.Item == nil {
		return nil, appErrors.ErrCommentNotFound
	}

	var record commentItem
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
	}

	return reconstructComment(record)
}

// List retrieves all comments via the entity-type index
func (r *CommentRepository) List(ctx context.Context) ([]*entities.Comment, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("TYPE#%s", entityTypeComment)))
	return r.queryComments(ctx, r.typeIndex, keyCond)
}

// ListByParentID retrieves the comments correlated to one item
func (r *CommentRepository) ListByParentID(ctx context.Context, parentID string) ([]*entities.Comment, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(fmt.Sprintf("PARENT#%s", parentID))).
		And(expression.Key("GSI2SK").BeginsWith(entityTypeComment + "#"))
	return r.queryComments(ctx, r.parentIndex, keyCond)
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("COMMENT#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) queryComments(ctx context.Context, indexName string, keyCond expression.KeyConditionBuilder) ([]*entities.Comment, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	comments := make([]*entities.Comment, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query comments: %w", err)
		}
		for _, raw := range page.Items {
			var record commentItem
			if err := attributevalue.UnmarshalMap(raw, &record); err != nil {
				r.logger.Warn("Failed to unmarshal comment", zap.Error(err))
				continue
			}
			comment, err := reconstructComment(record)
			if err != nil {
				r.logger.Warn("Failed to reconstruct comment",
					zap.String("commentID", record.CommentID),
					zap.Error(err))
				continue
			}
			comments = append(comments, comment)
		}
	}

	return comments, nil
}

func reconstructComment(record commentItem) (*entities.Comment, error) {
	id, err := valueobjects.NewContentIDFromString(record.CommentID)
	if err != nil {
		return nil, fmt.Errorf("invalid stored comment ID: %w", err)
	}
	createdAt, _ := time.Parse(time.RFC3339, record.CreatedAt)
	return entities.ReconstructComment(id, record.ParentID, record.AuthorID, record.Body, createdAt), nil
}

// ReactionRepository implements ports.ReactionRepository using DynamoDB
type ReactionRepository struct {
	client      *dynamodb.Client
	tableName   string
	typeIndex   string
	parentIndex string
	logger      *zap.Logger
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(client *dynamodb.Client, tableName, typeIndex, parentIndex string, logger *zap.Logger) ports.ReactionRepository {
	return &ReactionRepository{
		client:      client,
		tableName:   tableName,
		typeIndex:   typeIndex,
		parentIndex: parentIndex,
		logger:      logger,
	}
}

// reactionItem represents the DynamoDB item structure for a reaction.
// GSI2SK carries the user ID so the one-reaction-per-user lookup is a
// single key-condition query.
type reactionItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	GSI2PK     string `dynamodbav:"GSI2PK"`
	GSI2SK     string `dynamodbav:"GSI2SK"`
	EntityType string `dynamodbav:"EntityType"`
	ReactionID string `dynamodbav:"ReactionID"`
	ParentID   string `dynamodbav:"ParentID"`
	UserID     string `dynamodbav:"UserID"`
	Kind       string `dynamodbav:"Kind"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// Save persists a reaction to DynamoDB
func (r *ReactionRepository) Save(ctx context.Context, reaction *entities.Reaction) error {
	createdAt := reaction.CreatedAt().UTC().Format(time.RFC3339)
	record := reactionItem{
		PK:         fmt.Sprintf("REACTION#%s", reaction.ID().String()),
		SK:         skMetadata,
		GSI1PK:     fmt.Sprintf("TYPE#%s", entityTypeReaction),
		GSI1SK:     fmt.Sprintf("%s#%s", createdAt, reaction.ID().String()),
		GSI2PK:     fmt.Sprintf("PARENT#%s", reaction.ParentID()),
		GSI2SK:     fmt.Sprintf("%s#%s", entityTypeReaction, reaction.UserID()),
		EntityType: entityTypeReaction,
		ReactionID: reaction.ID().String(),
		ParentID:   reaction.ParentID(),
		UserID:     reaction.UserID(),
		Kind:       reaction.Kind(),
		CreatedAt:  createdAt,
	}

	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal reaction: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save reaction",
			zap.Error(err),
			zap.String("reactionID", reaction.ID().String()),
		)
		return fmt.Errorf("failed to save reaction: %w", err)
	}

	return nil
}

// List retrieves all reactions via the entity-type index
func (r *ReactionRepository) List(ctx context.Context) ([]*entities.Reaction, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("TYPE#%s", entityTypeReaction)))
	return r.queryReactions(ctx, r.typeIndex, keyCond)
}

// ListByParentID retrieves the reactions correlated to one item
func (r *ReactionRepository) ListByParentID(ctx context.Context, parentID string) ([]*entities.Reaction, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(fmt.Sprintf("PARENT#%s", parentID))).
		And(expression.Key("GSI2SK").BeginsWith(entityTypeReaction + "#"))
	return r.queryReactions(ctx, r.parentIndex, keyCond)
}

// GetByParentAndUser retrieves a user's current reaction on an item, or
// nil when none exists
func (r *ReactionRepository) GetByParentAndUser(ctx context.Context, parentID, userID string) (*entities.Reaction, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(fmt.Sprintf("PARENT#%s", parentID))).
		And(expression.Key("GSI2SK").Equal(expression.Value(fmt.Sprintf("%s#%s", entityTypeReaction, userID))))

	reactions, err := r.queryReactions(ctx, r.parentIndex, keyCond)
	if err != nil {
		return nil, err
	}
	if len(reactions) == 0 {
		return nil, nil
	}
	return reactions[0], nil
}

// Delete removes a reaction
func (r *ReactionRepository) Delete(ctx context.Context, id valueobjects.ContentID) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("REACTION#%s", id.String())},
			"SK": &types.AttributeValueMemberS{Value: skMetadata},
		},
	}); err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	return nil
}

func (r *ReactionRepository) queryReactions(ctx context.Context, indexName string, keyCond expression.KeyConditionBuilder) ([]*entities.Reaction, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	reactions := make([]*entities.Reaction, 0)
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query reactions: %w", err)
		}
		for _, raw := range page.Items {
			var record reactionItem
			if err := attributevalue.UnmarshalMap(raw, &record); err != nil {
				r.logger.Warn("Failed to unmarshal reaction", zap.Error(err))
				continue
			}
			id, err := valueobjects.NewContentIDFromString(record.ReactionID)
			if err != nil {
				r.logger.Warn("Invalid stored reaction ID",
					zap.String("reactionID", record.ReactionID),
					zap.Error(err))
				continue
			}
			createdAt, _ := time.Parse(time.RFC3339, record.CreatedAt)
			reactions = append(reactions, entities.ReconstructReaction(id, record.ParentID, record.UserID, record.Kind, createdAt))
		}
	}

	return reactions, nil
}
