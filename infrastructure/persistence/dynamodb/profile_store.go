package dynamodb

import (
	"context"

	"wordless-backend/domain/feed"
	apperrors "wordless-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ProfileStore implements the ProfileStore port over the users table.
// Profiles are owned by the user-profile subsystem; this side only reads.
type ProfileStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewProfileStore creates a new profile store adapter
func NewProfileStore(client *dynamodb.Client, tableName string, logger *zap.Logger) *ProfileStore {
	return &ProfileStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// profileItem represents the DynamoDB item structure for an author profile
type profileItem struct {
	UserID        string `dynamodbav:"userId"`
	UserName      string `dynamodbav:"userName"`
	UserAvatarURL string `dynamodbav:"userAvatarUrl"`
}

// GetProfile retrieves an author profile by user id. A missing item is a
// tagged not-found outcome, distinct from a transport failure.
func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*feed.AuthorProfile, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		s.logger.Error("Profile lookup failed",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewAuthorUnavailableError(err)
	}

	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("author profile")
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		s.logger.Error("Failed to unmarshal profile item",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewAuthorUnavailableError(err)
	}

	return &feed.AuthorProfile{
		UserID:        item.UserID,
		UserName:      item.UserName,
		UserAvatarURL: item.UserAvatarURL,
	}, nil
}
