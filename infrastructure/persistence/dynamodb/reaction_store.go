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

// ReactionTallyStore implements the ReactionTallyStore port over the reaction
// table. Tallies are owned by the reaction subsystem; this side only reads.
type ReactionTallyStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewReactionTallyStore creates a new reaction tally store adapter
func NewReactionTallyStore(client *dynamodb.Client, tableName string, logger *zap.Logger) *ReactionTallyStore {
	return &ReactionTallyStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// tallyItem represents the DynamoDB item structure for a reaction tally
type tallyItem struct {
	EmoteReactionID     string           `dynamodbav:"emoteReactionId"`
	EmoteReactionEmojis []tallyEmojiItem `dynamodbav:"emoteReactionEmojis"`
}

// tallyEmojiItem is one tallied emoji inside a reaction item
type tallyEmojiItem struct {
	EmojiID           string   `dynamodbav:"emojiId"`
	NumberOfReactions int      `dynamodbav:"numberOfReactions"`
	ReactedUserIDs    []string `dynamodbav:"reactedUserIds"`
}

// GetTally retrieves a reaction tally by reaction group id. A missing item is
// a tagged not-found outcome; new emotes legitimately have no tally yet.
func (s *ReactionTallyStore) GetTally(ctx context.Context, reactionID string) (*feed.ReactionTally, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"emoteReactionId": &types.AttributeValueMemberS{Value: reactionID},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		s.logger.Error("Reaction tally lookup failed",
			zap.String("reactionID", reactionID),
			zap.Error(err),
		)
		return nil, apperrors.NewReactionUnavailableError(err)
	}

	if result.Item == nil {
		return nil, apperrors.NewNotFoundError("reaction tally")
	}

	var item tallyItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		s.logger.Error("Failed to unmarshal reaction tally item",
			zap.String("reactionID", reactionID),
			zap.Error(err),
		)
		return nil, apperrors.NewReactionUnavailableError(err)
	}

	emojis := make([]feed.ReactionEmoji, len(item.EmoteReactionEmojis))
	for i, e := range item.EmoteReactionEmojis {
		emojis[i] = feed.ReactionEmoji{
			EmojiID:           e.EmojiID,
			NumberOfReactions: e.NumberOfReactions,
			ReactedUserIDs:    e.ReactedUserIDs,
		}
	}

	return &feed.ReactionTally{
		EmoteReactionID: item.EmoteReactionID,
		Emojis:          emojis,
	}, nil
}
