package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/domain/catalog"
	pkgerrors "cinegraph-backend/pkg/errors"
)

const friendSKPrefix = "FRIEND#"

// FriendshipRepository implements the FriendshipRepository port. Each
// friendship is two mirrored items written in one TransactWriteItems call,
// so A's edge to B exists iff B's edge to A does.
type FriendshipRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.FriendshipRepository {
	return &FriendshipRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// friendItem represents one direction of the mirrored pair
type friendItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Username   string `dynamodbav:"Username"`
	Friend     string `dynamodbav:"Friend"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

func friendPair(username, friend catalog.Username, createdAt string) []friendItem {
	return []friendItem{
		{
			PK:         userPKPrefix + username.String(),
			SK:         friendSKPrefix + friend.String(),
			EntityType: "FRIENDSHIP",
			Username:   username.String(),
			Friend:     friend.String(),
			CreatedAt:  createdAt,
		},
		{
			PK:         userPKPrefix + friend.String(),
			SK:         friendSKPrefix + username.String(),
			EntityType: "FRIENDSHIP",
			Username:   friend.String(),
			Friend:     username.String(),
			CreatedAt:  createdAt,
		},
	}
}

// AddFriendship writes both directions of the pair in one transaction
func (r *FriendshipRepository) AddFriendship(ctx context.Context, username, friend catalog.Username) error {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	var writes []types.TransactWriteItem
	for _, item := range friendPair(username, friend, createdAt) {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("failed to marshal friendship: %w", err)
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item:      av,
			},
		})
	}

	if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	}); err != nil {
		r.logger.Error("friendship write failed",
			zap.String("username", username.String()),
			zap.String("friend", friend.String()),
			zap.Error(err),
		)
		return pkgerrors.NewStoreUnavailableError("AddFriendship", err)
	}

	return nil
}

// RemoveFriendship deletes both directions of the pair in one transaction
func (r *FriendshipRepository) RemoveFriendship(ctx context.Context, username, friend catalog.Username) error {
	var writes []types.TransactWriteItem
	for _, item := range friendPair(username, friend, "") {
		key, err := attributevalue.MarshalMap(map[string]string{
			"PK": item.PK,
			"SK": item.SK,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal friendship key: %w", err)
		}
		writes = append(writes, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key:       key,
			},
		})
	}

	if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	}); err != nil {
		r.logger.Error("friendship delete failed",
			zap.String("username", username.String()),
			zap.String("friend", friend.String()),
			zap.Error(err),
		)
		return pkgerrors.NewStoreUnavailableError("RemoveFriendship", err)
	}

	return nil
}

// ListFriends returns the usernames this user is friends with, sorted
func (r *FriendshipRepository) ListFriends(ctx context.Context, username catalog.Username) ([]string, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPKPrefix + username.String())).
		And(expression.Key("SK").BeginsWith(friendSKPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build friendship query: %w", err)
	}

	var friends []string
	var lastKey map[string]types.AttributeValue

	for {
		output, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewStoreUnavailableError("ListFriends", err)
		}

		var items []friendItem
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal friendship page: %w", err)
		}
		for _, item := range items {
			friends = append(friends, item.Friend)
		}

		if output.LastEvaluatedKey == nil {
			break
		}
		lastKey = output.LastEvaluatedKey
	}

	sort.Strings(friends)
	return friends, nil
}

// AreFriends reports whether the mutual pair exists
func (r *FriendshipRepository) AreFriends(ctx context.Context, username, friend catalog.Username) (bool, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPKPrefix + username.String(),
		"SK": friendSKPrefix + friend.String(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal friendship key: %w", err)
	}

	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return false, pkgerrors.NewStoreUnavailableError("AreFriends", err)
	}

	return output.Item != nil, nil
}
