package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/domain/catalog"
	pkgerrors "cinegraph-backend/pkg/errors"
)

const (
	userPKPrefix = "USER#"
	userSK       = "PROFILE"
)

// UserRepository implements the UserRepository port using DynamoDB. The
// account subsystem owns the items; this adapter only reads them.
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for a user profile
type userItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	EntityType  string `dynamodbav:"EntityType"`
	Username    string `dynamodbav:"Username"`
	DisplayName string `dynamodbav:"DisplayName,omitempty"`
	AvatarKey   string `dynamodbav:"AvatarKey,omitempty"`
}

// GetByUsername retrieves a user profile, nil when absent
func (r *UserRepository) GetByUsername(ctx context.Context, username catalog.Username) (*catalog.User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPKPrefix + username.String(),
		"SK": userSK,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user key: %w", err)
	}

	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		r.logger.Error("user lookup failed", zap.String("username", username.String()), zap.Error(err))
		return nil, pkgerrors.NewStoreUnavailableError("GetByUsername", err)
	}
	if output.Item == nil {
		return nil, nil
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(output.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &catalog.User{
		Username:    username,
		DisplayName: item.DisplayName,
		AvatarKey:   item.AvatarKey,
	}, nil
}

// Exists reports whether the username has a user node behind it
func (r *UserRepository) Exists(ctx context.Context, username catalog.Username) (bool, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
