package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/preference"
	pkgerrors "cinegraph-backend/pkg/errors"
)

const prefSKPrefix = "PREF#"

// PreferenceRepository implements the PreferenceRepository port. One item
// per (user, movie) pair holds the whole judgment, so liked and disliked
// can never coexist: a transition is a single PutItem that replaces the
// item, and ReturnValues=ALL_OLD yields the previous state from the same
// write. This is what makes the edge swap atomic without a transaction.
type PreferenceRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.PreferenceRepository {
	return &PreferenceRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// preferenceItem represents the DynamoDB item structure for a judgment
type preferenceItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Username   string `dynamodbav:"Username"`
	MovieName  string `dynamodbav:"MovieName"`
	State      string `dynamodbav:"State"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

func prefKey(username catalog.Username, movieName string) map[string]string {
	return map[string]string{
		"PK": userPKPrefix + username.String(),
		"SK": prefSKPrefix + movieName,
	}
}

// GetState returns the current judgment, StateNeutral when no item exists
func (r *PreferenceRepository) GetState(ctx context.Context, username catalog.Username, movieName string) (preference.State, error) {
	key, err := attributevalue.MarshalMap(prefKey(username, movieName))
	if err != nil {
		return preference.StateNeutral, fmt.Errorf("failed to marshal preference key: %w", err)
	}

	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		r.logger.Error("preference lookup failed",
			zap.String("username", username.String()),
			zap.String("movie", movieName),
			zap.Error(err),
		)
		return preference.StateNeutral, pkgerrors.NewStoreUnavailableError("GetState", err)
	}
	if output.Item == nil {
		return preference.StateNeutral, nil
	}

	var item preferenceItem
	if err := attributevalue.UnmarshalMap(output.Item, &item); err != nil {
		return preference.StateNeutral, fmt.Errorf("failed to unmarshal preference: %w", err)
	}
	return preference.State(item.State), nil
}

// SetState writes the judged state and returns the state the pair held
// before. The replaced item comes back from the same PutItem call, so the
// previous state is read atomically with the write.
func (r *PreferenceRepository) SetState(ctx context.Context, username catalog.Username, movieName string, state preference.State) (preference.State, error) {
	item := preferenceItem{
		PK:         userPKPrefix + username.String(),
		SK:         prefSKPrefix + movieName,
		EntityType: "PREFERENCE",
		Username:   username.String(),
		MovieName:  movieName,
		State:      string(state),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return preference.StateNeutral, fmt.Errorf("failed to marshal preference: %w", err)
	}

	output, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:    aws.String(r.tableName),
		Item:         av,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		r.logger.Error("preference write failed",
			zap.String("username", username.String()),
			zap.String("movie", movieName),
			zap.Error(err),
		)
		return preference.StateNeutral, pkgerrors.NewStoreUnavailableError("SetState", err)
	}

	if output.Attributes == nil {
		return preference.StateNeutral, nil
	}
	var previous preferenceItem
	if err := attributevalue.UnmarshalMap(output.Attributes, &previous); err != nil {
		return preference.StateNeutral, fmt.Errorf("failed to unmarshal previous preference: %w", err)
	}
	return preference.State(previous.State), nil
}

// ClearState removes the judgment item, returning the previous state
func (r *PreferenceRepository) ClearState(ctx context.Context, username catalog.Username, movieName string) (preference.State, error) {
	key, err := attributevalue.MarshalMap(prefKey(username, movieName))
	if err != nil {
		return preference.StateNeutral, fmt.Errorf("failed to marshal preference key: %w", err)
	}

	output, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          key,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return preference.StateNeutral, pkgerrors.NewStoreUnavailableError("ClearState", err)
	}

	if output.Attributes == nil {
		return preference.StateNeutral, nil
	}
	var previous preferenceItem
	if err := attributevalue.UnmarshalMap(output.Attributes, &previous); err != nil {
		return preference.StateNeutral, fmt.Errorf("failed to unmarshal previous preference: %w", err)
	}
	return preference.State(previous.State), nil
}

// ListStates returns every judged movie for the user keyed by name
func (r *PreferenceRepository) ListStates(ctx context.Context, username catalog.Username) (map[string]preference.State, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPKPrefix + username.String())).
		And(expression.Key("SK").BeginsWith(prefSKPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build preference query: %w", err)
	}

	states := make(map[string]preference.State)
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
			r.logger.Error("preference list failed",
				zap.String("username", username.String()),
				zap.Error(err),
			)
			return nil, pkgerrors.NewStoreUnavailableError("ListStates", err)
		}

		var items []preferenceItem
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preference page: %w", err)
		}
		for _, item := range items {
			states[item.MovieName] = preference.State(item.State)
		}

		if output.LastEvaluatedKey == nil {
			break
		}
		lastKey = output.LastEvaluatedKey
	}

	return states, nil
}

// ListByState returns the movie names the user holds in one state
func (r *PreferenceRepository) ListByState(ctx context.Context, username catalog.Username, state preference.State) ([]string, error) {
	states, err := r.ListStates(ctx, username)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(states))
	for name, s := range states {
		if s == state {
			names = append(names, name)
		}
	}
	return names, nil
}
