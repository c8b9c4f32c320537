// Package dynamodb implements the persistence ports on a single-table
// layout. Users, movies, preference edges, and friendship edges share one
// table keyed PK/SK, with GSI1 serving catalog-wide scans.
package dynamodb

import (
	"context"
	"fmt"
	"sort"

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

const (
	moviePKPrefix = "MOVIE#"
	movieSK       = "METADATA"
	movieGSI1PK   = "MOVIE"
)

// MovieRepository implements the CatalogRepository port using DynamoDB
type MovieRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewMovieRepository creates a new MovieRepository
func NewMovieRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.CatalogRepository {
	return &MovieRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// movieItem represents the DynamoDB item structure for a movie
type movieItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	GSI1PK     string   `dynamodbav:"GSI1PK"`
	GSI1SK     string   `dynamodbav:"GSI1SK"`
	EntityType string   `dynamodbav:"EntityType"`
	Name       string   `dynamodbav:"Name"`
	Genre      string   `dynamodbav:"Genre,omitempty"`
	Director   string   `dynamodbav:"Director,omitempty"`
	Company    string   `dynamodbav:"Company,omitempty"`
	Star       string   `dynamodbav:"Star,omitempty"`
	Year       int      `dynamodbav:"Year,omitempty"`
	Quality    *float64 `dynamodbav:"Quality,omitempty"`
	Runtime    int      `dynamodbav:"Runtime,omitempty"`
}

func (i movieItem) toDomain() catalog.Movie {
	return catalog.Movie{
		Name:     i.Name,
		Genre:    i.Genre,
		Director: i.Director,
		Company:  i.Company,
		Star:     i.Star,
		Year:     i.Year,
		Quality:  i.Quality,
		Runtime:  i.Runtime,
	}
}

// GetAllMovies returns the full catalog via the entity-type index. The
// query pages through the index in one pass; a scoring request works
// against whatever snapshot that pass observed.
func (r *MovieRepository) GetAllMovies(ctx context.Context) ([]catalog.Movie, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(movieGSI1PK))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog query: %w", err)
	}

	var movies []catalog.Movie
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		}

		output, err := r.client.Query(ctx, input)
		if err != nil {
			r.logger.Error("catalog query failed", zap.Error(err))
			return nil, pkgerrors.NewStoreUnavailableError("GetAllMovies", err)
		}

		var items []movieItem
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal catalog page: %w", err)
		}
		for _, item := range items {
			movies = append(movies, item.toDomain())
		}

		if output.LastEvaluatedKey == nil {
			break
		}
		lastKey = output.LastEvaluatedKey
	}

	return movies, nil
}

// GetMovieByName retrieves a single catalog entry, nil when absent
func (r *MovieRepository) GetMovieByName(ctx context.Context, name string) (*catalog.Movie, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": moviePKPrefix + name,
		"SK": movieSK,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal movie key: %w", err)
	}

	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		r.logger.Error("movie lookup failed", zap.String("name", name), zap.Error(err))
		return nil, pkgerrors.NewStoreUnavailableError("GetMovieByName", err)
	}
	if output.Item == nil {
		return nil, nil
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(output.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal movie: %w", err)
	}

	movie := item.toDomain()
	return &movie, nil
}

// GetGenres returns the distinct genres present in the catalog, sorted
func (r *MovieRepository) GetGenres(ctx context.Context) ([]string, error) {
	movies, err := r.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, movie := range movies {
		if movie.Genre != "" {
			seen[movie.Genre] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for genre := range seen {
		genres = append(genres, genre)
	}
	sort.Strings(genres)
	return genres, nil
}
