package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amharF/udacity-ND-P4/cache"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var _ cache.Cache = &DB{}

// Derived-cache entries live in the same table as everything else: one
// unversioned item per fixed key, last write wins.
type cacheDynamo struct {
	PK    string
	SK    string
	Key   string
	Value string
}

const cacheEntityName = "CACHE"

func cachePK(key string) string {
	return fmt.Sprintf("%s#%s", cacheEntityName, key)
}

func (d *DB) Set(ctx context.Context, key string, value string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	item, err := attributevalue.MarshalMap(cacheDynamo{
		PK:    cachePK(key),
		SK:    cachePK(key),
		Key:   key,
		Value: value,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to marshal cache item: %s", err))
	}

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to set cache key %q: %w", key, err)
	}
	return nil
}

func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: cachePK(key)},
			"SK": &types.AttributeValueMemberS{Value: cachePK(key)},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", false, fmt.Errorf("cache get for key %q timed out: %w", key, err)
		}
		return "", false, fmt.Errorf("failed to get cache key %q: %w", key, err)
	}

	if len(resp.Item) == 0 {
		return "", false, nil
	}

	var item cacheDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &item)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal cache item: %s", err))
	}
	return item.Value, true, nil
}

func (d *DB) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	_, err := d.dynamoClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: cachePK(key)},
			"SK": &types.AttributeValueMemberS{Value: cachePK(key)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete cache key %q: %w", key, err)
	}
	return nil
}
