// Package dynamo stores every entity in one DynamoDB table. Items carry a
// Version attribute; every write is conditional on the version it expects,
// which is what lets the registration engine detect and retry lost races.
package dynamo

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	// gsi1 groups child items under a parent (all conferences, sessions of
	// a conference). gsi2 is the alternate lookup (organizer, speaker).
	gsi1 = "GSI1"
	gsi2 = "GSI2"
)

type DB struct {
	dynamoClient *dynamodb.Client
	tableName    string
}

func NewDB(dynamoClient *dynamodb.Client, tableName string) *DB {
	return &DB{
		dynamoClient: dynamoClient,
		tableName:    tableName,
	}
}

func newEntityVersionConditional(version int) expression.ConditionBuilder {
	return expression.Name("PK").AttributeNotExists().
		And(expression.Value(version).Equal(expression.Value(1)))
}

func existingEntityVersionConditional(version int) expression.ConditionBuilder {
	return expression.Name("PK").AttributeExists().
		And(expression.Name("Version").Equal(expression.Value(version - 1)))
}

// versionConditional picks the right conditional for a record whose
// version was bumped before the write: version 1 means first persist.
func versionConditional(version int) expression.ConditionBuilder {
	if version == 1 {
		return newEntityVersionConditional(version)
	}
	return existingEntityVersionConditional(version)
}

func exprMustBuild(builder expression.Builder) expression.Expression {
	expr, err := builder.Build()
	if err != nil {
		panic("failed to build dynamo expression")
	}

	return expr
}
