package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/amharF/udacity-ND-P4/registration"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var _ registration.Repository = &DB{}

// SaveAttendance writes the profile and the conference in one
// TransactWriteItems call. Each put is conditional on the item's stored
// version being one behind, so two racing registrations for the last seat
// cannot both commit: the loser's transaction cancels and surfaces as a
// WRITE_CONFLICT for the engine to retry against fresh state.
func (d *DB) SaveAttendance(ctx context.Context, profile profiles.Profile, conference conferences.Conference) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*2)
	defer cancel()

	dynamoProfile := newProfileDynamo(profile)
	profileItem, err := attributevalue.MarshalMap(dynamoProfile)
	if err != nil {
		return registration.NewFailedToWriteError("Failed to translate profile to dynamo model", err)
	}
	profileExpr := exprMustBuild(expression.NewBuilder().
		WithCondition(versionConditional(dynamoProfile.Version)))

	dynamoConf := newConferenceDynamo(conference)
	confItem, err := attributevalue.MarshalMap(dynamoConf)
	if err != nil {
		return registration.NewFailedToWriteError("Failed to translate conference to dynamo model", err)
	}
	confExpr := exprMustBuild(expression.NewBuilder().
		WithCondition(versionConditional(dynamoConf.Version)))

	_, err = d.dynamoClient.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:                 aws.String(d.tableName),
					Item:                      profileItem,
					ConditionExpression:       profileExpr.Condition(),
					ExpressionAttributeNames:  profileExpr.Names(),
					ExpressionAttributeValues: profileExpr.Values(),
				},
			},
			{
				Put: &types.Put{
					TableName:                 aws.String(d.tableName),
					Item:                      confItem,
					ConditionExpression:       confExpr.Condition(),
					ExpressionAttributeNames:  confExpr.Names(),
					ExpressionAttributeValues: confExpr.Values(),
				},
			},
		},
	})
	if err != nil {
		var transactionFailedErr *types.TransactionCanceledException
		if errors.As(err, &transactionFailedErr) {
			for _, reason := range transactionFailedErr.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return registration.NewWriteConflictError(
						fmt.Sprintf("Profile %q or conference %q was written concurrently", profile.ID, conference.ID), err)
				}
			}
			return registration.NewFailedToWriteError("Transaction canceled", err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return registration.NewFailedToWriteError("SaveAttendance timed out", err)
		}
		return registration.NewFailedToWriteError("Failed TransactWriteItems call", err)
	}

	return nil
}
