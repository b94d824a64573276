package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amharF/udacity-ND-P4/profiles"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ profiles.Repository = &DB{}

type profileDynamo struct {
	PK                  string
	SK                  string
	ID                  string
	Version             int
	DisplayName         string
	Email               string
	TeeShirtSize        int
	ConferencesToAttend []string
	SessionWishlist     []string
}

const (
	profileEntityName = "PROFILE"
)

func profilePK(id string) string {
	return fmt.Sprintf("%s#%s", profileEntityName, id)
}

func profileSK(id string) string {
	return fmt.Sprintf("%s#%s", profileEntityName, id)
}

func newProfileDynamo(profile profiles.Profile) profileDynamo {
	return profileDynamo{
		PK:           profilePK(profile.ID),
		SK:           profileSK(profile.ID),
		ID:           profile.ID,
		Version:      profile.Version,
		DisplayName:  profile.DisplayName,
		Email:        profile.Email,
		TeeShirtSize: int(profile.TeeShirtSize),
		ConferencesToAttend: lo.Map(profile.ConferencesToAttend, func(id uuid.UUID, _ int) string {
			return id.String()
		}),
		SessionWishlist: lo.Map(profile.SessionWishlist, func(id uuid.UUID, _ int) string {
			return id.String()
		}),
	}
}

func profileFromDynamo(profile profileDynamo) profiles.Profile {
	return profiles.Profile{
		ID:           profile.ID,
		Version:      profile.Version,
		DisplayName:  profile.DisplayName,
		Email:        profile.Email,
		TeeShirtSize: profiles.TeeShirtSize(profile.TeeShirtSize),
		ConferencesToAttend: lo.Map(profile.ConferencesToAttend, func(id string, _ int) uuid.UUID {
			return uuid.MustParse(id)
		}),
		SessionWishlist: lo.Map(profile.SessionWishlist, func(id string, _ int) uuid.UUID {
			return uuid.MustParse(id)
		}),
	}
}

func (d *DB) GetProfile(ctx context.Context, id string) (profiles.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: profilePK(id)},
			"SK": &types.AttributeValueMemberS{Value: profileSK(id)},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return profiles.Profile{}, profiles.NewTimeoutError("GetProfile timed out")
		}
		return profiles.Profile{}, profiles.NewFailedToFetchError(fmt.Sprintf("Failed to fetch profile with ID %q", id), err)
	}

	if len(resp.Item) == 0 {
		return profiles.Profile{}, profiles.NewProfileDoesNotExistError(fmt.Sprintf("Profile with ID %q not found", id), nil)
	}

	var profile profileDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &profile)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal profile from DB: %s", err))
	}
	return profileFromDynamo(profile), nil
}

func (d *DB) SaveProfile(ctx context.Context, profile profiles.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	dynamoItem := newProfileDynamo(profile)

	item, err := attributevalue.MarshalMap(dynamoItem)
	if err != nil {
		return profiles.NewFailedToTranslateToDBModelError("Failed to convert Profile to profileDynamo", err)
	}

	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(versionConditional(dynamoItem.Version)))

	_, err = d.dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condCheckFailedErr *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailedErr) {
			return profiles.NewWriteConflictError(fmt.Sprintf("Profile %q was updated concurrently", profile.ID), err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return profiles.NewTimeoutError("SaveProfile timed out")
		} else {
			return profiles.NewFailedToWriteError("Failed PutItem call", err)
		}
	}

	return nil
}
