package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amharF/udacity-ND-P4/conferences"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ conferences.Repository = &DB{}

type conferenceDynamo struct {
	PK             string
	SK             string
	GSI1PK         string
	GSI1SK         string
	GSI2PK         string
	GSI2SK         string
	ID             string
	Version        int
	OrganizerID    string
	Name           string
	Description    string
	Topics         []string
	City           string
	StartDate      *time.Time
	EndDate        *time.Time
	Month          int
	MaxAttendees   int
	SeatsAvailable int
}

const (
	conferenceEntityName = "CONFERENCE"
	organizerEntityName  = "ORGANIZER"
)

func conferencePK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", conferenceEntityName, id)
}

func conferenceSK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", conferenceEntityName, id)
}

func newConferenceDynamo(conf conferences.Conference) conferenceDynamo {
	return conferenceDynamo{
		PK:     conferencePK(conf.ID),
		SK:     conferenceSK(conf.ID),
		GSI1PK: conferenceEntityName,
		// Name leads the sort key so listings come back in name order.
		GSI1SK:         fmt.Sprintf("%s#%s#%s", conferenceEntityName, conf.Name, conf.ID),
		GSI2PK:         fmt.Sprintf("%s#%s", organizerEntityName, conf.OrganizerID),
		GSI2SK:         fmt.Sprintf("%s#%s#%s", conferenceEntityName, conf.Name, conf.ID),
		ID:             conf.ID.String(),
		Version:        conf.Version,
		OrganizerID:    conf.OrganizerID,
		Name:           conf.Name,
		Description:    conf.Description,
		Topics:         conf.Topics,
		City:           conf.City,
		StartDate:      conf.StartDate,
		EndDate:        conf.EndDate,
		Month:          conf.Month,
		MaxAttendees:   conf.MaxAttendees,
		SeatsAvailable: conf.SeatsAvailable,
	}
}

func conferenceFromDynamo(conf conferenceDynamo) conferences.Conference {
	return conferences.Conference{
		ID:             uuid.MustParse(conf.ID),
		Version:        conf.Version,
		OrganizerID:    conf.OrganizerID,
		Name:           conf.Name,
		Description:    conf.Description,
		Topics:         conf.Topics,
		City:           conf.City,
		StartDate:      conf.StartDate,
		EndDate:        conf.EndDate,
		Month:          conf.Month,
		MaxAttendees:   conf.MaxAttendees,
		SeatsAvailable: conf.SeatsAvailable,
	}
}

func (d *DB) GetConference(ctx context.Context, id uuid.UUID) (conferences.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: conferencePK(id)},
			"SK": &types.AttributeValueMemberS{Value: conferenceSK(id)},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return conferences.Conference{}, conferences.NewTimeoutError("GetConference timed out")
		}
		return conferences.Conference{}, conferences.NewFailedToFetchError(fmt.Sprintf("Failed to fetch conference with ID %q", id), err)
	}

	if len(resp.Item) == 0 {
		return conferences.Conference{}, conferences.NewConferenceDoesNotExistError(fmt.Sprintf("Conference with ID %q not found", id), nil)
	}

	var conf conferenceDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &conf)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal conference from DB: %s", err))
	}
	return conferenceFromDynamo(conf), nil
}

func (d *DB) CreateConference(ctx context.Context, conference conferences.Conference) error {
	ctx, cancel := context.WithTimeoutCause(ctx, time.Second, conferences.NewTimeoutError("CreateConference to DB took too long"))
	defer cancel()

	dynamoItem := newConferenceDynamo(conference)

	item, err := attributevalue.MarshalMap(dynamoItem)
	if err != nil {
		return conferences.NewFailedToTranslateToDBModelError("Failed to convert Conference to conferenceDynamo", err)
	}

	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(newEntityVersionConditional(dynamoItem.Version)))

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
			return conferences.NewConferenceAlreadyExistsError(fmt.Sprintf("Conference with ID %q already exists", conference.ID), err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return conferences.NewTimeoutError("CreateConference timed out")
		} else {
			return conferences.NewFailedToWriteError("Failed PutItem call", err)
		}
	}

	return nil
}

func (d *DB) UpdateConference(ctx context.Context, conference conferences.Conference) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	dynamoItem := newConferenceDynamo(conference)

	item, err := attributevalue.MarshalMap(dynamoItem)
	if err != nil {
		return conferences.NewFailedToTranslateToDBModelError("Failed to convert Conference to conferenceDynamo", err)
	}

	expr := exprMustBuild(expression.NewBuilder().
		WithCondition(existingEntityVersionConditional(dynamoItem.Version)))

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
			return conferences.NewWriteConflictError(fmt.Sprintf("Conference with ID %q is missing or was updated concurrently", conference.ID), err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return conferences.NewTimeoutError("UpdateConference timed out")
		} else {
			return conferences.NewFailedToWriteError("Failed PutItem call", err)
		}
	}

	return nil
}

func (d *DB) GetConferences(ctx context.Context, limit int32, cursor *string) (conferences.GetConferencesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	keyCond := expression.Key("GSI1PK").Equal(expression.Value(conferenceEntityName)).
		And(expression.Key("GSI1SK").BeginsWith(conferenceEntityName))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build dynamo key expression: %s", err))
	}

	var startKey map[string]types.AttributeValue
	if cursor != nil {
		startKey, err = decodeCursor(*cursor)
		if err != nil {
			return conferences.GetConferencesResponse{}, conferences.NewInvalidCursorError("Invalid cursor", err)
		}
	}

	result, err := d.dynamoClient.Query(ctx, &dynamodb.QueryInput{
		IndexName:                 aws.String(gsi1),
		TableName:                 aws.String(d.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		// Fetch 1 more than limit to check if there is another page or not
		Limit:             aws.Int32(limit + 1),
		ExclusiveStartKey: startKey,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return conferences.GetConferencesResponse{}, conferences.NewTimeoutError("GetConferences timed out")
		}
		return conferences.GetConferencesResponse{}, conferences.NewFailedToFetchError("Failed to fetch conferences from dynamo", err)
	}

	var dynamoItems []conferenceDynamo
	err = attributevalue.UnmarshalListOfMaps(result.Items, &dynamoItems)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal dynamo conferences: %s", err))
	}

	hasNextPage := len(dynamoItems) > int(limit)

	var newCursor *string
	if hasNextPage && len(result.LastEvaluatedKey) > 0 {
		// Can't use LastEvalKey directly because we grabbed an extra item to check for next page
		lastItemGivenToUser := result.Items[len(result.Items)-2]
		lastItemKey := keyAttributesOf(result.LastEvaluatedKey, lastItemGivenToUser)
		c, err := encodeCursor(lastItemKey)
		if err != nil {
			panic(fmt.Sprintf("failed to make cursor from lastEvalKey: %s", err))
		}
		newCursor = &c
	}

	return conferences.GetConferencesResponse{
		Data: lo.Map(dynamoItems, func(v conferenceDynamo, _ int) conferences.Conference {
			return conferenceFromDynamo(v)
		})[:min(int(limit), len(dynamoItems))],
		Cursor:      newCursor,
		HasNextPage: hasNextPage,
	}, nil
}

func (d *DB) GetConferencesByIDs(ctx context.Context, ids []uuid.UUID) ([]conferences.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	found := map[uuid.UUID]conferences.Conference{}

	// BatchGetItem caps out at 100 keys per call.
	for _, chunk := range lo.Chunk(ids, 100) {
		keys := lo.Map(chunk, func(id uuid.UUID, _ int) map[string]types.AttributeValue {
			return map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: conferencePK(id)},
				"SK": &types.AttributeValueMemberS{Value: conferenceSK(id)},
			}
		})

		resp, err := d.dynamoClient.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				d.tableName: {Keys: keys},
			},
		})
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, conferences.NewTimeoutError("GetConferencesByIDs timed out")
			}
			return nil, conferences.NewFailedToFetchError("Failed to batch fetch conferences from dynamo", err)
		}

		var dynamoItems []conferenceDynamo
		err = attributevalue.UnmarshalListOfMaps(resp.Responses[d.tableName], &dynamoItems)
		if err != nil {
			panic(fmt.Sprintf("failed to unmarshal dynamo conferences: %s", err))
		}

		for _, item := range dynamoItems {
			conf := conferenceFromDynamo(item)
			found[conf.ID] = conf
		}
	}

	// Preserve input order; silently skip ids that no longer resolve.
	result := make([]conferences.Conference, 0, len(found))
	for _, id := range ids {
		if conf, ok := found[id]; ok {
			result = append(result, conf)
		}
	}
	return result, nil
}

func (d *DB) GetConferencesByOrganizer(ctx context.Context, organizerID string) ([]conferences.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	keyCond := expression.Key("GSI2PK").Equal(expression.Value(fmt.Sprintf("%s#%s", organizerEntityName, organizerID))).
		And(expression.Key("GSI2SK").BeginsWith(conferenceEntityName))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build dynamo key expression: %s", err))
	}

	result, err := d.dynamoClient.Query(ctx, &dynamodb.QueryInput{
		IndexName:                 aws.String(gsi2),
		TableName:                 aws.String(d.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, conferences.NewTimeoutError("GetConferencesByOrganizer timed out")
		}
		return nil, conferences.NewFailedToFetchError("Failed to fetch organizer conferences from dynamo", err)
	}

	var dynamoItems []conferenceDynamo
	err = attributevalue.UnmarshalListOfMaps(result.Items, &dynamoItems)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal dynamo conferences: %s", err))
	}

	return lo.Map(dynamoItems, func(v conferenceDynamo, _ int) conferences.Conference {
		return conferenceFromDynamo(v)
	}), nil
}

// QueryConferences runs a compiled filter descriptor. Dynamo can't sort a
// filtered scan, so the descriptor's sort is applied in memory afterwards.
func (d *DB) QueryConferences(ctx context.Context, query conferences.QueryDescriptor) ([]conferences.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	cond := expression.Name("GSI1PK").Equal(expression.Value(conferenceEntityName))
	for _, filter := range query.Filters {
		cond = cond.And(filterCondition(filter))
	}

	expr := exprMustBuild(expression.NewBuilder().WithFilter(cond))

	var result []conferences.Conference
	var startKey map[string]types.AttributeValue
	for {
		resp, err := d.dynamoClient.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(d.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, conferences.NewTimeoutError("QueryConferences timed out")
			}
			return nil, conferences.NewFailedToFetchError("Failed to query conferences from dynamo", err)
		}

		var dynamoItems []conferenceDynamo
		err = attributevalue.UnmarshalListOfMaps(resp.Items, &dynamoItems)
		if err != nil {
			panic(fmt.Sprintf("failed to unmarshal dynamo conferences: %s", err))
		}

		for _, item := range dynamoItems {
			result = append(result, conferenceFromDynamo(item))
		}

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}
		startKey = resp.LastEvaluatedKey
	}

	query.Sort(result)
	return result, nil
}

func filterCondition(filter conferences.Filter) expression.ConditionBuilder {
	name := expression.Name(filter.Field.AttributeName())

	// Topics is a list attribute, so equality means membership.
	if filter.Field == conferences.FIELD_TOPIC {
		switch filter.Operator {
		case conferences.OPERATOR_EQUAL:
			return name.Contains(fmt.Sprint(filter.Value))
		case conferences.OPERATOR_NOT_EQUAL:
			return expression.Not(name.Contains(fmt.Sprint(filter.Value)))
		}
	}

	value := expression.Value(filter.Value)
	switch filter.Operator {
	case conferences.OPERATOR_EQUAL:
		return name.Equal(value)
	case conferences.OPERATOR_GREATER_THAN:
		return name.GreaterThan(value)
	case conferences.OPERATOR_GREATER_THAN_OR_EQUAL:
		return name.GreaterThanEqual(value)
	case conferences.OPERATOR_LESS_THAN:
		return name.LessThan(value)
	case conferences.OPERATOR_LESS_THAN_OR_EQUAL:
		return name.LessThanEqual(value)
	case conferences.OPERATOR_NOT_EQUAL:
		return name.NotEqual(value)
	default:
		panic(fmt.Sprintf("unknown filter operator: %d", filter.Operator))
	}
}
