package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amharF/udacity-ND-P4/sessions"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ sessions.Repository = &DB{}

type sessionDynamo struct {
	PK           string
	SK           string
	GSI1PK       string
	GSI1SK       string
	GSI2PK       string
	GSI2SK       string
	ID           string
	ConferenceID string
	Version      int
	Name         string
	Highlights   []string
	Speaker      string
	DurationMins int
	SessionType  string
	Date         *time.Time
	StartTime    *time.Time
}

const (
	sessionEntityName = "SESSION"
	speakerEntityName = "SPEAKER"
)

func sessionPK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", sessionEntityName, id)
}

func sessionSK(id uuid.UUID) string {
	return fmt.Sprintf("%s#%s", sessionEntityName, id)
}

func newSessionDynamo(session sessions.Session) sessionDynamo {
	// Name leads both index sort keys so per-conference and per-speaker
	// listings come back in name order without a client-side sort.
	nameSortedSK := fmt.Sprintf("%s#%s#%s", sessionEntityName, session.Name, session.ID)

	return sessionDynamo{
		PK:           sessionPK(session.ID),
		SK:           sessionSK(session.ID),
		GSI1PK:       conferencePK(session.ConferenceID),
		GSI1SK:       nameSortedSK,
		GSI2PK:       fmt.Sprintf("%s#%s", speakerEntityName, session.Speaker),
		GSI2SK:       nameSortedSK,
		ID:           session.ID.String(),
		ConferenceID: session.ConferenceID.String(),
		Version:      session.Version,
		Name:         session.Name,
		Highlights:   session.Highlights,
		Speaker:      session.Speaker,
		DurationMins: session.DurationMins,
		SessionType:  session.SessionType,
		Date:         session.Date,
		StartTime:    session.StartTime,
	}
}

func sessionFromDynamo(session sessionDynamo) sessions.Session {
	return sessions.Session{
		ID:           uuid.MustParse(session.ID),
		ConferenceID: uuid.MustParse(session.ConferenceID),
		Version:      session.Version,
		Name:         session.Name,
		Highlights:   session.Highlights,
		Speaker:      session.Speaker,
		DurationMins: session.DurationMins,
		SessionType:  session.SessionType,
		Date:         session.Date,
		StartTime:    session.StartTime,
	}
}

func (d *DB) GetSession(ctx context.Context, id uuid.UUID) (sessions.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	resp, err := d.dynamoClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: sessionPK(id)},
			"SK": &types.AttributeValueMemberS{Value: sessionSK(id)},
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return sessions.Session{}, sessions.NewTimeoutError("GetSession timed out")
		}
		return sessions.Session{}, sessions.NewFailedToFetchError(fmt.Sprintf("Failed to fetch session with ID %q", id), err)
	}

	if len(resp.Item) == 0 {
		return sessions.Session{}, sessions.NewSessionDoesNotExistError(fmt.Sprintf("Session with ID %q not found", id), nil)
	}

	var session sessionDynamo
	err = attributevalue.UnmarshalMap(resp.Item, &session)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal session from DB: %s", err))
	}
	return sessionFromDynamo(session), nil
}

func (d *DB) GetSessionsByIDs(ctx context.Context, ids []uuid.UUID) ([]sessions.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	found := map[uuid.UUID]sessions.Session{}

	for _, chunk := range lo.Chunk(ids, 100) {
		keys := lo.Map(chunk, func(id uuid.UUID, _ int) map[string]types.AttributeValue {
			return map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: sessionPK(id)},
				"SK": &types.AttributeValueMemberS{Value: sessionSK(id)},
			}
		})

		resp, err := d.dynamoClient.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				d.tableName: {Keys: keys},
			},
		})
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, sessions.NewTimeoutError("GetSessionsByIDs timed out")
			}
			return nil, sessions.NewFailedToFetchError("Failed to batch fetch sessions from dynamo", err)
		}

		var dynamoItems []sessionDynamo
		err = attributevalue.UnmarshalListOfMaps(resp.Responses[d.tableName], &dynamoItems)
		if err != nil {
			panic(fmt.Sprintf("failed to unmarshal dynamo sessions: %s", err))
		}

		for _, item := range dynamoItems {
			session := sessionFromDynamo(item)
			found[session.ID] = session
		}
	}

	result := make([]sessions.Session, 0, len(found))
	for _, id := range ids {
		if session, ok := found[id]; ok {
			result = append(result, session)
		}
	}
	return result, nil
}

func (d *DB) GetSessionsForConference(ctx context.Context, conferenceID uuid.UUID) ([]sessions.Session, error) {
	return d.querySessions(ctx, gsi1, conferencePK(conferenceID), nil)
}

func (d *DB) GetSessionsForConferenceByType(ctx context.Context, conferenceID uuid.UUID, sessionType string) ([]sessions.Session, error) {
	filter := expression.Name("SessionType").Equal(expression.Value(sessionType))
	return d.querySessions(ctx, gsi1, conferencePK(conferenceID), &filter)
}

func (d *DB) GetSessionsForConferenceBySpeaker(ctx context.Context, conferenceID uuid.UUID, speaker string) ([]sessions.Session, error) {
	filter := expression.Name("Speaker").Equal(expression.Value(speaker))
	return d.querySessions(ctx, gsi1, conferencePK(conferenceID), &filter)
}

func (d *DB) GetSessionsBySpeaker(ctx context.Context, speaker string) ([]sessions.Session, error) {
	return d.querySessions(ctx, gsi2, fmt.Sprintf("%s#%s", speakerEntityName, speaker), nil)
}

func (d *DB) querySessions(ctx context.Context, index string, partition string, filter *expression.ConditionBuilder) ([]sessions.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	pkName := "GSI1PK"
	skName := "GSI1SK"
	if index == gsi2 {
		pkName = "GSI2PK"
		skName = "GSI2SK"
	}

	keyCond := expression.Key(pkName).Equal(expression.Value(partition)).
		And(expression.Key(skName).BeginsWith(sessionEntityName))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter != nil {
		builder = builder.WithFilter(*filter)
	}

	expr, err := builder.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build dynamo key expression: %s", err))
	}

	result, err := d.dynamoClient.Query(ctx, &dynamodb.QueryInput{
		IndexName:                 aws.String(index),
		TableName:                 aws.String(d.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, sessions.NewTimeoutError("querySessions timed out")
		}
		return nil, sessions.NewFailedToFetchError("Failed to fetch sessions from dynamo", err)
	}

	var dynamoItems []sessionDynamo
	err = attributevalue.UnmarshalListOfMaps(result.Items, &dynamoItems)
	if err != nil {
		panic(fmt.Sprintf("failed to unmarshal dynamo sessions: %s", err))
	}

	return lo.Map(dynamoItems, func(v sessionDynamo, _ int) sessions.Session {
		return sessionFromDynamo(v)
	}), nil
}

func (d *DB) CreateSession(ctx context.Context, session sessions.Session) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	dynamoItem := newSessionDynamo(session)

	item, err := attributevalue.MarshalMap(dynamoItem)
	if err != nil {
		return sessions.NewFailedToTranslateToDBModelError("Failed to convert Session to sessionDynamo", err)
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
			return sessions.NewSessionAlreadyExistsError(fmt.Sprintf("Session with ID %q already exists", session.ID), err)
		} else if errors.Is(err, context.DeadlineExceeded) {
			return sessions.NewTimeoutError("CreateSession timed out")
		} else {
			return sessions.NewFailedToWriteError("Failed PutItem call", err)
		}
	}

	return nil
}
