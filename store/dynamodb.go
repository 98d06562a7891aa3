package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/grocer"
)

// DynamoDBStore implements grocer.ListStore using AWS DynamoDB
type DynamoDBStore struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBStore creates a new DynamoDB-backed list store
func NewDynamoDBStore(client DynamoDBClient, tableName string) grocer.ListStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
	}
}

// listItem marshals a list and adds the table and index keys
func listItem(list *grocer.List) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(list)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal list: %w", err)
	}

	// Add keys
	item[AttrPK] = &types.AttributeValueMemberS{Value: listPK(list.ID)}
	item[AttrSK] = &types.AttributeValueMemberS{Value: listSK()}
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: EntityTypeList}

	// Add GSI keys
	item[AttrGSI1PK] = &types.AttributeValueMemberS{Value: listGSI1PK()}
	item[AttrGSI1SK] = &types.AttributeValueMemberS{Value: listGSI1SK(list.ID)}

	if list.InviteCode != "" {
		item[AttrGSI2PK] = &types.AttributeValueMemberS{Value: listGSI2PK(list.InviteCode)}
		item[AttrGSI2SK] = &types.AttributeValueMemberS{Value: listGSI2SK(list.ID)}
	}

	return item, nil
}

func unmarshalList(item map[string]types.AttributeValue) (*grocer.List, error) {
	var list grocer.List
	if err := attributevalue.UnmarshalMap(item, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list: %w", err)
	}
	// Clone replaces NULL collections with empty slices
	return list.Clone(), nil
}

func listKey(listID int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: listPK(listID)},
		AttrSK: &types.AttributeValueMemberS{Value: listSK()},
	}
}

// checkInviteCode fails with a conflict when another list already uses code
func (s *DynamoDBStore) checkInviteCode(ctx context.Context, code string, listID int) error {
	if code == "" {
		return nil
	}
	other, err := s.FindByInviteCode(ctx, code)
	if grocer.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != listID {
		return grocer.NewError(grocer.ErrCodeConflict, "invite code already in use")
	}
	return nil
}

// List operations

func (s *DynamoDBStore) CreateList(ctx context.Context, list *grocer.List) error {
	if err := s.checkInviteCode(ctx, list.InviteCode, list.ID); err != nil {
		return err
	}

	item, err := listItem(list)
	if err != nil {
		return err
	}

	// Put item, refusing to overwrite an existing list
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return grocer.NewError(grocer.ErrCodeConflict, fmt.Sprintf("list %d already exists", list.ID))
		}
		return fmt.Errorf("failed to create list: %w", err)
	}

	return nil
}

func (s *DynamoDBStore) GetList(ctx context.Context, listID int) (*grocer.List, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       listKey(listID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	if result.Item == nil {
		return nil, grocer.NewNotFoundError("list", listID)
	}

	return unmarshalList(result.Item)
}

func (s *DynamoDBStore) UpdateList(ctx context.Context, list *grocer.List) error {
	if err := s.checkInviteCode(ctx, list.InviteCode, list.ID); err != nil {
		return err
	}

	item, err := listItem(list)
	if err != nil {
		return err
	}

	// Use transaction for atomic conditional replace
	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.tableName),
					Item:                item,
					ConditionExpression: aws.String("attribute_exists(PK)"),
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && isConditionalCancel(tce) {
			return grocer.NewNotFoundError("list", list.ID)
		}
		return fmt.Errorf("failed to update list: %w", err)
	}

	return nil
}

func isConditionalCancel(tce *types.TransactionCanceledException) bool {
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

func (s *DynamoDBStore) DeleteList(ctx context.Context, listID int) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 listKey(listID),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return grocer.NewNotFoundError("list", listID)
		}
		return fmt.Errorf("failed to delete list: %w", err)
	}

	return nil
}

func (s *DynamoDBStore) ListLists(ctx context.Context, filter grocer.ListFilter) ([]*grocer.List, error) {
	lists := []*grocer.List{}
	var lastEvaluatedKey map[string]types.AttributeValue

	// Paginate through all results
	for {
		queryInput := &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			IndexName:              aws.String(IndexListIndex),
			KeyConditionExpression: aws.String("GSI1PK = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: listGSI1PK()},
			},
		}

		if lastEvaluatedKey != nil {
			queryInput.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Query(ctx, queryInput)
		if err != nil {
			return nil, fmt.Errorf("failed to list lists: %w", err)
		}

		for _, item := range result.Items {
			list, err := unmarshalList(item)
			if err != nil {
				return nil, err
			}
			if !filter.Matches(list) {
				continue
			}
			lists = append(lists, list)

			// Apply limit
			if filter.Limit > 0 && len(lists) >= filter.Limit {
				return lists, nil
			}
		}

		// Check if there are more results
		if result.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	return lists, nil
}

// Query operations

func (s *DynamoDBStore) FindByInviteCode(ctx context.Context, code string) (*grocer.List, error) {
	if code == "" {
		return nil, grocer.NewError(grocer.ErrCodeNotFound, "no list with that invite code")
	}

	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String(IndexInviteIndex),
		KeyConditionExpression: aws.String("GSI2PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: listGSI2PK(code)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find list by invite code: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, grocer.NewError(grocer.ErrCodeNotFound, "no list with that invite code")
	}

	return unmarshalList(result.Items[0])
}
