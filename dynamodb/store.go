package dynamodb

import (
	"agenda/record"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	idAttr   = "id"
	nameAttr = "name"
	nextAttr = "next"
)

// Store implements [record.Storage] over one DynamoDB table keyed by a
// numeric "id" attribute. Record fields are stored as top-level attributes
// named after their json tags. The identifier counter lives in a shared
// sequences table keyed by "name".
type Store[T any] struct {
	client    API
	table     string
	sequences string
}

var _ record.Storage[struct{}] = (*Store[struct{}])(nil)

func NewStore[T any](client API, table, sequences string) *Store[T] {
	return &Store[T]{
		client:    client,
		table:     table,
		sequences: sequences,
	}
}

func jsonTags(o *attributevalue.EncoderOptions) { o.TagKey = "json" }

func jsonTagsDecoder(o *attributevalue.DecoderOptions) { o.TagKey = "json" }

func idKey(id record.ID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		idAttr: &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(id), 10)},
	}
}

func (s *Store[T]) Get(ctx context.Context, id record.ID) (T, bool, error) {
	var v T
	if err := validateTable(s.table); err != nil {
		return v, false, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return v, false, fmt.Errorf("dynamodb: get %s %d: %w", s.table, id, err)
	}
	if len(out.Item) == 0 {
		return v, false, nil
	}

	if err := attributevalue.UnmarshalMapWithOptions(out.Item, &v, jsonTagsDecoder); err != nil {
		return v, false, fmt.Errorf("dynamodb: unmarshal %s %d: %w", s.table, id, err)
	}
	return v, true, nil
}

func (s *Store[T]) Insert(ctx context.Context, id record.ID, v T) error {
	if err := validateTable(s.table); err != nil {
		return err
	}

	av, err := attributevalue.MarshalMapWithOptions(v, jsonTags)
	if err != nil {
		return fmt.Errorf("dynamodb: marshal %s %d: %w", s.table, id, err)
	}
	for k, key := range idKey(id) {
		av[k] = key
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put %s %d: %w", s.table, id, err)
	}
	return nil
}

func (s *Store[T]) Remove(ctx context.Context, id record.ID) (bool, error) {
	if err := validateTable(s.table); err != nil {
		return false, err
	}

	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    &s.table,
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb: delete %s %d: %w", s.table, id, err)
	}
	return len(out.Attributes) > 0, nil
}

func (s *Store[T]) Contains(ctx context.Context, id record.ID) (bool, error) {
	if err := validateTable(s.table); err != nil {
		return false, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            &s.table,
		Key:                  idKey(id),
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String("#id"),
		ExpressionAttributeNames: map[string]string{
			"#id": idAttr,
		},
	})
	if err != nil {
		return false, fmt.Errorf("dynamodb: lookup %s %d: %w", s.table, id, err)
	}
	return len(out.Item) > 0, nil
}

type idItem struct {
	ID record.ID `dynamodbav:"id"`
}

func (s *Store[T]) List(ctx context.Context) ([]record.Entry[T], error) {
	if err := validateTable(s.table); err != nil {
		return nil, err
	}

	var entries []record.Entry[T]
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:      &s.table,
		ConsistentRead: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan %s: %w", s.table, err)
		}

		for _, item := range out.Items {
			var key idItem
			if err := attributevalue.UnmarshalMap(item, &key); err != nil {
				return nil, fmt.Errorf("dynamodb: unmarshal %s id: %w", s.table, err)
			}
			var v T
			if err := attributevalue.UnmarshalMapWithOptions(item, &v, jsonTagsDecoder); err != nil {
				return nil, fmt.Errorf("dynamodb: unmarshal %s %d: %w", s.table, key.ID, err)
			}
			entries = append(entries, record.Entry[T]{ID: key.ID, Value: v})
		}
	}

	// Scan order follows the partition hash, not the key.
	slices.SortFunc(entries, func(a, b record.Entry[T]) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return entries, nil
}

type sequenceItem struct {
	Name string    `dynamodbav:"name"`
	Next record.ID `dynamodbav:"next"`
}

func (s *Store[T]) NextID(ctx context.Context) (record.ID, error) {
	if err := validateTable(s.sequences); err != nil {
		return 0, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.sequences,
		Key: map[string]types.AttributeValue{
			nameAttr: &types.AttributeValueMemberS{Value: s.table},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("dynamodb: get sequence %s: %w", s.table, err)
	}
	if len(out.Item) == 0 {
		return 0, nil
	}

	var item sequenceItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, fmt.Errorf("dynamodb: unmarshal sequence %s: %w", s.table, err)
	}
	return item.Next, nil
}

func (s *Store[T]) SetNextID(ctx context.Context, next record.ID) error {
	if err := validateTable(s.sequences); err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(sequenceItem{Name: s.table, Next: next})
	if err != nil {
		return fmt.Errorf("dynamodb: marshal sequence %s: %w", s.table, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.sequences,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put sequence %s: %w", s.table, err)
	}
	return nil
}
