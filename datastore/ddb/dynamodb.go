/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityregistry/errors"
	"github.com/suparena/entityregistry/storagemodels"
)

// maxTransactItems is the DynamoDB limit on actions in one TransactWriteItems call.
const maxTransactItems = 100

// metaCondition pins a commit to the META item it was staged against. A missing
// attribute means the table has never been written.
const metaCondition = "(attribute_not_exists(#rev) OR #rev = :rev) AND (attribute_not_exists(#next) OR #next = :prev)"

// API is the subset of the DynamoDB client the StateStore uses.
type API interface {
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *sdk.TransactWriteItemsInput, optFns ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error)
}

// StateStore implements datastore.StateStore on a single DynamoDB table.
type StateStore struct {
	client    API
	tableName string
	options   storagemodels.LoadOptions
}

// NewDynamoDBClient initializes a DynamoDB client. Empty static credentials fall
// back to the default AWS credential chain.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(awsRegion)}
	if awsAccessKey != "" && awsSecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// NewStateStore constructs a StateStore backed by a new DynamoDB client.
func NewStateStore(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, tableName string, opts ...storagemodels.LoadOption) (*StateStore, error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewStateStoreWithClient(client, tableName, opts...)
}

// NewStateStoreWithClient constructs a StateStore on an existing client.
func NewStateStoreWithClient(client API, tableName string, opts ...storagemodels.LoadOption) (*StateStore, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", "must not be nil")
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "must not be empty")
	}

	options := storagemodels.DefaultLoadOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &StateStore{client: client, tableName: tableName, options: options}, nil
}

// TableName returns the table the store reads and writes.
func (s *StateStore) TableName() string {
	return s.tableName
}

// Commit writes the change in one transaction. Every commit rewrites the META
// item on condition that its Revision (and NextId) still hold the values the
// change was staged against, and advances the Revision by one.
func (s *StateStore) Commit(ctx context.Context, change storagemodels.Change) error {
	if change.Empty() {
		return nil
	}

	items, err := s.transactItems(change)
	if err != nil {
		return err
	}
	if len(items) > maxTransactItems {
		return errors.NewValidationError("change", fmt.Sprintf("%d writes exceed the transaction limit of %d", len(items), maxTransactItems))
	}

	_, err = s.client.TransactWriteItems(ctx, &sdk.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if isConditionalCancel(err) {
			return errors.NewConditionFailedError("commit", fmt.Sprintf("Revision = %d, NextId = %d", change.PrevRevision, change.PrevNextID))
		}
		return fmt.Errorf("TransactWriteItems failed: %w", err)
	}
	return nil
}

func (s *StateStore) transactItems(change storagemodels.Change) ([]types.TransactWriteItem, error) {
	next := change.PrevNextID
	if change.NextID != nil {
		next = *change.NextID
	}
	meta, err := metaItem(next, change.PrevRevision+1)
	if err != nil {
		return nil, err
	}

	items := []types.TransactWriteItem{{Put: &types.Put{
		TableName:           aws.String(s.tableName),
		Item:                meta,
		ConditionExpression: aws.String(metaCondition),
		ExpressionAttributeNames: map[string]string{
			"#rev":  attrRevision,
			"#next": attrNextID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rev":  &types.AttributeValueMemberN{Value: strconv.FormatUint(change.PrevRevision, 10)},
			":prev": &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(change.PrevNextID), 10)},
		},
	}}}

	for _, e := range change.Entities {
		item, err := entityItem(e)
		if err != nil {
			return nil, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName: aws.String(s.tableName),
			Item:      item,
		}})
	}

	for owner, bucket := range change.Buckets {
		item, err := bucketItem(owner, bucket)
		if err != nil {
			return nil, err
		}
		items = append(items, types.TransactWriteItem{Put: &types.Put{
			TableName: aws.String(s.tableName),
			Item:      item,
		}})
	}

	return items, nil
}

// isConditionalCancel reports whether a transaction was cancelled by a failed
// condition expression.
func isConditionalCancel(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	if stderrors.As(err, &cfe) {
		return true
	}
	var tce *types.TransactionCanceledException
	if !stderrors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
