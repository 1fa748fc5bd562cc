/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entityregistry/storagemodels"
)

// Load scans the table and rebuilds the registry cells. Items with an unknown
// EntityType are ignored so the table may be shared.
func (s *StateStore) Load(ctx context.Context) (*storagemodels.State, error) {
	state := storagemodels.NewState()
	progress := storagemodels.LoadProgress{StartTime: time.Now()}

	input := &sdk.ScanInput{
		TableName: aws.String(s.tableName),
	}
	if s.options.PageSize > 0 {
		input.Limit = aws.Int32(s.options.PageSize)
	}

	for {
		out, err := s.scanWithRetry(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, item := range out.Items {
			if err := decodeItem(state, item); err != nil {
				return nil, err
			}
			progress.ItemsLoaded++
		}
		progress.PagesLoaded++
		if s.options.ProgressHandler != nil {
			s.options.ProgressHandler(progress)
		}

		if len(out.LastEvaluatedKey) == 0 {
			return state, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func decodeItem(state *storagemodels.State, item map[string]types.AttributeValue) error {
	var entityType string
	if av, ok := item[attrEntityType].(*types.AttributeValueMemberS); ok {
		entityType = av.Value
	}

	switch entityType {
	case entityTypeEntity:
		var e storagemodels.Entity
		if err := attributevalue.UnmarshalMap(item, &e); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}
		state.Entities[e.ID] = e
	case entityTypeBucket:
		var rec bucketRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return fmt.Errorf("failed to unmarshal owner bucket: %w", err)
		}
		state.Buckets[rec.Owner] = storagemodels.CloneBucket(rec.Entities)
	case entityTypeMeta:
		var meta metaRecord
		if err := attributevalue.UnmarshalMap(item, &meta); err != nil {
			return fmt.Errorf("failed to unmarshal registry meta: %w", err)
		}
		state.NextID = meta.NextID
		state.Revision = meta.Revision
	}
	return nil
}

// scanWithRetry performs one Scan page, retrying transient failures.
func (s *StateStore) scanWithRetry(ctx context.Context, input *sdk.ScanInput) (*sdk.ScanOutput, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= s.options.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := s.options.RetryBackoff * time.Duration(1<<uint(attempt-1))
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		attempts++
		out, err := s.client.Scan(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			break
		}
	}

	return nil, fmt.Errorf("scan failed after %d attempts: %w", attempts, lastErr)
}

// isRetryableError reports whether a DynamoDB error is worth another attempt.
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	switch {
	case stderrors.As(err, &throughput), stderrors.As(err, &limit), stderrors.As(err, &internal):
		return true
	}

	var retryable interface{ RetryableError() bool }
	if stderrors.As(err, &retryable) {
		return retryable.RetryableError()
	}
	return false
}
