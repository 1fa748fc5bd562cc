/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FakeAPI is an in-memory table implementing API. It understands the one
// condition expression the StateStore writes.
type FakeAPI struct {
	mu           sync.Mutex
	items        map[string]map[string]types.AttributeValue
	scanErrs     []error
	transactErr  error
	ScanCalls    int
	TransactCall int
	LastTransact *sdk.TransactWriteItemsInput
}

// NewFakeAPI returns an empty fake table.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{items: make(map[string]map[string]types.AttributeValue)}
}

// FailScans makes the next len(errs) Scan calls return errs in order.
func (f *FakeAPI) FailScans(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scanErrs = append(f.scanErrs, errs...)
}

// FailTransact makes every TransactWriteItems call return err.
func (f *FakeAPI) FailTransact(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactErr = err
}

// PutRaw stores an item as-is.
func (f *FakeAPI) PutRaw(item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[itemKey(item)] = item
}

// Len returns the number of stored items.
func (f *FakeAPI) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Item returns the stored item with the given keys.
func (f *FakeAPI) Item(pk, sk string) (map[string]types.AttributeValue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[pk+"|"+sk]
	return item, ok
}

func (f *FakeAPI) Scan(ctx context.Context, params *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScanCalls++

	if len(f.scanErrs) > 0 {
		err := f.scanErrs[0]
		f.scanErrs = f.scanErrs[1:]
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		after := itemKey(params.ExclusiveStartKey)
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}

	end := len(keys)
	if params.Limit != nil && start+int(*params.Limit) < end {
		end = start + int(*params.Limit)
	}

	out := &sdk.ScanOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, f.items[k])
	}
	if end < len(keys) {
		last := f.items[keys[end-1]]
		out.LastEvaluatedKey = map[string]types.AttributeValue{"PK": last["PK"], "SK": last["SK"]}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}

func (f *FakeAPI) TransactWriteItems(ctx context.Context, params *sdk.TransactWriteItemsInput, _ ...func(*sdk.Options)) (*sdk.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TransactCall++
	f.LastTransact = params

	if f.transactErr != nil {
		return nil, f.transactErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reasons := make([]types.CancellationReason, len(params.TransactItems))
	failed := false
	for i, ti := range params.TransactItems {
		reasons[i].Code = aws.String("None")
		if ti.Put == nil {
			return nil, errors.New("fake: only Put actions are supported")
		}
		if ti.Put.ConditionExpression != nil && !f.metaMatches(ti.Put) {
			reasons[i].Code = aws.String("ConditionalCheckFailed")
			failed = true
		}
	}
	if failed {
		msg := "Transaction cancelled"
		return nil, &types.TransactionCanceledException{Message: &msg, CancellationReasons: reasons}
	}

	for _, ti := range params.TransactItems {
		f.items[itemKey(ti.Put.Item)] = ti.Put.Item
	}
	return &sdk.TransactWriteItemsOutput{}, nil
}

// metaMatches evaluates metaCondition against the stored item.
func (f *FakeAPI) metaMatches(put *types.Put) bool {
	existing, ok := f.items[itemKey(put.Item)]
	if !ok {
		return true
	}
	return attrMatches(existing, put, "#rev", ":rev") && attrMatches(existing, put, "#next", ":prev")
}

// attrMatches is "attribute_not_exists(name) OR name = value" for numbers.
func attrMatches(existing map[string]types.AttributeValue, put *types.Put, name, value string) bool {
	current, ok := existing[put.ExpressionAttributeNames[name]].(*types.AttributeValueMemberN)
	if !ok {
		return true
	}
	want, ok := put.ExpressionAttributeValues[value].(*types.AttributeValueMemberN)
	return ok && want.Value == current.Value
}

func itemKey(item map[string]types.AttributeValue) string {
	var pk, sk string
	if v, ok := item["PK"].(*types.AttributeValueMemberS); ok {
		pk = v.Value
	}
	if v, ok := item["SK"].(*types.AttributeValueMemberS); ok {
		sk = v.Value
	}
	return pk + "|" + sk
}
